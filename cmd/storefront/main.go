package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"StellarStore/internal/catalog"
	"StellarStore/internal/config"
	"StellarStore/internal/contact"
	"StellarStore/internal/docstore"
	"StellarStore/internal/storefront"
	"StellarStore/pkg/kit"
)

func main() {
	service := "storefront"

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, false).Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogDev)
	defer func() { _ = log.Sync() }()

	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal("init document store", zap.Error(err))
	}

	coord := catalog.NewCoordinator(catalog.NewIndex(store, cfg.CatalogDocument))

	reg := prometheus.NewRegistry()
	catMetrics := catalog.NewMetrics(reg)

	warmCatalog(coord, catMetrics, log)

	catSrv := &catalog.Server{
		Log:     log,
		Catalog: coord,
		Metrics: catMetrics,
	}
	conSrv := &contact.Server{
		Log:       log,
		Feedback:  contact.NewAppendLog(store, cfg.FeedbackDocument, "feedback"),
		Customers: contact.NewAppendLog(store, cfg.CustomersDocument, "members"),
	}

	h := storefront.NewHandler(catSrv, conSrv, storefront.Deps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		WriteLimit:     cfg.WriteLimit,
		WriteWindow:    cfg.WriteWindow,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newStore(cfg config.Config, log *zap.Logger) (docstore.Store, error) {
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := docstore.NewPostgresStore(db)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		log.Info("using postgres document store")
		return pg, nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	log.Info("using file document store", zap.String("dir", cfg.DataDir))
	return docstore.NewFileStore(cfg.DataDir), nil
}

// warmCatalog loads the catalog up front so a malformed document fails fast.
// A missing document is tolerated; the coordinator retries lazily once it
// appears.
func warmCatalog(coord *catalog.Coordinator, m *catalog.Metrics, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := coord.Reload(ctx)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		log.Warn("catalog document missing, will retry on first request", zap.Error(err))
	case err != nil:
		log.Fatal("load catalog", zap.Error(err))
	default:
		doc, err := coord.All(ctx)
		if err == nil {
			m.Products.Set(float64(doc.ProductCount()))
			log.Info("catalog loaded",
				zap.Int("categories", doc.Categories.Len()),
				zap.Int("products", doc.ProductCount()),
			)
		}
	}
}
