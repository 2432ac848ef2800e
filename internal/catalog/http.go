package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"StellarStore/pkg/kit"
)

const serverErrMsg = "Something went wrong on the server, please try again later."

type Server struct {
	Log     *zap.Logger
	Catalog *Coordinator
	Metrics *Metrics
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Catalog.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.all)
	r.Get("/products/category/{category}", s.category)
	r.Get("/products/category/{category}/product/{product}", s.product)
	r.Post("/instock", s.setOutOfStock)

	return r
}

func (s *Server) all(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Catalog.All(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("load catalog failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, serverErrMsg, nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, doc)
}

func (s *Server) category(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "category")

	c, err := s.Catalog.GetCategory(r.Context(), key)
	if err != nil {
		s.writeLookupError(w, r, err, key, "")
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) product(w http.ResponseWriter, r *http.Request) {
	categoryKey := chi.URLParam(r, "category")
	productKey := chi.URLParam(r, "product")

	p, err := s.Catalog.GetProduct(r.Context(), categoryKey, productKey)
	if err != nil {
		s.writeLookupError(w, r, err, categoryKey, productKey)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) setOutOfStock(w http.ResponseWriter, r *http.Request) {
	categoryKey := strings.TrimSpace(r.FormValue("category"))
	productKey := strings.TrimSpace(r.FormValue("product"))

	if categoryKey == "" || productKey == "" {
		kit.WriteError(w, r, http.StatusBadRequest,
			"missing POST parameter: category or product", nil)
		return
	}

	if err := s.Catalog.SetOutOfStock(r.Context(), categoryKey, productKey); err != nil {
		s.writeLookupError(w, r, err, categoryKey, productKey)
		return
	}

	if s.Metrics != nil {
		s.Metrics.StockUpdates.Inc()
	}
	kit.WriteText(w, http.StatusOK, "Stock Updated!")
}

// writeLookupError maps lookup failures to 404 with the offending key named,
// and everything else to a generic server fault.
func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error, categoryKey, productKey string) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		kit.WriteError(w, r, http.StatusNotFound,
			"Category "+categoryKey+" Does Not Exist.",
			map[string]any{"category": categoryKey})
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound,
			"Product "+productKey+" Does Not Exist.",
			map[string]any{"category": categoryKey, "product": productKey})
	default:
		if s.Log != nil {
			s.Log.Error("catalog operation failed", zap.Error(err),
				zap.String("category", categoryKey), zap.String("product", productKey))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, serverErrMsg, nil)
	}
}
