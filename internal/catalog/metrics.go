package catalog

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	StockUpdates prometheus.Counter
	Products     prometheus.Gauge
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		StockUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_stock_updates_total",
			Help: "Products marked out of stock",
		}),
		Products: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products in the loaded catalog",
		}),
	}

	reg.MustRegister(m.StockUpdates, m.Products)
	return m
}
