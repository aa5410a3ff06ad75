// Package metrics records run statistics as Prometheus metrics.
//
// The tool is a batch job, so metrics are written to a node-exporter
// textfile instead of being served.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vsinha/slotting/pkg/application/dto"
	"github.com/vsinha/slotting/pkg/domain/entities"
)

// Recorder holds the metrics of one run on a private registry
type Recorder struct {
	registry *prometheus.Registry

	RowsRead        *prometheus.CounterVec
	RowsDropped     *prometheus.CounterVec
	CategoryItems   *prometheus.GaugeVec
	Products        prometheus.Gauge
	MasterEnriched  prometheus.Gauge
	RunDuration     prometheus.Histogram
	LastRunUnixTime prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		RowsRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slotting_rows_read_total",
				Help: "Total number of input rows read",
			},
			[]string{"entity"},
		),
		RowsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slotting_rows_dropped_total",
				Help: "Input rows excluded from classification",
			},
			[]string{"entity", "reason"},
		),
		CategoryItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "slotting_category_items",
				Help: "Number of products in each output category",
			},
			[]string{"category"},
		),
		Products: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slotting_products",
			Help: "Number of distinct pickable products",
		}),
		MasterEnriched: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slotting_master_enriched_products",
			Help: "Products with product master data attached",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "slotting_run_duration_seconds",
			Help:    "Duration of a classification run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
		LastRunUnixTime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slotting_last_run_timestamp_seconds",
			Help: "Unix time the last report was generated",
		}),
	}
}

// Registry returns the registry holding the recorder's metrics
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordReport records the statistics of a completed run
func (r *Recorder) RecordReport(report *dto.SlottingReport) {
	diag := report.Diagnostics

	r.RowsRead.WithLabelValues("inventory").Add(float64(diag.InventoryRows))
	r.RowsRead.WithLabelValues("sales").Add(float64(diag.SalesRows))
	for reason, n := range diag.InventoryDropped {
		r.RowsDropped.WithLabelValues("inventory", reason).Add(float64(n))
	}
	for reason, n := range diag.SalesDropped {
		r.RowsDropped.WithLabelValues("sales", reason).Add(float64(n))
	}

	for _, category := range entities.Categories {
		r.CategoryItems.WithLabelValues(category.String()).Set(float64(len(report.Category(category))))
	}
	r.Products.Set(float64(diag.Products))
	r.MasterEnriched.Set(float64(diag.MasterEnriched))
	r.RunDuration.Observe(report.Metadata.Elapsed.Seconds())
	r.LastRunUnixTime.Set(float64(report.Metadata.GeneratedAt.Unix()))
}

// WriteTextfile writes all metrics in the text exposition format to filename
func (r *Recorder) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", filename, err)
	}
	return nil
}
