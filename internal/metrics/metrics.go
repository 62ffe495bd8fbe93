// Package metrics holds the Prometheus collectors of the document pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_documents_rendered_total",
		Help: "Invoice documents rendered, by render mode",
	}, []string{"mode"})

	PagesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_pages_rendered_total",
		Help: "PDF pages produced by the document pipeline",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoice_render_duration_seconds",
		Help:    "Time taken to turn a composed document into a PDF",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	AssetTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_asset_wait_timeouts_total",
		Help: "Renders that proceeded after the font/image wait timed out",
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_emails_total",
		Help: "Invoice email dispatch attempts, by outcome",
	}, []string{"outcome"})
)
