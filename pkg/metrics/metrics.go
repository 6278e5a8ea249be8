package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsProcessed cuenta los eventos procesados con éxito, por topic.
	EventsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_processed_total",
		Help: "Total number of events processed successfully",
	}, []string{"topic"})

	// EventsFailed cuenta los eventos cuyo pipeline terminó en error, por topic.
	EventsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_failed_total",
		Help: "Total number of events whose processing failed",
	}, []string{"topic"})

	// PipelineDuration mide la duración del pipeline completo de un evento.
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoice_pipeline_seconds",
		Help:    "End-to-end duration of the event processing pipeline",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(EventsProcessed, EventsFailed, PipelineDuration)
}

// Register expone /metrics en el router principal.
func Register(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
