package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsIngested tracks per-item sync outcomes.
	// Labels allow filtering by record kind and accepted/rejected status.
	RecordsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "possync_records_ingested_total",
		Help: "Total number of records processed by the sync ingestion endpoint",
	}, []string{"kind", "status"})

	// IngestBatchSize tracks how many items terminals send per sync call
	IngestBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "possync_ingest_batch_size",
		Help:    "Number of items per sync ingestion batch",
		Buckets: []float64{1, 5, 10, 50, 100, 500},
	})

	// EventsRelayed counts events fanned out by the realtime relay
	EventsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "possync_relay_events_total",
		Help: "Total number of events republished by the branch relay",
	}, []string{"event"})

	// ConnectedClients mirrors the presence tracker's per-type counts
	ConnectedClients = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "possync_relay_connected_clients",
		Help: "Currently connected relay clients by client type",
	}, []string{"type"})
)
