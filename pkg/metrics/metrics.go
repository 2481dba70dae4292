package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaRecordsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_records_consumed_total",
			Help: "Number of records polled from Kafka",
		},
		[]string{"group"},
	)
	KafkaRecordsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_records_processed_total",
			Help: "Number of records handled and committed",
		},
		[]string{"group"},
	)
	KafkaRecordsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_records_failed_total",
			Help: "Number of failed handler invocations",
		},
		[]string{"group"},
	)
	KafkaRetriesPerPartition = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kafka_consumer_retries_per_partition",
			Help: "Current retry attempt of the record blocking a partition",
		},
		[]string{"group", "partition"},
	)
	KafkaPollBody = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_poll_body_seconds",
			Help:    "Time spent inside handlers for one poll batch",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"group"},
	)
	KafkaPartitionRewinds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_partition_rewinds_total",
			Help: "Number of partition rewinds",
		},
		[]string{"group", "kind"}, // big|small|beginning
	)
)

var (
	ProjectionEventsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projection_events_applied_total",
			Help: "Events applied to read models",
		},
		[]string{"projection", "type"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served by the read API",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в дефолтном реестре; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaRecordsConsumed, KafkaRecordsProcessed, KafkaRecordsFailed,
			KafkaRetriesPerPartition, KafkaPollBody, KafkaPartitionRewinds,
			ProjectionEventsApplied,
			CacheOps, CacheSize,
			HTTPRequests, HTTPRequestDuration,
		)
	})
}
