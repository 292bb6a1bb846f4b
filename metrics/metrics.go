package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики пайплайна обработки маркетинговых данных
var (
	// PipelineRuns считает запуски пайплайна по итоговому статусу (success/failed)
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketing_pipeline_runs_total",
			Help: "Количество запусков пайплайна по статусу завершения",
		},
		[]string{"status"},
	)

	// RecordsProcessed считает нормализованные записи, сохраненные по итогам запусков
	RecordsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketing_pipeline_records_processed_total",
			Help: "Количество нормализованных записей, сохраненных пайплайном",
		},
	)

	// RecordsDropped считает сырые записи, отброшенные валидацией
	RecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketing_pipeline_records_dropped_total",
			Help: "Количество сырых записей, не прошедших валидацию",
		},
	)

	// TransformWarnings считает записи, обработанные запасной веткой трансформации
	TransformWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketing_pipeline_transform_warnings_total",
			Help: "Количество предупреждений трансформации (запасная ветка)",
		},
	)

	// RunDuration измеряет длительность запуска пайплайна в секундах
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marketing_pipeline_run_duration_seconds",
			Help:    "Длительность запуска пайплайна",
			Buckets: prometheus.DefBuckets,
		},
	)
)
