package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var (
	pipelineMetricsOnce sync.Once

	audioProcessTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audio_process_total",
			Help: "Total number of audio summarization pipeline runs",
		},
		[]string{"status"},
	)

	transcriptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcriptions_total",
			Help: "Total number of transcription attempts",
		},
		[]string{"status"},
	)

	quizGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_generations_total",
			Help: "Total number of quiz generation attempts",
		},
		[]string{"status"},
	)
)

func RegisterPipelineMetrics() {
	pipelineMetricsOnce.Do(func() {
		prometheus.MustRegister(audioProcessTotal, transcriptionsTotal, quizGenerationsTotal)
	})
}

func IncAudioProcess(status string) {
	RegisterPipelineMetrics()
	audioProcessTotal.WithLabelValues(status).Inc()
}

func IncTranscription(status string) {
	RegisterPipelineMetrics()
	transcriptionsTotal.WithLabelValues(status).Inc()
}

func IncQuizGeneration(status string) {
	RegisterPipelineMetrics()
	quizGenerationsTotal.WithLabelValues(status).Inc()
}
