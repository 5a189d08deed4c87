package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	ResultUploaded = "uploaded"
	ResultMissing  = "missing"
	ResultFailed   = "failed"
	ResultWritten  = "written"
	ResultDeleted  = "deleted"

	KindSet  = "set"
	KindPart = "part"
)

// Recorder counts what a publish run did. It has its own registry so each
// run pushes only its own counters. A nil Recorder records nothing.
type Recorder struct {
	registry  *prometheus.Registry
	images    *prometheus.CounterVec
	documents *prometheus.CounterVec
	sets      prometheus.Counter
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		images: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "question_publisher",
			Name:      "images_total",
			Help:      "Question images seen, by outcome",
		}, []string{"result"}),
		documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "question_publisher",
			Name:      "documents_total",
			Help:      "Document writes, by document kind and outcome",
		}, []string{"kind", "result"}),
		sets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "question_publisher",
			Name:      "sets_total",
			Help:      "Question sets processed to completion",
		}),
	}
}

func (r *Recorder) Image(result string) {
	if r == nil {
		return
	}
	r.images.WithLabelValues(result).Inc()
}

func (r *Recorder) Document(kind, result string) {
	if r == nil {
		return
	}
	r.documents.WithLabelValues(kind, result).Inc()
}

func (r *Recorder) SetFinished() {
	if r == nil {
		return
	}
	r.sets.Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Push sends the run's counters to a Prometheus Pushgateway, grouped by run id.
func (r *Recorder) Push(url, job, runID string) error {
	if r == nil {
		return nil
	}
	return push.New(url, job).
		Gatherer(r.registry).
		Grouping("run_id", runID).
		Push()
}
