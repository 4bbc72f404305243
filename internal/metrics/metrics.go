package metrics

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var (
	/* workload shape */
	Tasks = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dagbench_tasks",
		Help: "Number of tasks in the last generated workload",
	}, []string{"generator"})

	DependencyEdges = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dagbench_dependency_edges",
		Help: "Number of dependency edges in the last generated workload",
	}, []string{"generator"})

	GraphLevels = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dagbench_graph_levels",
		Help: "Length of the longest dependency chain in the last generated workload",
	}, []string{"generator"})

	/* generation cost */
	GenerationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:                        "dagbench_generation_latency",
		Help:                        "Latency of workload generation in microseconds",
		Buckets:                     prometheus.ExponentialBuckets(10, 4, 10),
		NativeHistogramBucketFactor: 1.1,
	}, []string{"generator"})

	metricsList = []prometheus.Collector{
		Tasks,
		DependencyEdges,
		GraphLevels,

		GenerationLatency,
	}
)

var registerMetrics sync.Once

func Register() {
	registerMetrics.Do(func() {
		prometheus.MustRegister(metricsList...)
	})
}

// ObserveGeneration records how long a generator took to build its workload.
func ObserveGeneration(generator string, elapsed time.Duration) {
	Register()
	GenerationLatency.WithLabelValues(generator).Observe(float64(elapsed.Microseconds()))
}

// ObserveShape records the size of a generated workload.
func ObserveShape(generator string, tasks, edges, levels int) {
	Register()
	Tasks.WithLabelValues(generator).Set(float64(tasks))
	DependencyEdges.WithLabelValues(generator).Set(float64(edges))
	GraphLevels.WithLabelValues(generator).Set(float64(levels))
}

// WriteTextfile dumps every registered metric in the text exposition format,
// for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	Register()
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.Wrapf(err, "writing metrics to %s", path)
	}

	log.WithFields(log.Fields{
		"file": path,
	}).Info("wrote metrics")

	return nil
}
