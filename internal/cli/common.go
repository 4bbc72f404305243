// Package cli holds the cobra commands behind the generator binaries.
package cli

import (
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Vincent-lau/dagbench/internal/configs"
	"github.com/Vincent-lau/dagbench/internal/metrics"
	"github.com/Vincent-lau/dagbench/internal/workload"
	"github.com/Vincent-lau/dagbench/util"
)

// options are shared by every generator command.
type options struct {
	// receives the generated document
	out io.Writer

	platformFile string
	logLevel     string
	logFormat    string
	stats        bool
	metricsFile  string
	traceFile    string
}

func (o *options) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.platformFile, "platform", "", "platform description file (yaml, json or toml); built-in platform if empty")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")
	f.BoolVar(&o.stats, "stats", false, "analyze the generated graph and log its shape")
	f.StringVar(&o.metricsFile, "metrics-file", "", "write prometheus metrics to this file after generating")
	f.StringVar(&o.traceFile, "trace", "", "write a runtime trace of the generation to this file")
}

func (o *options) configureLogging() error {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch o.logFormat {
	case "text":
		log.SetFormatter(&log.TextFormatter{
			ForceColors: true,
		})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %q", o.logFormat)
	}
	return nil
}

// run loads the platform, generates the workload and writes it to o.out.
// Nothing is written unless every step succeeds.
func (o *options) run(generator string, gen func(*configs.Platform) (*workload.Document, error)) error {
	if err := o.configureLogging(); err != nil {
		return err
	}
	platform, err := configs.Load(o.platformFile)
	if err != nil {
		return err
	}

	stop, err := util.StartTrace(o.traceFile)
	if err != nil {
		return err
	}
	start := time.Now()
	doc, err := gen(platform)
	elapsed := time.Since(start)
	stop()
	if err != nil {
		return err
	}
	metrics.ObserveGeneration(generator, elapsed)

	if o.stats || o.metricsFile != "" {
		s, err := workload.Analyze(doc)
		if err != nil {
			return err
		}
		metrics.ObserveShape(generator, s.Tasks, s.Edges, s.Levels)

		log.WithFields(log.Fields{
			"generator": generator,
			"tasks":     s.Tasks,
			"edges":     s.Edges,
			"levels":    s.Levels,
			"max width": s.MaxWidth,
			"mean cost": s.MeanCost,
			"elapsed":   elapsed,
		}).Info("workload statistics")
	}

	if o.metricsFile != "" {
		if err := metrics.WriteTextfile(o.metricsFile); err != nil {
			return err
		}
	}

	return workload.Encode(o.out, doc)
}

func parseArg(name, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Errorf("%s must be an integer, got %q", name, value)
	}
	return v, nil
}
