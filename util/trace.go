package util

import (
	"os"
	"runtime/trace"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// StartTrace writes a runtime execution trace to path until the returned stop
// function is called. An empty path disables tracing.
func StartTrace(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating trace file")
	}
	if err := trace.Start(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "starting trace")
	}

	log.WithFields(log.Fields{
		"file": path,
	}).Debug("tracing generation")

	return func() {
		trace.Stop()
		if err := f.Close(); err != nil {
			log.WithFields(log.Fields{
				"error": err,
			}).Warn("failed to close trace file")
		}
	}, nil
}
