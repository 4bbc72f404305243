package main

import (
	"os"

	"github.com/Vincent-lau/dagbench/internal/cli"

	log "github.com/sirupsen/logrus"
)

func init() {
	// stdout carries the generated workload
	log.SetOutput(os.Stderr)
}

func main() {
	if err := cli.LUCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
