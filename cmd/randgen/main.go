package main

import (
	"os"

	"github.com/Vincent-lau/dagbench/internal/cli"

	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetOutput(os.Stderr)
}

func main() {
	if err := cli.RandomCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
