// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/passly/internal/client"
	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("passly-client", cfg.Client.LogFile, logger.WithLevel(cfg.App.LogLevel))
	log.Info().Str("build", build.String()).Msg("starting client")

	app, err := client.NewApp(cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		log.Fatal().Err(err).Msg("client run error")
	}
}
