// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/handler"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/server"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/workers"
	"github.com/MKhiriev/passly/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("passly-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("passly-server", logger.WithLevel(cfg.App.LogLevel))
	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.AuthService.EnsureInitialUser(ctx); err != nil {
		log.Fatal().Err(err).Msg("error seeding initial user")
	}

	handlers, err := handler.NewHandlers(services, storages.DB, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	var reporter workers.HealthReporter
	if handlers.GRPC != nil {
		reporter = handlers.GRPC
	}
	bg := workers.NewWorkers(storages.TokenRepository, storages.DB, reporter, cfg.Workers, log)

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(build models.BuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}
