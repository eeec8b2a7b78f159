// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server and the client binaries.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds credentials, token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings of the server.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and timeouts of the HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the backend.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Client holds terminal client settings.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey signs and verifies session JWTs (HS256).
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of a session token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// VaultMasterKey is the base64-encoded master key from which per-user
	// encryption keys are derived.
	// Env: APP_VAULT_MASTER_KEY
	VaultMasterKey string `env:"VAULT_MASTER_KEY"`

	// HashKey enables the HashSHA256 body integrity header when non-empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// InitialUsername and InitialPassword describe the account seeded when
	// the user table is empty.
	// Env: APP_INITIAL_USERNAME, APP_INITIAL_PASSWORD
	InitialUsername string `env:"INITIAL_USERNAME"`
	InitialPassword string `env:"INITIAL_PASSWORD"`

	// Version is reported by the version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimal emitted log level.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration of server storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for PostgreSQL.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the host:port of the HTTP API.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the host:port of the gRPC health service.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's outbound transport settings.
type Adapter struct {
	// HTTPAddress is the base address of the backend API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds intervals of the server background workers.
type Workers struct {
	// PurgeInterval is how often expired revocations are removed.
	// Env: WORKERS_PURGE_INTERVAL
	PurgeInterval time.Duration `env:"PURGE_INTERVAL"`

	// HealthInterval is how often the database is probed for the gRPC
	// health service.
	// Env: WORKERS_HEALTH_INTERVAL
	HealthInterval time.Duration `env:"HEALTH_INTERVAL"`
}

// Client holds terminal client settings.
type Client struct {
	// SessionDSN is the SQLite DSN where the session credential persists.
	// Env: CLIENT_SESSION_DSN
	SessionDSN string `env:"SESSION_DSN"`

	// CopyWindow is how long the "copied" indicator stays visible.
	// Env: CLIENT_COPY_WINDOW
	CopyWindow time.Duration `env:"COPY_WINDOW"`

	// LogFile is where the client writes its logs.
	// Env: CLIENT_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// defaults returns the lowest-priority configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:     "passly",
			TokenDuration:   24 * time.Hour,
			InitialUsername: "admin",
			InitialPassword: "change_me",
			Version:         "1.0.0",
			LogLevel:        "debug",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			PurgeInterval:  10 * time.Minute,
			HealthInterval: 30 * time.Second,
		},
		Client: Client{
			SessionDSN: "file:passly-session.db?_busy_timeout=5000",
			CopyWindow: 2 * time.Second,
		},
	}
}

// GetServerConfig loads the merged configuration using the process flags
// and validates the server groups.
func GetServerConfig(args []string) (*StructuredConfig, error) {
	cfg, err := load(args)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validateServer()
}

// GetClientConfig loads the merged configuration and validates the client
// groups.
func GetClientConfig(args []string) (*StructuredConfig, error) {
	cfg, err := load(args)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validateClient()
}

func load(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
