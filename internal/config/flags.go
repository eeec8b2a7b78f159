// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args (without the program name).
//
// Flags:
//
//	-a               server address host:port
//	-grpc-address    gRPC health address host:port
//	-d               database DSN
//	-c / -config     JSON config file path
//	-token-sign-key  JWT signing key
//	-token-issuer    JWT issuer
//	-token-duration  token lifetime (e.g. "24h")
//	-master-key      base64 vault master key
//	-hash-key        body integrity HMAC key
//	-request-timeout inbound request timeout
//	-server          backend base URL used by the client
//	-session-dsn     client session SQLite DSN
//	-log-level       minimal log level
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)

	var serverAddress, grpcAddress NetAddress
	var cfg StructuredConfig
	var tokenDuration, requestTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.StringVar(&cfg.App.VaultMasterKey, "master-key", "", "Base64 vault master key")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Body integrity hash key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server", "", "Backend base URL")
	fs.StringVar(&cfg.Client.SessionDSN, "session-dsn", "", "Client session DSN")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()
	cfg.App.TokenDuration = tokenDuration
	cfg.Server.RequestTimeout = requestTimeout

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// Host must be "localhost" or a literal IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
