// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig mirrors [StructuredConfig] for the JSON file layer with
// human-readable durations.
type jsonConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		VaultMasterKey  string   `json:"vault_master_key"`
		HashKey         string   `json:"hash_key"`
		InitialUsername string   `json:"initial_username"`
		InitialPassword string   `json:"initial_password"`
		Version         string   `json:"version"`
		LogLevel        string   `json:"log_level"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter"`

	Workers struct {
		PurgeInterval  Duration `json:"purge_interval"`
		HealthInterval Duration `json:"health_interval"`
	} `json:"workers"`

	Client struct {
		SessionDSN string   `json:"session_dsn"`
		CopyWindow Duration `json:"copy_window"`
		LogFile    string   `json:"log_file"`
	} `json:"client"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:    j.App.TokenSignKey,
			TokenIssuer:     j.App.TokenIssuer,
			TokenDuration:   time.Duration(j.App.TokenDuration),
			VaultMasterKey:  j.App.VaultMasterKey,
			HashKey:         j.App.HashKey,
			InitialUsername: j.App.InitialUsername,
			InitialPassword: j.App.InitialPassword,
			Version:         j.App.Version,
			LogLevel:        j.App.LogLevel,
		},
		Storage: Storage{DB: DB{DSN: j.Storage.DB.DSN}},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			PurgeInterval:  time.Duration(j.Workers.PurgeInterval),
			HealthInterval: time.Duration(j.Workers.HealthInterval),
		},
		Client: Client{
			SessionDSN: j.Client.SessionDSN,
			CopyWindow: time.Duration(j.Client.CopyWindow),
			LogFile:    j.Client.LogFile,
		},
	}, nil
}

// Duration is a time.Duration that unmarshals from JSON strings such as
// "1h" or "30s" as well as from integer nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// MarshalJSON implements [json.Marshaler].
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
