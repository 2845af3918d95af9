// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		Pepper        string   `json:"pepper"`
		KDFContext    string   `json:"kdf_context"`
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Engine struct {
		MinLength       int    `json:"min_length"`
		MaxLength       int    `json:"max_length"`
		EnvelopeVersion int    `json:"envelope_version"`
		ArgonTime       uint32 `json:"argon_time"`
		ArgonMemory     uint32 `json:"argon_memory"`
		ArgonThreads    uint8  `json:"argon_threads"`
	} `json:"engine,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Backup struct {
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Bucket    string `json:"bucket"`
			Region    string `json:"region"`
			UseSSL    bool   `json:"use_ssl"`
		} `json:"backup,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Clipboard struct {
		ClearAfter Duration `json:"clear_after"`
	} `json:"clipboard,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Pepper:        jsonCfg.App.Pepper,
			KDFContext:    jsonCfg.App.KDFContext,
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Engine: Engine{
			MinLength:       jsonCfg.Engine.MinLength,
			MaxLength:       jsonCfg.Engine.MaxLength,
			EnvelopeVersion: jsonCfg.Engine.EnvelopeVersion,
			ArgonTime:       jsonCfg.Engine.ArgonTime,
			ArgonMemory:     jsonCfg.Engine.ArgonMemory,
			ArgonThreads:    jsonCfg.Engine.ArgonThreads,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Backup: Backup{
				Endpoint:  jsonCfg.Storage.Backup.Endpoint,
				AccessKey: jsonCfg.Storage.Backup.AccessKey,
				SecretKey: jsonCfg.Storage.Backup.SecretKey,
				Bucket:    jsonCfg.Storage.Backup.Bucket,
				Region:    jsonCfg.Storage.Backup.Region,
				UseSSL:    jsonCfg.Storage.Backup.UseSSL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Token:          jsonCfg.Adapter.Token,
		},
		Clipboard: Clipboard{
			ClearAfter: time.Duration(jsonCfg.Clipboard.ClearAfter),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
