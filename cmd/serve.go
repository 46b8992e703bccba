// Copyright 2026 The kvresp Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/kvresp/kvresp/confengine"
	"github.com/kvresp/kvresp/internal/sigs"
	"github.com/kvresp/kvresp/listener"
	"github.com/kvresp/kvresp/logger"
	"github.com/kvresp/kvresp/server"
	"github.com/kvresp/kvresp/store"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Run the RESP server",
	Example: "# kvresp serve --config kvresp.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(serveConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "kvresp: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Configuration file path (optional; defaults apply when omitted)")
	rootCmd.AddCommand(serveCmd)
}

func loadConfig(path string) (*confengine.Config, error) {
	if path == "" {
		return confengine.LoadContent([]byte("{}\n"))
	}
	return confengine.LoadConfigPath(path)
}

func runServe(configPath string) error {
	conf, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var logOpt logger.Options
	if conf.Has("logger") {
		if err := conf.UnpackChild("logger", &logOpt); err != nil {
			return fmt.Errorf("load logger config: %w", err)
		}
	} else {
		logOpt = logger.Options{Stdout: true, Level: "info"}
	}
	logger.SetOptions(logOpt)

	backend := store.NewBackend()

	ln, err := listener.New(conf, backend)
	if err != nil {
		return fmt.Errorf("create listener: %w", err)
	}

	admin, err := server.New(conf)
	if err != nil {
		return fmt.Errorf("create admin server: %w", err)
	}

	listenerErr := make(chan error, 1)
	go func() { listenerErr <- ln.ListenAndServe() }()

	var adminErr chan error
	if admin != nil {
		adminErr = make(chan error, 1)
		go func() { adminErr <- admin.ListenAndServe() }()
	}

	select {
	case <-sigs.Terminate():
		logger.Infof("shutdown signal received, closing listeners")
	case err := <-listenerErr:
		if err != nil {
			return fmt.Errorf("listener: %w", err)
		}
		return nil
	}

	var result *multierror.Error
	if err := ln.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close listener: %w", err))
	}
	if admin != nil {
		if err := admin.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close admin server: %w", err))
		}
	}
	return result.ErrorOrNil()
}
