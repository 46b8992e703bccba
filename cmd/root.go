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

// Package cmd wires the RESP listener, the admin HTTP server, config
// loading, and logging into a cobra CLI. None of this is part of the
// protocol/backend/command core; it is the process shell around it.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kvresp/kvresp/common"
)

var rootCmd = &cobra.Command{
	Use:   "kvresp",
	Short: "A RESP key-value server",
}

// Execute runs the CLI. It is the only thing main.go calls.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = common.Version
}
