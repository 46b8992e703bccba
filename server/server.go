// Copyright 2025 The packetd Authors
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

package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kvresp/kvresp/common"
	"github.com/kvresp/kvresp/confengine"
	"github.com/kvresp/kvresp/internal/fasttime"
	"github.com/kvresp/kvresp/logger"
)

// Config configures the admin HTTP surface: health checks, Prometheus
// metrics, and (optionally) pprof. It is entirely separate from the RESP
// listener in package listener.
type Config struct {
	Enabled bool          `config:"enabled"`
	Address string        `config:"address"`
	Pprof   bool          `config:"pprof"`
	Timeout time.Duration `config:"timeout"`
}

// DefaultConfig supplies the values New uses for any field the "server"
// section does not set: enabled, on a loopback-only address, with pprof
// off. Without a "server" section New starts no admin server at all.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Address: "127.0.0.1:6380",
		Timeout: 5 * time.Second,
	}
}

type Server struct {
	config Config
	router *mux.Router
	server *http.Server
}

// New builds the admin Server from the "server" section of conf. It
// returns a nil Server (and nil error) when that section is absent or
// explicitly disabled; callers must check for nil before using it.
func New(conf *confengine.Config) (*Server, error) {
	config := DefaultConfig()
	if conf == nil || !conf.Has("server") {
		return nil, nil
	}
	if err := conf.UnpackChild("server", &config); err != nil {
		return nil, err
	}
	if !config.Enabled {
		return nil, nil
	}

	router := mux.NewRouter()
	s := &Server{
		config: config,
		router: router,
		server: &http.Server{
			Handler:      router,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
		},
	}
	s.RegisterGetRoute("/healthz", s.handleHealthz)
	s.RegisterGetRoute("/metrics", promhttp.Handler().ServeHTTP)
	if config.Pprof {
		s.registerPprofRoutes()
	}
	return s, nil
}

type healthzResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	UptimeSecond int64  `json:"uptimeSecond"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	info := common.GetBuildInfo()
	version := info.Version
	if version == "" {
		version = common.Version
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthzResponse{
		Status:       "ok",
		Version:      version,
		UptimeSecond: fasttime.UnixTimestamp() - common.Started(),
	})
}

func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	logger.Infof("admin server listening on %s", s.config.Address)
	if err := s.server.Serve(l); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts the admin server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) RegisterGetRoute(path string, f http.HandlerFunc) {
	s.router.Methods(http.MethodGet).Path(path).HandlerFunc(f)
}

func (s *Server) RegisterPostRoute(path string, f http.HandlerFunc) {
	s.router.Methods(http.MethodPost).Path(path).HandlerFunc(f)
}

func (s *Server) registerPprofRoutes() {
	s.RegisterGetRoute("/debug/pprof/cmdline", pprof.Cmdline)
	s.RegisterGetRoute("/debug/pprof/profile", pprof.Profile)
	s.RegisterGetRoute("/debug/pprof/symbol", pprof.Symbol)
	s.RegisterGetRoute("/debug/pprof/trace", pprof.Trace)
	s.RegisterGetRoute("/debug/pprof/{other}", pprof.Index)
}
