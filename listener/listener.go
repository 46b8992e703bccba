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

// Package listener binds the RESP TCP socket and spawns one connection
// task per accepted client.
package listener

import (
	"errors"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/net/netutil"

	"github.com/kvresp/kvresp/common"
	"github.com/kvresp/kvresp/confengine"
	"github.com/kvresp/kvresp/conn"
	"github.com/kvresp/kvresp/logger"
	"github.com/kvresp/kvresp/store"
)

// Config configures the RESP listener.
type Config struct {
	Address        string `config:"address"`
	MaxConnections int    `config:"maxConnections"`
}

// DefaultConfig binds 0.0.0.0:6379 with a generous but
// finite connection cap, so a runaway client fan-out degrades rather than
// exhausting file descriptors.
func DefaultConfig() Config {
	return Config{
		Address:        "0.0.0.0:6379",
		MaxConnections: 10000,
	}
}

// Listener accepts RESP connections and dispatches each to conn.Handle
// against a single shared Backend.
type Listener struct {
	config  Config
	backend *store.Backend
	ln      net.Listener
}

// New builds a Listener from the "listener" section of conf, falling back
// to DefaultConfig for any field conf doesn't set.
func New(conf *confengine.Config, backend *store.Backend) (*Listener, error) {
	config := DefaultConfig()
	if conf != nil && conf.Has("listener") {
		if err := conf.UnpackChild("listener", &config); err != nil {
			return nil, err
		}
	}
	return &Listener{config: config, backend: backend}, nil
}

var (
	connectionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: common.App,
		Name:      "connections_accepted_total",
		Help:      "total RESP connections accepted",
	})
	connectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: common.App,
		Name:      "connections_active",
		Help:      "RESP connections currently being served",
	})
	acceptErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: common.App,
		Name:      "accept_errors_total",
		Help:      "non-fatal errors from the listener's Accept loop",
	})
)

// ListenAndServe binds the configured address and serves until Close is
// called or a fatal listener error occurs. An individual Accept error is
// logged and the loop continues.
func (l *Listener) ListenAndServe() error {
	ln, err := net.Listen("tcp", l.config.Address)
	if err != nil {
		return err
	}
	if l.config.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, l.config.MaxConnections)
	}
	l.ln = ln

	logger.Infof("resp listener on %s (max connections %d)", l.config.Address, l.config.MaxConnections)

	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			acceptErrorsTotal.Inc()
			logger.Warnf("listener: accept: %v", err)
			continue
		}

		connectionsAccepted.Inc()
		connectionsActive.Inc()
		go func() {
			defer connectionsActive.Dec()
			conn.Handle(c, l.backend)
		}()
	}
}

// Close stops accepting new connections. Already-accepted connections are
// left to drain on their own rather than forcibly severed.
func (l *Listener) Close() error {
	if l.ln == nil {
		return nil
	}
	return l.ln.Close()
}

// Addr returns the bound address. It is only valid after ListenAndServe
// has started listening; primarily useful in tests that bind to ":0".
func (l *Listener) Addr() net.Addr {
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}
