// Copyright 2018-2021 CERN
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// In applying this license, CERN does not waive the privileges and immunities
// granted to it by virtue of its status as an Intergovernmental Organization
// or submit itself to any jurisdiction.

// Package grpcserver runs the control-plane gRPC server. Services
// register themselves at init time and are enabled from the config.
package grpcserver

import (
	"io"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/extensionhub/hub/cmd/hubd/svcs/grpcsvcs/interceptors/appctx"
	"github.com/extensionhub/hub/cmd/hubd/svcs/grpcsvcs/interceptors/log"
	"github.com/extensionhub/hub/cmd/hubd/svcs/grpcsvcs/interceptors/recovery"
)

// Services is a map of service name and its new function.
var Services = map[string]NewService{}

// Register registers a new gRPC service with name and new function.
func Register(name string, newFunc NewService) {
	Services[name] = newFunc
}

// NewService is the function that gRPC services need to register at
// init time.
type NewService func(conf map[string]interface{}, ss *grpc.Server) (io.Closer, error)

type config struct {
	Network          string                            `mapstructure:"network"`
	Address          string                            `mapstructure:"address"`
	ShutdownDeadline int                               `mapstructure:"shutdown_deadline"`
	EnabledServices  []string                          `mapstructure:"enabled_services"`
	Services         map[string]map[string]interface{} `mapstructure:"services"`
}

// Server is a gRPC server.
type Server struct {
	s        *grpc.Server
	conf     *config
	listener net.Listener
	log      zerolog.Logger
	closers  map[string]io.Closer
}

// New returns a new Server.
func New(m interface{}, l zerolog.Logger) (*Server, error) {
	conf := &config{}
	if err := mapstructure.Decode(m, conf); err != nil {
		return nil, err
	}

	// apply defaults
	if conf.Network == "" {
		conf.Network = "tcp"
	}
	if conf.Address == "" {
		conf.Address = "0.0.0.0:9999"
	}

	server := &Server{conf: conf, log: l, closers: map[string]io.Closer{}}

	unaryChain := grpc_middleware.ChainUnaryServer(
		appctx.NewUnary(l),
		log.NewUnary(),
		recovery.NewUnary(),
	)
	streamChain := grpc_middleware.ChainStreamServer(
		appctx.NewStream(l),
		recovery.NewStream(),
	)

	server.s = grpc.NewServer(
		grpc.UnaryInterceptor(unaryChain),
		grpc.StreamInterceptor(streamChain),
	)
	return server, nil
}

// Start starts the server.
func (s *Server) Start(ln net.Listener) error {
	if err := s.registerServices(); err != nil {
		return errors.Wrap(err, "unable to register services")
	}

	s.listener = ln
	s.log.Info().Msgf("grpc server listening at %s:%s", s.Network(), s.Address())
	if err := s.s.Serve(s.listener); err != nil {
		return errors.Wrap(err, "serve failed")
	}
	return nil
}

func (s *Server) isServiceEnabled(name string) bool {
	for _, k := range s.conf.EnabledServices {
		if k == name {
			return true
		}
	}
	return false
}

func (s *Server) registerServices() error {
	for name, newFunc := range Services {
		if s.isServiceEnabled(name) {
			closer, err := newFunc(s.conf.Services[name], s.s)
			if err != nil {
				return err
			}
			s.closers[name] = closer
			s.log.Info().Msgf("grpc service enabled: %s", name)
		} else {
			s.log.Info().Msgf("grpc service disabled: %s", name)
		}
	}
	return nil
}

func (s *Server) cleanupServices() {
	for name, closer := range s.closers {
		if err := closer.Close(); err != nil {
			s.log.Error().Err(err).Msgf("error closing service %q", name)
		} else {
			s.log.Info().Msgf("service %q correctly closed", name)
		}
	}
}

// Stop stops the server.
func (s *Server) Stop() error {
	s.cleanupServices()
	s.s.Stop()
	return nil
}

// GracefulStop gracefully stops the server.
func (s *Server) GracefulStop() error {
	s.cleanupServices()
	s.s.GracefulStop()
	return nil
}

// Network returns the network type.
func (s *Server) Network() string {
	return s.conf.Network
}

// Address returns the network address.
func (s *Server) Address() string {
	return s.conf.Address
}
