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

// Package grace watches the hubd process: pid file handling, signal
// trapping and graceful restarts that hand open listeners to a forked
// child.
package grace

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Server is the interface the gRPC and HTTP servers implement so the
// watcher can stop them and rebind their sockets.
type Server interface {
	Stop() error
	GracefulStop() error
	Network() string
	Address() string
}

// Watcher watches the process for graceful restarts, preserving open
// network sockets so no packet is dropped across a reload.
type Watcher struct {
	log       zerolog.Logger
	graceful  bool
	ppid      int
	lns       map[string]net.Listener
	ss        map[string]Server
	pidFile   string
	childPIDs []int
}

// Option represents an option.
type Option func(w *Watcher)

// WithLogger adds a logger to the Watcher.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// WithPIDFile specifies the pid file to use.
func WithPIDFile(fn string) Option {
	return func(w *Watcher) {
		w.pidFile = fn
	}
}

// NewWatcher creates a Watcher.
func NewWatcher(opts ...Option) *Watcher {
	w := &Watcher{
		log:      zerolog.Nop(),
		graceful: os.Getenv("GRACEFUL") == "true",
		ppid:     os.Getppid(),
		pidFile:  path.Join(os.TempDir(), "hubd.pid"),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Exit exits the current process cleaning up existing pid files.
func (w *Watcher) Exit(errc int) {
	if err := w.clean(); err != nil {
		w.log.Warn().Err(err).Msg("error removing pid file")
	} else {
		w.log.Info().Msgf("pid file %q got removed", w.pidFile)
	}
	os.Exit(errc)
}

func (w *Watcher) clean() error {
	// only remove the pid file if it was written by us
	filePID, err := w.readPID()
	if err != nil {
		return err
	}

	if filePID != os.Getpid() {
		return fmt.Errorf("pid:%d in pidfile is different from pid:%d, it can be a leftover from a hard shutdown or a triggered reload", filePID, os.Getpid())
	}

	return os.Remove(w.pidFile)
}

func (w *Watcher) readPID() (int, error) {
	piddata, err := os.ReadFile(w.pidFile)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(string(piddata))
	if err != nil {
		return 0, err
	}
	return pid, nil
}

// GetProcessFromFile reads the pidfile and returns the running process
// or an error if the process or file are not available.
func GetProcessFromFile(pfile string) (*os.Process, error) {
	data, err := os.ReadFile(pfile)
	if err != nil {
		return nil, err
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return nil, err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return nil, err
	}

	return process, nil
}

// WritePID writes the pid to the configured pid file.
func (w *Watcher) WritePID() error {
	if piddata, err := os.ReadFile(w.pidFile); err == nil {
		if pid, err := strconv.Atoi(string(piddata)); err == nil {
			if process, err := os.FindProcess(pid); err == nil {
				if err := process.Signal(syscall.Signal(0)); err == nil {
					if !w.graceful {
						return fmt.Errorf("pid already running: %d", pid)
					}

					if pid != w.ppid { // overwrite only if the pidfile holds our parent
						return fmt.Errorf("pid %d is not this process parent", pid)
					}
				}
			}
		}
	}

	if err := os.WriteFile(w.pidFile, []byte(strconv.Itoa(os.Getpid())), 0664); err != nil {
		return err
	}
	w.log.Info().Msgf("pidfile written to %s", w.pidFile)
	return nil
}

// GetListeners returns a listener per server, inheriting the parent's
// socket fds on a graceful restart and creating fresh ones otherwise.
func (w *Watcher) GetListeners(servers map[string]Server) (map[string]net.Listener, error) {
	w.ss = servers
	lns := map[string]net.Listener{}

	// iterate in a fixed order, fd numbers must match between parent
	// and child
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	if w.graceful {
		w.log.Info().Msg("graceful restart, inheriting parent listener fds")
		count := 3 // ExtraFiles start after stdin, stdout, stderr
		for _, name := range names {
			s := servers[name]
			fd := os.NewFile(uintptr(count), "")
			count++
			ln, err := net.FileListener(fd)
			if err != nil {
				w.log.Error().Err(err).Msg("error creating net.Listener from fd, binding fresh socket")
				ln, err = net.Listen(s.Network(), s.Address())
				if err != nil {
					return nil, err
				}
			}
			lns[name] = ln
		}

		w.log.Info().Msgf("killing parent pid gracefully with SIGQUIT: %d", w.ppid)
		if err := syscall.Kill(w.ppid, syscall.SIGQUIT); err != nil {
			return nil, errors.Wrap(err, "error killing parent process")
		}
		w.lns = lns
		return lns, nil
	}

	for _, name := range names {
		s := servers[name]
		ln, err := net.Listen(s.Network(), s.Address())
		if err != nil {
			return nil, err
		}
		lns[name] = ln
	}
	w.lns = lns
	return lns, nil
}

// TrapSignals captures OS signals: SIGHUP forks a child inheriting the
// sockets, SIGQUIT drains with a deadline, SIGINT/SIGTERM stop hard.
func (w *Watcher) TrapSignals() {
	signalCh := make(chan os.Signal, 1024)
	signal.Notify(signalCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	for {
		s := <-signalCh
		w.log.Info().Msgf("%v signal received", s)

		switch s {
		case syscall.SIGHUP:
			w.log.Info().Msg("preparing for a hot-reload, forking child process...")
			p, err := w.forkChild()
			if err != nil {
				w.log.Error().Err(err).Msg("unable to fork child process")
			} else {
				w.log.Info().Msgf("child forked with new pid %d", p.Pid)
				w.childPIDs = append(w.childPIDs, p.Pid)
			}

		case syscall.SIGQUIT:
			w.log.Info().Msg("preparing for a graceful shutdown with deadline of 10 seconds")
			go func() {
				count := 10
				for range time.Tick(time.Second) {
					count--
					w.log.Info().Msgf("shutting down in %d seconds", count)
					if count <= 0 {
						w.log.Info().Msg("deadline reached before draining active conns, hard stopping ...")
						w.stopServers()
						w.Exit(1)
					}
				}
			}()
			for name, s := range w.ss {
				w.log.Info().Msgf("%s server gracefully closed", name)
				if err := s.GracefulStop(); err != nil {
					w.log.Error().Err(err).Msg("error stopping server")
					w.Exit(1)
				}
			}
			w.Exit(0)

		case syscall.SIGINT, syscall.SIGTERM:
			w.log.Info().Msg("preparing for hard shutdown, aborting all conns")
			w.stopServers()
			w.Exit(0)
		}
	}
}

func (w *Watcher) stopServers() {
	for name, s := range w.ss {
		w.log.Info().Msgf("fd to %s:%s abruptly closed", s.Network(), s.Address())
		if err := s.Stop(); err != nil {
			w.log.Error().Err(err).Msgf("error stopping %s server", name)
		}
	}
}

func getListenerFile(ln net.Listener) (*os.File, error) {
	switch t := ln.(type) {
	case *net.TCPListener:
		return t.File()
	case *net.UnixListener:
		return t.File()
	}
	return nil, fmt.Errorf("unsupported listener: %T", ln)
}

func (w *Watcher) forkChild() (*os.Process, error) {
	// collect listener fds in the same sorted order GetListeners used
	names := make([]string, 0, len(w.lns))
	for name := range w.lns {
		names = append(names, name)
	}
	sort.Strings(names)

	fds := []*os.File{}
	for _, name := range names {
		fd, err := getListenerFile(w.lns[name])
		if err != nil {
			return nil, err
		}
		fds = append(fds, fd)
	}

	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	files = append(files, fds...)

	environment := append(os.Environ(), "GRACEFUL=true")

	execName, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execDir := filepath.Dir(execName)

	p, err := os.StartProcess(execName, os.Args, &os.ProcAttr{
		Dir:   execDir,
		Env:   environment,
		Files: files,
		Sys:   &syscall.SysProcAttr{},
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}
