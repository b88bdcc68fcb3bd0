package server

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"webshim/internal/config"
	"webshim/internal/middleware"
)

// Server ties the route table, the dispatcher and the transports
// together. Register routes and middleware before calling Run.
type Server struct {
	Config     config.Config
	Mux        *Mux
	ErrChan    chan error
	SignalChan chan os.Signal

	dispatcher *dispatcher
}

func New(cfg config.Config) *Server {
	mux := NewMux()
	d := newDispatcher(cfg, mux)
	d.respMW = append(d.respMW, middleware.NewServerHeader(cfg.ServerName()))

	return &Server{
		Config:     cfg,
		Mux:        mux,
		ErrChan:    make(chan error, 5),
		SignalChan: make(chan os.Signal, 1),
		dispatcher: d,
	}
}

func (s *Server) Handle(method, pattern string, handler HandlerFunc) error {
	return s.Mux.Handle(method, pattern, handler)
}

func (s *Server) Use(mw middleware.RequestMiddleware) {
	s.dispatcher.reqMW = append(s.dispatcher.reqMW, mw)
}

func (s *Server) UseResponse(mw middleware.ResponseMiddleware) {
	s.dispatcher.respMW = append(s.dispatcher.respMW, mw)
}

func startTransport(t Transport, name string, errChan chan<- error) {
	ln, err := t.Listen()
	if err != nil {
		errChan <- fmt.Errorf("failed to start %s server: %w", name, err)
		return
	}
	if err = t.Serve(ln); err != nil {
		errChan <- fmt.Errorf("error when serving %s server: %w", name, err)
	}
}

func (s *Server) startHTTPS() {
	tlsCfg, err := NewTLSConfig(s.Config)
	if err != nil {
		s.ErrChan <- fmt.Errorf("failed to create TLS config: %w", err)
		return
	}
	startTransport(NewHTTPSServer(s.Config, s.dispatcher, tlsCfg), "https", s.ErrChan)
}

// Run blocks until a transport fails or the process receives an
// interrupt or termination signal.
func (s *Server) Run() error {
	signal.Notify(s.SignalChan, os.Interrupt, syscall.SIGTERM)

	go startTransport(NewHTTPServer(s.Config, s.dispatcher), "http", s.ErrChan)

	if s.Config.TLSEnabled() {
		go s.startHTTPS()
	}

	log.Println("All services started successfully")

	select {
	case err := <-s.ErrChan:
		return fmt.Errorf("service error: %w", err)
	case sig := <-s.SignalChan:
		log.Printf("Received signal %s, initiating graceful shutdown", sig)
		return nil
	}
}
