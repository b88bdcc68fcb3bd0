package server

import (
	"log"
	"net"
	"net/http"

	"webshim/internal/config"
)

// Transport is one listening surface of the server.
type Transport interface {
	Listen() (net.Listener, error)
	Serve(listener net.Listener) error
}

type httpServer struct {
	cfg     config.Config
	handler http.Handler
	srv     *http.Server
}

// NewHTTPServer serves plain HTTP. When the config asks for a TLS
// redirect, every request is answered with a redirect to the HTTPS
// port instead of being dispatched.
func NewHTTPServer(cfg config.Config, handler http.Handler) Transport {
	if cfg.TLSRedirect() {
		handler = redirectHandler(cfg)
	}
	return &httpServer{
		cfg:     cfg,
		handler: handler,
	}
}

func (ht *httpServer) Listen() (net.Listener, error) {
	return net.Listen("tcp", ":"+ht.cfg.HTTPPort())
}

func (ht *httpServer) Serve(listener net.Listener) error {
	log.Printf("HTTP server is starting on port %s", ht.cfg.HTTPPort())
	ht.srv = &http.Server{Handler: ht.handler}
	return ht.srv.Serve(listener)
}

func redirectHandler(cfg config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		target := "https://" + host
		if cfg.HTTPSPort() != "443" {
			target += ":" + cfg.HTTPSPort()
		}
		target += r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}
