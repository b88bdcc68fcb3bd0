package server

import (
	"crypto/tls"
	"log"
	"net"
	"net/http"

	"webshim/internal/config"
)

type httpsServer struct {
	cfg       config.Config
	tlsConfig *tls.Config
	handler   http.Handler
	srv       *http.Server
}

func NewHTTPSServer(cfg config.Config, handler http.Handler, tlsConfig *tls.Config) Transport {
	return &httpsServer{
		cfg:       cfg,
		tlsConfig: tlsConfig,
		handler:   handler,
	}
}

func (ht *httpsServer) Listen() (net.Listener, error) {
	return tls.Listen("tcp", ":"+ht.cfg.HTTPSPort(), ht.tlsConfig)
}

func (ht *httpsServer) Serve(listener net.Listener) error {
	log.Printf("HTTPS server is starting on port %s", ht.cfg.HTTPSPort())
	ht.srv = &http.Server{Handler: ht.handler}
	return ht.srv.Serve(listener)
}
