package server

import (
	"errors"
	"log"
	"net"
	"net/http"

	"webshim/fetch"
	"webshim/internal/config"
	"webshim/internal/middleware"
)

// dispatcher is the glue between the host's request callbacks and shimmed
// handlers: translate in, run middleware, invoke, translate out.
type dispatcher struct {
	cfg    config.Config
	mux    *Mux
	reqMW  []middleware.RequestMiddleware
	respMW []middleware.ResponseMiddleware
}

func newDispatcher(cfg config.Config, mux *Mux) *dispatcher {
	return &dispatcher{cfg: cfg, mux: mux}
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(d.cfg.MaxBodySize()))

	req, err := fetch.FromHTTPRequest(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			d.write(w, fetch.Error(http.StatusRequestEntityTooLarge, ""))
			return
		}
		log.Printf("Error translating inbound request: %v", err)
		d.write(w, fetch.Error(http.StatusBadRequest, ""))
		return
	}

	forwarded := middleware.NewForwardedFor(remoteAddr(r.RemoteAddr))
	if err := forwarded.HandleRequest(req); err != nil {
		log.Printf("Cannot record forwarded address: %v", err)
	}

	for _, mw := range d.reqMW {
		if err := mw.HandleRequest(req); err != nil {
			log.Printf("Error when applying request middleware: %v", err)
			d.write(w, fetch.Error(http.StatusInternalServerError, ""))
			return
		}
	}

	handler, err := d.mux.Lookup(req.Method, req.URL.Pathname())
	if err != nil {
		d.write(w, fetch.Error(http.StatusNotFound, ""))
		return
	}

	resp := d.invoke(handler, req)

	for _, mw := range d.respMW {
		if err := mw.HandleResponse(resp); err != nil {
			log.Printf("Cannot apply response middleware: %s", err)
			d.write(w, fetch.Error(http.StatusInternalServerError, ""))
			return
		}
	}

	d.write(w, resp)
}

func (d *dispatcher) invoke(handler HandlerFunc, req *fetch.Request) (resp *fetch.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Handler panic on %s %s: %v", req.Method, req.URL.Pathname(), rec)
			resp = fetch.Error(http.StatusInternalServerError, "")
		}
	}()
	resp = handler(req)
	if resp == nil {
		resp = fetch.Error(http.StatusInternalServerError, "")
	}
	return resp
}

func (d *dispatcher) write(w http.ResponseWriter, resp *fetch.Response) {
	if err := resp.Write(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// remoteAddr adapts the host's string form into a net.Addr for middleware.
type remoteAddr string

func (a remoteAddr) Network() string { return "tcp" }
func (a remoteAddr) String() string  { return string(a) }

var _ net.Addr = remoteAddr("")
