package server

import (
	"fmt"
	"strings"
	"sync"

	"webshim/fetch"
)

// HandlerFunc is the shape of a shimmed handler: it receives the translated
// request and returns the response to translate back. It never touches
// host-native objects.
type HandlerFunc func(req *fetch.Request) *fetch.Response

var (
	ErrRouteNotFound  = fmt.Errorf("route not found")
	ErrRouteInUse     = fmt.Errorf("route already registered")
	ErrInvalidPattern = fmt.Errorf("invalid route pattern")
)

type routeKey struct {
	method  string
	pattern string
}

// Mux maps method+path to handlers. Patterns are exact paths; a pattern
// ending in "/" also matches everything below it, longest prefix winning.
type Mux struct {
	mu     sync.RWMutex
	routes map[routeKey]HandlerFunc
}

func NewMux() *Mux {
	return &Mux{
		routes: make(map[routeKey]HandlerFunc),
	}
}

func (m *Mux) Handle(method, pattern string, handler HandlerFunc) error {
	if handler == nil || !strings.HasPrefix(pattern, "/") {
		return ErrInvalidPattern
	}
	key := routeKey{method: strings.ToUpper(method), pattern: pattern}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.routes[key]; exists {
		return ErrRouteInUse
	}
	m.routes[key] = handler
	return nil
}

func (m *Mux) Remove(method, pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.routes, routeKey{method: strings.ToUpper(method), pattern: pattern})
}

func (m *Mux) Lookup(method, path string) (HandlerFunc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	method = strings.ToUpper(method)
	if h, ok := m.routes[routeKey{method: method, pattern: path}]; ok {
		return h, nil
	}

	var best HandlerFunc
	bestLen := -1
	for key, h := range m.routes {
		if key.method != method || !strings.HasSuffix(key.pattern, "/") {
			continue
		}
		if strings.HasPrefix(path, key.pattern) && len(key.pattern) > bestLen {
			best = h
			bestLen = len(key.pattern)
		}
	}
	if best == nil {
		return nil, ErrRouteNotFound
	}
	return best, nil
}
