package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type config struct {
	domain string

	httpPort  string
	httpsPort string

	tlsEnabled     bool
	tlsRedirect    bool
	tlsStoragePath string
	acmeEmail      string
	cfAPIToken     string
	acmeStaging    bool

	serverName  string
	maxBodySize int
}

func parse() (*config, error) {
	domain := getenv("DOMAIN", "localhost")

	httpPort := getenv("HTTP_PORT", "8080")
	httpsPort := getenv("HTTPS_PORT", "8443")

	tlsEnabled := getenvBool("TLS_ENABLED", false)
	tlsRedirect := tlsEnabled && getenvBool("TLS_REDIRECT", false)
	tlsStoragePath := getenv("TLS_STORAGE_PATH", "certs/tls/")

	acmeEmail := getenv("ACME_EMAIL", "admin@"+domain)
	acmeStaging := getenvBool("ACME_STAGING", false)

	cfToken := getenv("CF_API_TOKEN", "")
	if tlsEnabled && cfToken == "" {
		return nil, fmt.Errorf("CF_API_TOKEN is required when TLS is enabled")
	}

	serverName := getenv("SERVER_NAME", "webshim")
	maxBodySize := parseMaxBodySize()

	return &config{
		domain:         domain,
		httpPort:       httpPort,
		httpsPort:      httpsPort,
		tlsEnabled:     tlsEnabled,
		tlsRedirect:    tlsRedirect,
		tlsStoragePath: tlsStoragePath,
		acmeEmail:      acmeEmail,
		cfAPIToken:     cfToken,
		acmeStaging:    acmeStaging,
		serverName:     serverName,
		maxBodySize:    maxBodySize,
	}, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

// parseMaxBodySize bounds the inbound payload limit; the shim buffers every
// body in memory, so an unbounded limit is not an option.
func parseMaxBodySize() int {
	const def = 10 << 20
	raw := getenv("MAX_BODY_SIZE", "")
	if raw == "" {
		return def
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 4096 || size > 1<<30 {
		log.Printf("Invalid MAX_BODY_SIZE, falling back to %d", def)
		return def
	}
	return size
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val == "true"
}
