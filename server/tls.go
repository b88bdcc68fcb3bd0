package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/caddyserver/certmagic"
	"github.com/libdns/cloudflare"

	"webshim/internal/config"
)

// NewTLSConfig returns a tls.Config for the configured domain. User-provided
// certificate files under the storage path take precedence; otherwise
// certificates are obtained through CertMagic with a Cloudflare DNS-01
// solver. Initialization runs once per process.
func NewTLSConfig(cfg config.Config) (*tls.Config, error) {
	var initErr error

	tlsManagerOnce.Do(func() {
		tm := createTLSManager(cfg)
		initErr = tm.initialize()
		if initErr == nil {
			globalTLSManager = tm
		}
	})

	if initErr != nil {
		return nil, initErr
	}

	return globalTLSManager.getTLSConfig(), nil
}

type tlsManager struct {
	config config.Config

	certPath    string
	keyPath     string
	storagePath string

	userCert *tls.Certificate

	magic *certmagic.Config

	useCertMagic bool
}

var globalTLSManager *tlsManager
var tlsManagerOnce sync.Once

func createTLSManager(cfg config.Config) *tlsManager {
	cleanBase := filepath.Clean(cfg.TLSStoragePath())

	return &tlsManager{
		config:      cfg,
		certPath:    filepath.Join(cleanBase, "cert.pem"),
		keyPath:     filepath.Join(cleanBase, "privkey.pem"),
		storagePath: filepath.Join(cleanBase, "certmagic"),
	}
}

func (tm *tlsManager) initialize() error {
	if tm.certFilesExist() {
		return tm.initializeWithUserCerts()
	}
	return tm.initializeWithCertMagic()
}

func (tm *tlsManager) certFilesExist() bool {
	if _, err := os.Stat(tm.certPath); os.IsNotExist(err) {
		return false
	}
	if _, err := os.Stat(tm.keyPath); os.IsNotExist(err) {
		return false
	}
	return true
}

func (tm *tlsManager) initializeWithUserCerts() error {
	log.Printf("Using user-provided certificates from %s and %s", tm.certPath, tm.keyPath)

	cert, err := tls.LoadX509KeyPair(tm.certPath, tm.keyPath)
	if err != nil {
		return fmt.Errorf("failed to load user certificates: %w", err)
	}

	tm.userCert = &cert
	tm.useCertMagic = false
	return nil
}

func (tm *tlsManager) initializeWithCertMagic() error {
	log.Printf("User certificates not found under %s, using CertMagic", filepath.Dir(tm.certPath))

	if err := tm.initCertMagic(); err != nil {
		return fmt.Errorf("failed to initialize CertMagic: %w", err)
	}

	tm.useCertMagic = true
	return nil
}

func (tm *tlsManager) initCertMagic() error {
	if err := tm.createStorageDirectory(); err != nil {
		return err
	}

	if tm.config.CFAPIToken() == "" {
		return fmt.Errorf("CF_API_TOKEN environment variable is required for automatic certificate generation")
	}

	magic := tm.createCertMagicConfig()
	tm.magic = magic

	return tm.obtainCertificates(magic)
}

func (tm *tlsManager) createStorageDirectory() error {
	if err := os.MkdirAll(tm.storagePath, 0700); err != nil {
		return fmt.Errorf("failed to create cert storage directory: %w", err)
	}
	return nil
}

func (tm *tlsManager) createCertMagicConfig() *certmagic.Config {
	cfProvider := &cloudflare.Provider{
		APIToken: tm.config.CFAPIToken(),
	}

	storage := &certmagic.FileStorage{Path: tm.storagePath}

	cache := certmagic.NewCache(certmagic.CacheOptions{
		GetConfigForCert: func(cert certmagic.Certificate) (*certmagic.Config, error) {
			return tm.magic, nil
		},
	})

	magic := certmagic.New(cache, certmagic.Config{
		Storage: storage,
	})

	acmeIssuer := tm.createACMEIssuer(magic, cfProvider)
	magic.Issuers = []certmagic.Issuer{acmeIssuer}

	return magic
}

func (tm *tlsManager) createACMEIssuer(magic *certmagic.Config, cfProvider *cloudflare.Provider) *certmagic.ACMEIssuer {
	acmeIssuer := certmagic.NewACMEIssuer(magic, certmagic.ACMEIssuer{
		Email:  tm.config.ACMEEmail(),
		Agreed: true,
		DNS01Solver: &certmagic.DNS01Solver{
			DNSManager: certmagic.DNSManager{
				DNSProvider: cfProvider,
			},
		},
	})

	if tm.config.ACMEStaging() {
		acmeIssuer.CA = certmagic.LetsEncryptStagingCA
		log.Printf("Using Let's Encrypt staging server")
	} else {
		acmeIssuer.CA = certmagic.LetsEncryptProductionCA
		log.Printf("Using Let's Encrypt production server")
	}

	return acmeIssuer
}

func (tm *tlsManager) obtainCertificates(magic *certmagic.Config) error {
	domains := []string{tm.config.Domain()}
	log.Printf("Requesting certificates for: %v", domains)

	ctx := context.Background()
	if err := magic.ManageSync(ctx, domains); err != nil {
		return fmt.Errorf("failed to obtain certificates: %w", err)
	}

	log.Printf("Certificates obtained successfully for %v", domains)
	return nil
}

func (tm *tlsManager) getTLSConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: tm.getCertificate,

		MinVersion: tls.VersionTLS13,
		MaxVersion: tls.VersionTLS13,

		CurvePreferences: []tls.CurveID{
			tls.X25519,
		},

		SessionTicketsDisabled: false,
		ClientAuth:             tls.NoClientCert,
	}
}

func (tm *tlsManager) getCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	if tm.useCertMagic {
		return tm.magic.GetCertificate(hello)
	}

	if tm.userCert == nil {
		return nil, fmt.Errorf("no certificate available")
	}
	return tm.userCert, nil
}
