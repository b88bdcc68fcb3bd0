package config

type Config interface {
	Domain() string

	HTTPPort() string
	HTTPSPort() string

	TLSEnabled() bool
	TLSRedirect() bool
	TLSStoragePath() string

	ACMEEmail() string
	CFAPIToken() string
	ACMEStaging() bool

	ServerName() string
	MaxBodySize() int
}

func MustLoad() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) Domain() string         { return c.domain }
func (c *config) HTTPPort() string       { return c.httpPort }
func (c *config) HTTPSPort() string      { return c.httpsPort }
func (c *config) TLSEnabled() bool       { return c.tlsEnabled }
func (c *config) TLSRedirect() bool      { return c.tlsRedirect }
func (c *config) TLSStoragePath() string { return c.tlsStoragePath }
func (c *config) ACMEEmail() string      { return c.acmeEmail }
func (c *config) CFAPIToken() string     { return c.cfAPIToken }
func (c *config) ACMEStaging() bool      { return c.acmeStaging }
func (c *config) ServerName() string     { return c.serverName }
func (c *config) MaxBodySize() int       { return c.maxBodySize }
