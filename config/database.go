package config

// RedisConfig contains Redis configuration for the refresh limiter.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`

	// Enabled controls whether the refresh limiter is wired at all.
	Enabled bool `env:"ENABLED" envDefault:"false"`
}

// AuditConfig contains configuration for the audit decision log.
type AuditConfig struct {
	// Enabled controls whether gate decisions are persisted.
	Enabled bool `env:"AUDIT_ENABLED" envDefault:"false"`

	// DatabaseURL is the Postgres connection string for the audit sink.
	DatabaseURL string `env:"AUDIT_DATABASE_URL" envDefault:""`

	// Buffer is the in-memory event buffer size. Events beyond it are
	// dropped rather than blocking the request pipeline.
	Buffer int `env:"AUDIT_BUFFER" envDefault:"1024"`
}

// Sanitize applies guardrails to audit configuration values.
func (a *AuditConfig) Sanitize() {
	if a.Buffer <= 0 {
		a.Buffer = 1024
	}
	if a.DatabaseURL == "" {
		a.Enabled = false
	}
}
