package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	HttpPort uint16 `envconfig:"NPDA_HTTP_SERVER_PORT" default:"8080" required:"true"`
	LogLevel string `envconfig:"NPDA_LOG_LEVEL" default:"info"`
	// IncludePatientIds makes the API list the patients of every KPI population by
	// default. Requests can still ask for them explicitly.
	IncludePatientIds bool `envconfig:"NPDA_INCLUDE_PATIENT_IDS" default:"false"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func NewConfig() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
