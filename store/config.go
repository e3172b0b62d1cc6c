package store

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

type Config struct {
	DatabaseName string `envconfig:"NPDA_DATABASE_NAME" default:"npda"`
	Hosts        string `envconfig:"NPDA_STORE_ADDRESSES" default:"localhost"`
	OptParams    string `envconfig:"NPDA_STORE_OPT_PARAMS"`
	Password     string `envconfig:"NPDA_STORE_PASSWORD"`
	Scheme       string `envconfig:"NPDA_STORE_SCHEME" default:"mongodb"`
	Ssl          bool   `envconfig:"NPDA_STORE_TLS"`
	User         string `envconfig:"NPDA_STORE_USERNAME"`
}

// GetConnectionString builds the mongo uri of the configured deployment. Credentials
// are escaped, the hosts are a comma separated list.
func GetConnectionString(c *Config) (string, error) {
	scheme := c.Scheme
	switch scheme {
	case "":
		scheme = "mongodb"
	case "mongodb", "mongodb+srv":
	default:
		return "", fmt.Errorf("unsupported store scheme %q", c.Scheme)
	}

	hosts := strings.TrimSpace(c.Hosts)
	if hosts == "" {
		hosts = "localhost"
	}

	var cs strings.Builder
	cs.WriteString(scheme)
	cs.WriteString("://")
	if c.User != "" {
		cs.WriteString(url.QueryEscape(c.User))
		if c.Password != "" {
			cs.WriteString(":")
			cs.WriteString(url.QueryEscape(c.Password))
		}
		cs.WriteString("@")
	}
	cs.WriteString(hosts)
	fmt.Fprintf(&cs, "/?ssl=%t", c.Ssl)
	if c.OptParams != "" {
		cs.WriteString("&")
		cs.WriteString(c.OptParams)
	}

	return cs.String(), nil
}
