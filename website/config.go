// Package website implements the deployment lifecycle for a static website
// hosting stack: a private object-storage bucket fronted by a CDN
// distribution, kept in sync with a local content directory and invalidated
// only when content actually changed.
package website

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigType is the declarative type tag identifying a static website block.
const ConfigType = "static-website"

// SecurityConfig holds optional security-related settings.
type SecurityConfig struct {
	// AllowIframe drops the frame-blocking response header so the site can
	// be embedded in iframes. Off by default.
	AllowIframe bool `json:"allowIframe" yaml:"allowIframe"`
}

// Config is the declarative specification of one static website instance.
// It is created at load time, validated once, and immutable for the process
// lifetime.
type Config struct {
	// Name identifies the website instance within its stack.
	Name string `json:"name" yaml:"name"`

	// Path is the local directory holding the pre-built site content.
	Path string `json:"path" yaml:"path"`

	// Domains are the custom domains served by the CDN distribution. The
	// first entry is the primary domain published as the site URL.
	Domains []string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Certificate is the ARN of the viewer certificate bound to the custom
	// domains. Required whenever Domains is non-empty.
	Certificate string `json:"certificate,omitempty" yaml:"certificate,omitempty"`

	// Security holds optional security settings.
	Security SecurityConfig `json:"security,omitempty" yaml:"security,omitempty"`
}

// Validate checks the configuration, returning a *ConfigurationError
// describing the first problem found. It has no side effects.
func (c *Config) Validate() error {
	if c.Path == "" {
		return &ConfigurationError{Site: c.Name, Field: "path", Reason: "path is required"}
	}
	if len(c.Domains) > 0 && c.Certificate == "" {
		return &ConfigurationError{
			Site:   c.Name,
			Field:  "certificate",
			Reason: "certificate is required when domain is set",
		}
	}
	return nil
}

// LoadConfig reads and validates a website configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig parses a raw map (from YAML) into a validated Config. The
// "domain" key accepts either a single string or a list of strings.
func ParseConfig(raw map[string]any) (*Config, error) {
	if raw == nil {
		return nil, fmt.Errorf("config is nil")
	}

	cfg := &Config{}

	if typ, ok := raw["type"].(string); ok && typ != ConfigType {
		return nil, fmt.Errorf("unsupported config type %q, want %q", typ, ConfigType)
	}
	if name, ok := raw["name"].(string); ok {
		cfg.Name = name
	}
	if path, ok := raw["path"].(string); ok {
		cfg.Path = path
	}
	if cert, ok := raw["certificate"].(string); ok {
		cfg.Certificate = cert
	}

	if domainRaw, ok := raw["domain"]; ok {
		domains, err := parseDomains(domainRaw)
		if err != nil {
			return nil, &ConfigurationError{Site: cfg.Name, Field: "domain", Reason: err.Error()}
		}
		cfg.Domains = domains
	}

	if secRaw, ok := raw["security"]; ok {
		secMap, ok := secRaw.(map[string]any)
		if !ok {
			return nil, &ConfigurationError{Site: cfg.Name, Field: "security", Reason: "must be a map"}
		}
		if allow, ok := secMap["allowIframe"].(bool); ok {
			cfg.Security.AllowIframe = allow
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDomains normalizes the "domain" value to a string slice.
func parseDomains(v any) ([]string, error) {
	switch d := v.(type) {
	case string:
		return []string{d}, nil
	case []string:
		return d, nil
	case []any:
		domains := make([]string, 0, len(d))
		for i, item := range d {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry at index %d is not a string", i)
			}
			domains = append(domains, s)
		}
		return domains, nil
	default:
		return nil, fmt.Errorf("must be a string or a list of strings")
	}
}

// PrimaryDomain returns the first configured domain, or "" when the site has
// no custom domains and should be served from the CDN's default hostname.
// When multiple domains are configured only the first is treated as primary.
func (c *Config) PrimaryDomain() string {
	if len(c.Domains) == 0 {
		return ""
	}
	return c.Domains[0]
}
