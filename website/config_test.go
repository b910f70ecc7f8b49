package website

import (
	"errors"
	"testing"
)

func TestValidate_DomainRequiresCertificate(t *testing.T) {
	cfg := &Config{
		Name:    "docs",
		Path:    "./dist",
		Domains: []string{"docs.example.com"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
	if confErr.Site != "docs" {
		t.Errorf("Site = %q, want docs", confErr.Site)
	}
	if confErr.Field != "certificate" {
		t.Errorf("Field = %q, want certificate", confErr.Field)
	}
}

func TestValidate_PathRequired(t *testing.T) {
	cfg := &Config{Name: "docs"}
	var confErr *ConfigurationError
	if err := cfg.Validate(); !errors.As(err, &confErr) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}

func TestValidate_NoDomainNoCertificateOK(t *testing.T) {
	cfg := &Config{Name: "docs", Path: "./dist"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestValidate_DomainWithCertificateOK(t *testing.T) {
	cfg := &Config{
		Name:        "docs",
		Path:        "./dist",
		Domains:     []string{"example.com", "www.example.com"},
		Certificate: "arn:aws:acm:us-east-1:123456789012:certificate/abc",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestParseConfig_SingleDomainString(t *testing.T) {
	cfg, err := ParseConfig(map[string]any{
		"type":        "static-website",
		"name":        "docs",
		"path":        "./dist",
		"domain":      "example.com",
		"certificate": "arn:aws:acm:us-east-1:123456789012:certificate/abc",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(cfg.Domains) != 1 || cfg.Domains[0] != "example.com" {
		t.Errorf("Domains = %v, want [example.com]", cfg.Domains)
	}
}

func TestParseConfig_DomainList(t *testing.T) {
	cfg, err := ParseConfig(map[string]any{
		"name":        "docs",
		"path":        "./dist",
		"domain":      []any{"example.com", "www.example.com"},
		"certificate": "arn:aws:acm:us-east-1:123456789012:certificate/abc",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(cfg.Domains) != 2 {
		t.Fatalf("expected 2 domains, got %v", cfg.Domains)
	}
	if cfg.PrimaryDomain() != "example.com" {
		t.Errorf("PrimaryDomain = %q, want the first configured domain", cfg.PrimaryDomain())
	}
}

func TestParseConfig_RejectsDomainWithoutCertificate(t *testing.T) {
	_, err := ParseConfig(map[string]any{
		"name":   "docs",
		"path":   "./dist",
		"domain": "example.com",
	})

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}

func TestParseConfig_RejectsWrongType(t *testing.T) {
	_, err := ParseConfig(map[string]any{
		"type": "reverse-proxy",
		"path": "./dist",
	})
	if err == nil {
		t.Fatal("expected error for wrong config type")
	}
}

func TestParseConfig_Security(t *testing.T) {
	cfg, err := ParseConfig(map[string]any{
		"name":     "docs",
		"path":     "./dist",
		"security": map[string]any{"allowIframe": true},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !cfg.Security.AllowIframe {
		t.Error("expected AllowIframe=true")
	}
}

func TestParseConfig_RejectsBadDomainType(t *testing.T) {
	_, err := ParseConfig(map[string]any{
		"name":        "docs",
		"path":        "./dist",
		"domain":      42,
		"certificate": "arn:aws:acm:us-east-1:123456789012:certificate/abc",
	})

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
	if confErr.Field != "domain" {
		t.Errorf("Field = %q, want domain", confErr.Field)
	}
}

func TestQualifiedOutput(t *testing.T) {
	if got := QualifiedOutput("docs", OutputBucketName); got != "docs.bucketName" {
		t.Errorf("QualifiedOutput = %q, want docs.bucketName", got)
	}
	if got := QualifiedOutput("", OutputCNAME); got != "website.cname" {
		t.Errorf("QualifiedOutput = %q, want website.cname for unnamed site", got)
	}
}
