// Package config loads the mapping document (synonyms, posting rules,
// canonical column override) from YAML and server settings from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Mapping is the run configuration document. Missing keys default to
// empty/disabled: a zero Mapping maps by canonical names only and derives
// no postings.
type Mapping struct {
	// RequiredColumns overrides the canonical field list; empty keeps the
	// default Alterdata ten-column order.
	RequiredColumns []string `yaml:"required_columns"`

	// Synonyms maps each canonical field name to its accepted alias
	// spellings, matched after normalization.
	Synonyms map[string][]string `yaml:"synonyms"`

	PostingRules PostingRules `yaml:"posting_rules"`
}

// PostingRules configures derivation of debit/credit accounts from a
// single source account column plus the amount sign.
type PostingRules struct {
	Enabled                     bool     `yaml:"enabled"`
	SourceSingleAccountSynonyms []string `yaml:"source_single_account_synonyms"`
	DefaultDebitAccount         string   `yaml:"default_debit_account"`
	DefaultCreditAccount        string   `yaml:"default_credit_account"`
}

// LoadMapping reads and parses a mapping document.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping config: %w", err)
	}
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing mapping config: %w", err)
	}
	return &m, nil
}

// Server holds the upload server settings, read from the environment.
type Server struct {
	Addr           string
	UploadDir      string
	OutputDir      string
	SessionTTL     time.Duration
	MetricsEnabled bool
}

// LoadServer reads server configuration from environment variables with
// development defaults.
func LoadServer() Server {
	return Server{
		Addr:           getEnv("SERVER_ADDR", ":8080"),
		UploadDir:      getEnv("UPLOAD_DIR", "temp_uploads"),
		OutputDir:      getEnv("OUTPUT_DIR", "temp_outputs"),
		SessionTTL:     time.Duration(getEnvAsInt("SESSION_TTL_SECONDS", 600)) * time.Second,
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
