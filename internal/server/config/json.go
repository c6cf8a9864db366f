package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userauth/internal/flagx"
	"github.com/dmitrijs2005/userauth/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for the token lifetime, which allows parsing both
// string values such as "30m" and integer nanoseconds.
//
// Pointer fields distinguish "absent" from the zero value so that a partial
// file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	Algorithm                   *string         `json:"algorithm"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	CookieSecure                *bool           `json:"cookie_secure"`
	PublicPaths                 []string        `json:"public_paths"`
	CORSAllowedOrigins          []string        `json:"cors_allowed_origins"`
	GinMode                     *string         `json:"gin_mode"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags. If neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.Algorithm != nil {
		config.Algorithm = *c.Algorithm
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.PublicPaths != nil {
		config.PublicPaths = c.PublicPaths
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.GinMode != nil {
		config.GinMode = *c.GinMode
	}
}
