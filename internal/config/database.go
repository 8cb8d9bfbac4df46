// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

const applicationName = "web-prodavnica"

// DSN renders the libpq keyword/value connection string. Sessions run in UTC
// so order timestamps compare the same on every node.
func (d *DatabaseConfig) DSN() string {
	return d.dsn(d.Password)
}

// Redacted is DSN with the password masked, for logs.
func (d *DatabaseConfig) Redacted() string {
	return d.dsn("****")
}

func (d *DatabaseConfig) dsn(password string) string {
	pairs := []struct{ key, value string }{
		{"host", d.Host},
		{"port", d.Port},
		{"user", d.User},
		{"password", password},
		{"dbname", d.Database},
		{"sslmode", d.SSLMode},
		{"TimeZone", "UTC"},
		{"application_name", applicationName},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", p.key, quoteDSNValue(p.value)))
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue quotes values with spaces or quotes as libpq expects.
func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
