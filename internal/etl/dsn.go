package etl

import (
	"net/url"
	"regexp"
	"strings"
)

var storeNames = map[string]string{
	"sqlite":   "SQLite",
	"postgres": "PostgreSQL",
	"mssql":    "SQL Server",
	"mysql":    "MySQL",
	"duckdb":   "DuckDB",
}

// StoreName returns the display name of a storage kind.
func StoreName(kind string) string {
	if n, ok := storeNames[kind]; ok {
		return n
	}
	return kind
}

var (
	kvPassword   = regexp.MustCompile(`(?i)\b(password|pwd)\s*=\s*('[^']*'|[^;\s]*)`)
	userPassword = regexp.MustCompile(`^([^:@/]+):([^@]*)@`)
)

const redacted = "xxxxx"

// RedactDSN masks the password in a connection string for display. URL
// DSNs, key=value DSNs and the MySQL "user:pass@tcp(host)/db" form are
// recognized; anything else (such as a file path) is returned unchanged.
func RedactDSN(dsn string) string {
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil && u.User != nil {
			return u.Redacted()
		}
	}
	if kvPassword.MatchString(dsn) {
		return kvPassword.ReplaceAllString(dsn, "${1}="+redacted)
	}
	return userPassword.ReplaceAllString(dsn, "${1}:"+redacted+"@")
}
