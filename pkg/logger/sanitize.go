package logger

import "strings"

// TruncatedToken returns a loggable prefix of a bearer token. Full tokens
// never reach the logs.
func TruncatedToken(token string) string {
	const keep = 8
	if len(token) <= keep {
		return "[short-token]"
	}
	return token[:keep] + "..."
}

// SanitizeQueryString reports whether a raw query string carries sensitive
// parameters and should be redacted wholesale.
func SanitizeQueryString(rawQuery string) bool {
	sensitiveParams := []string{
		"password",
		"token",
		"secret",
		"auth",
	}

	query := strings.ToLower(rawQuery)
	for _, param := range sensitiveParams {
		if strings.Contains(query, param+"=") {
			return true
		}
	}

	return false
}
