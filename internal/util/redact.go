package util

import "regexp"

var (
	reEmail   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reToken   = regexp.MustCompile(`(?i)\b(api[_-]?key|secret|token|key)([=:]\s*)[A-Za-z0-9_-]{8,}`)
	reURLUser = regexp.MustCompile(`(?i)(https?://)[^/\s:@]+(:[^/\s@]*)?@`)
)

// RedactPII masks e-mail addresses and key=value style secrets.
func RedactPII(s string) string {
	s = reEmail.ReplaceAllString(s, "[redacted-email]")
	s = reToken.ReplaceAllString(s, "${1}${2}[redacted]")
	return s
}

// RedactURL drops user info from http(s) URLs so source locations can be
// logged.
func RedactURL(s string) string {
	return reURLUser.ReplaceAllString(s, "${1}[redacted]@")
}
