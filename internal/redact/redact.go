// Package redact removes database credentials from strings before they are
// logged. Connection URLs and libpq key/value strings can end up in driver
// errors, and a card store error is logged in full.
package redact

import (
	"net/url"
	"regexp"
)

// CredentialPlaceholder replaces a redacted credential.
const CredentialPlaceholder = "[REDACTED_CREDENTIAL]"

var (
	// userinfo of a connection URL: scheme://user:password@
	urlUserinfoRegex = regexp.MustCompile(`(?i)\b((?:postgres|postgresql|pgx|sqlite3?|file)://)[^/@\s]+@`)

	// password in a key/value connection string or query: password=secret
	passwordRegex = regexp.MustCompile(`(?i)\b(password|passwd|pwd)=('[^']*'|[^&\s]+)`)
)

// String returns input with connection credentials replaced by
// CredentialPlaceholder.
func String(input string) string {
	if input == "" {
		return input
	}

	result := urlUserinfoRegex.ReplaceAllString(input, "${1}"+CredentialPlaceholder+"@")
	return passwordRegex.ReplaceAllString(result, "${1}="+CredentialPlaceholder)
}

// Error is String applied to err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// DatabaseURL returns a loggable form of a database URL: the password is
// masked and a password query parameter is removed. Strings that do not
// parse as a URL fall back to String.
func DatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return String(raw)
	}

	q := u.Query()
	if q.Has("password") {
		q.Set("password", CredentialPlaceholder)
		u.RawQuery = q.Encode()
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), CredentialPlaceholder)
	}

	s, err := url.PathUnescape(u.String())
	if err != nil {
		return u.Redacted()
	}
	return s
}
