package security

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

var allowedSchemes = []string{"http", "https"}

// NewSafeClient returns an HTTP client for fetching user-supplied URLs (cover
// images). safeurl validates resolved IPs at the dialer level, which blocks
// requests to private, loopback, link-local, and cloud-metadata addresses
// and covers DNS rebinding as well.
func NewSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	return safeurl.Client(config).Client
}

// ValidateURL performs the static checks that do not need DNS resolution:
// scheme and non-empty host. It is the cheap pre-check before a fetch; the
// dialer-level validation in NewSafeClient remains the real barrier.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	ok := false
	for _, s := range allowedSchemes {
		if scheme == s {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("disallowed scheme %q", scheme)
	}

	if parsed.Hostname() == "" {
		return fmt.Errorf("empty host in URL %q", rawURL)
	}
	return nil
}
