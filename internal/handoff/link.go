// Package handoff passes a finished invoice to the outside world: a
// messaging deep link opened in the browser, or the system clipboard.
package handoff

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the WhatsApp click-to-chat endpoint
const DefaultBaseURL = "https://wa.me"

var ErrMissingPhone = errors.New("customer phone number is missing")

// DigitsOnly strips everything but ASCII digits, so "+91 98765-43210"
// becomes "919876543210".
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MessagingLink builds <baseURL>/<digits>?text=<message>. Spaces are encoded
// as %20 and newlines as %0A.
func MessagingLink(baseURL, phone, message string) (string, error) {
	digits := DigitsOnly(phone)
	if digits == "" {
		return "", ErrMissingPhone
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid messaging base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid messaging base url %q", baseURL)
	}

	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("%s/%s?text=%s", base.String(), digits, text), nil
}
