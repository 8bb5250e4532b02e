package tui

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Client-side form checks. Anything caught here never reaches the network;
// the messages render inline under the field, toast-style.

func validateEmail(s string) string {
	if _, err := mail.ParseAddress(s); err != nil {
		return "invalid e-mail address"
	}
	return ""
}

func validatePassword(s string) string {
	if utf8.RuneCountInString(s) < 8 {
		return "password must be at least 8 characters"
	}
	for _, r := range s {
		if unicode.IsUpper(r) {
			return ""
		}
	}
	return "password must contain an uppercase letter"
}

func validateName(s string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n < 3 {
		return "name must be at least 3 characters"
	}
	if n > 30 {
		return "name must be at most 30 characters"
	}
	return ""
}

func validateDocument(s string) string {
	if strings.TrimSpace(s) == "" {
		return "document is required"
	}
	return ""
}

func validateURL(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "URL must be absolute (http:// or https://)"
	}
	return ""
}

func validateMethod(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GET", "POST", "PUT", "DELETE":
		return ""
	}
	return "method must be GET, POST, PUT or DELETE"
}
