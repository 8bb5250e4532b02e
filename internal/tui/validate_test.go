package tui

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"ana@example.com", true},
		{"ana+tag@sub.example.com", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain@twice", false},
	}
	for _, test := range tests {
		got := validateEmail(test.in)
		if (got == "") != test.ok {
			t.Errorf("validateEmail(%q) = %q, expected ok=%v", test.in, got, test.ok)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"Password1", true},
		{"ABCDEFGH", true},
		{"Abcdefgh", true},
		{"short", false},
		{"Short1", false},       // too short even with uppercase
		{"alllowercase", false}, // no uppercase
		{"1234567!", false},
		{"", false},
	}
	for _, test := range tests {
		got := validatePassword(test.in)
		if (got == "") != test.ok {
			t.Errorf("validatePassword(%q) = %q, expected ok=%v", test.in, got, test.ok)
		}
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"Ana", true},
		{"  Ana  ", true}, // trimmed before counting
		{strings.Repeat("a", 30), true},
		{"ab", false},
		{"  a  ", false},
		{strings.Repeat("a", 31), false},
		{"", false},
	}
	for _, test := range tests {
		got := validateName(test.in)
		if (got == "") != test.ok {
			t.Errorf("validateName(%q) = %q, expected ok=%v", test.in, got, test.ok)
		}
	}
}

func TestValidateDocument(t *testing.T) {
	if validateDocument("123.456.789-00") != "" {
		t.Error("filled document should pass")
	}
	if validateDocument("   ") == "" {
		t.Error("blank document should fail")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?x=1", true},
		{"example.com", false}, // no scheme
		{"https://", false},    // no host
		{"", false},
	}
	for _, test := range tests {
		got := validateURL(test.in)
		if (got == "") != test.ok {
			t.Errorf("validateURL(%q) = %q, expected ok=%v", test.in, got, test.ok)
		}
	}
}

func TestValidateMethod(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"GET", true},
		{"get", true},
		{" post ", true},
		{"DELETE", true},
		{"PATCH", false},
		{"", false},
	}
	for _, test := range tests {
		got := validateMethod(test.in)
		if (got == "") != test.ok {
			t.Errorf("validateMethod(%q) = %q, expected ok=%v", test.in, got, test.ok)
		}
	}
}
