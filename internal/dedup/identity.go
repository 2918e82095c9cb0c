package dedup

import (
	"fmt"
	"strings"
	"unicode"
)

// keySeparator joins the name and phone parts of an identity key. The
// unit separator cannot survive case folding of any real name, so the
// two parts can never bleed into each other.
const keySeparator = "\x1f"

// Options controls how identity keys are derived
type Options struct {
	// PhonePrefix is the field prefix whose first match supplies the
	// phone part of the key. Prefix matching, like the filter rules.
	// Default: TEL
	PhonePrefix string

	// NameFields are the field names tried in order for the name part.
	// Exact names, not prefixes: "N" must not match NOTE or NICKNAME.
	// Default: FN, N
	NameFields []string
}

// DefaultOptions returns the default identity derivation options
func DefaultOptions() Options {
	return Options{
		PhonePrefix: "TEL",
		NameFields:  []string{"FN", "N"},
	}
}

// Validate checks if the options have valid values
func (o Options) Validate() error {
	if strings.TrimSpace(o.PhonePrefix) == "" {
		return fmt.Errorf("phone_prefix must not be empty")
	}
	for _, name := range o.NameFields {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("name_fields must not contain blank entries")
		}
	}
	return nil
}

// String returns a human-readable representation of the options
func (o Options) String() string {
	return fmt.Sprintf("Options{Phone: %s, Names: [%s]}",
		o.PhonePrefix, strings.Join(o.NameFields, " "))
}

// stripSpace removes every whitespace rune, so "Jean  Dupont" and
// "JeanDupont " normalize identically.
func stripSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitsOnly strips every non-digit rune, so "+1 (555) 010-0100" and
// "1-555-010-0100" normalize identically. A value with no digits at all
// normalizes to the empty string.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
