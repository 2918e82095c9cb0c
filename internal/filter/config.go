package filter

import (
	"fmt"
	"strings"
)

// Default rules. PHOTO carries bulky base64 payloads, NOTE free text,
// ADR postal addresses, ORG organization names; TEL marks a record as
// worth keeping at all.
var defaultDropPrefixes = []string{"PHOTO", "NOTE", "ADR", "ORG"}

const defaultPhonePrefix = "TEL"

// Config holds the field-filtering rules
type Config struct {
	// DropPrefixes are the field name prefixes removed from every record.
	// Matching is case-insensitive, ignores parameters ("PHOTO" also
	// removes "photo;ENCODING=b:..." lines), and is prefix-based ("ORG"
	// also removes "ORGANIZATION" lines). Tokens containing a dot match
	// group-qualified names ("item1.URL").
	// Default: PHOTO, NOTE, ADR, ORG
	DropPrefixes []string

	// PhonePrefix marks phone fields. A record with no field matching
	// this prefix is rejected entirely; fields matching it are never
	// removed. Validate rejects drop prefixes that overlap it.
	// Default: TEL
	PhonePrefix string
}

// DefaultConfig returns the default filtering rules
func DefaultConfig() Config {
	return Config{
		DropPrefixes: append([]string(nil), defaultDropPrefixes...),
		PhonePrefix:  defaultPhonePrefix,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if strings.TrimSpace(c.PhonePrefix) == "" {
		return fmt.Errorf("phone_prefix must not be empty")
	}
	if strings.ContainsRune(c.PhonePrefix, ':') {
		return fmt.Errorf("phone_prefix must not contain ':' (got %q)", c.PhonePrefix)
	}
	for _, token := range c.DropPrefixes {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("drop_prefixes must not contain blank entries")
		}
		if strings.ContainsRune(token, ':') {
			return fmt.Errorf("drop prefix must not contain ':' (got %q)", token)
		}
		if prefixesOverlap(token, c.PhonePrefix) {
			return fmt.Errorf("drop prefix %q overlaps phone_prefix %q: phone fields must never be removed",
				token, c.PhonePrefix)
		}
	}
	return nil
}

// prefixesOverlap reports whether one prefix would match everything the
// other matches, in either direction, case-insensitively.
func prefixesOverlap(a, b string) bool {
	n := min(len(a), len(b))
	return strings.EqualFold(a[:n], b[:n])
}

// String returns a human-readable representation of the rules
func (c Config) String() string {
	return fmt.Sprintf("Config{Drop: [%s], Phone: %s}",
		strings.Join(c.DropPrefixes, " "), c.PhonePrefix)
}
