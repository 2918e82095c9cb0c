package vcard

import "strings"

// Field is one logical content line of a vCard record.
type Field struct {
	// Group is the optional group qualifier ("item1" in "item1.TEL:..."),
	// without the trailing dot. Empty when the line has no group.
	Group string

	// Name is the property name exactly as written in the input ("TEL",
	// "photo"). Lines with no ':' separator parse as a name-only Field.
	Name string

	// Params is the raw parameter text between the first ';' and the ':'
	// ("TYPE=CELL;PREF=1"). Empty when the line has no parameters.
	Params string

	// Value is the text after the first ':'.
	Value string

	// lines holds the raw physical lines: the content line itself plus
	// any continuations, in input order.
	lines []string
}

// ParseField splits a raw content line into its parts. It never fails:
// lines without a ':' separator yield a name-only Field so that callers
// can still classify them.
func ParseField(line string) Field {
	f := Field{lines: []string{line}}
	head := line
	if i := strings.IndexByte(line, ':'); i >= 0 {
		head = line[:i]
		f.Value = line[i+1:]
	}
	if i := strings.IndexByte(head, ';'); i >= 0 {
		f.Params = head[i+1:]
		head = head[:i]
	}
	if i := strings.IndexByte(head, '.'); i >= 0 {
		f.Group = head[:i]
		head = head[i+1:]
	}
	f.Name = head
	return f
}

// QualifiedName returns the name with its group qualifier, if any.
func (f Field) QualifiedName() string {
	if f.Group == "" {
		return f.Name
	}
	return f.Group + "." + f.Name
}

// HasPrefix reports whether token matches this field's name as a
// case-insensitive prefix. Plain tokens match the group-stripped name,
// so "TEL" matches both "TEL;TYPE=CELL:..." and "item1.TEL:...".
// Tokens containing a dot match the group-qualified name instead,
// so "item1.URL" matches only URL lines in group item1.
func (f Field) HasPrefix(token string) bool {
	name := f.Name
	if strings.ContainsRune(token, '.') {
		name = f.QualifiedName()
	}
	return len(name) >= len(token) && strings.EqualFold(name[:len(token)], token)
}

// NameIs reports whether this field's group-stripped name equals name,
// case-insensitively. Unlike HasPrefix, "N" does not match "NOTE".
func (f Field) NameIs(name string) bool {
	return strings.EqualFold(f.Name, name)
}

// AddContinuation appends a raw continuation line to this field.
// Continuations travel with the field: removing the field removes them.
func (f *Field) AddContinuation(line string) {
	f.lines = append(f.lines, line)
}

// Lines returns the raw physical lines of this field, in input order.
func (f Field) Lines() []string {
	return f.lines
}

// IsContinuation reports whether line continues a preceding content line:
// either an RFC 6350 folded line (leading space or tab) or a bare payload
// line with no ':' separator, as produced by some exporters for
// multi-line base64 photo data.
func IsContinuation(line string) bool {
	if line == "" {
		return false
	}
	if line[0] == ' ' || line[0] == '\t' {
		return true
	}
	return !strings.ContainsRune(line, ':')
}
