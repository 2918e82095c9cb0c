package vcard

// Record holds one contact's fields in input order. The begin/end
// delimiters are not stored; writers re-emit the canonical markers.
type Record struct {
	Fields []Field
}

// Append adds a field to the end of the record.
func (r *Record) Append(f Field) {
	r.Fields = append(r.Fields, f)
}

// FirstValue returns the value of the first field matching token as a
// prefix (see Field.HasPrefix), and whether any field matched.
func (r *Record) FirstValue(token string) (string, bool) {
	for _, f := range r.Fields {
		if f.HasPrefix(token) {
			return f.Value, true
		}
	}
	return "", false
}

// ValueOf returns the value of the first field whose name equals name
// exactly (case-insensitive, group qualifier ignored), and whether any
// field matched. Exact matching matters for short names: a prefix match
// for "N" would also hit NOTE and NICKNAME lines.
func (r *Record) ValueOf(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.NameIs(name) {
			return f.Value, true
		}
	}
	return "", false
}

// HasField reports whether any field matches token as a prefix.
func (r *Record) HasField(token string) bool {
	_, ok := r.FirstValue(token)
	return ok
}

// Lines returns the raw content lines of every field, in input order,
// including continuation lines.
func (r *Record) Lines() []string {
	lines := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		lines = append(lines, f.lines...)
	}
	return lines
}
