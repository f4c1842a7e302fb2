// Package fixedwidth decodes column-oriented text records through named field descriptors.
// This is part of the Functional Core - no I/O, only pure functions.
package fixedwidth

// Field describes one fixed-width column: a name, a zero-based byte offset and a width.
type Field struct {
	Name   string
	Offset int
	Length int
}

// Slice returns the field's bytes from line.
// Out-of-range fields yield whatever part lies inside the line, possibly "".
func (f Field) Slice(line string) string {
	if f.Offset < 0 || f.Offset >= len(line) || f.Length <= 0 {
		return ""
	}
	end := f.Offset + f.Length
	if end > len(line) {
		end = len(line)
	}
	return line[f.Offset:end]
}

// Layout is an ordered set of fields describing one record format.
type Layout []Field

// Field returns the named field and whether it exists.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Get returns the named field's bytes from line, or "" when the field is unknown.
func (l Layout) Get(line, name string) string {
	f, ok := l.Field(name)
	if !ok {
		return ""
	}
	return f.Slice(line)
}

// Decode slices every field of the layout out of line.
func (l Layout) Decode(line string) map[string]string {
	out := make(map[string]string, len(l))
	for _, f := range l {
		out[f.Name] = f.Slice(line)
	}
	return out
}
