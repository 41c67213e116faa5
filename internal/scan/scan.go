// Package scan splits OBJ and MTL source lines into whitespace-delimited
// fields. Both languages are line oriented with no quoting or escaping, so
// a field is simply a maximal run of non-space characters.
package scan

import "strings"

// Words steps through the non-empty fields of a single line. It is a
// pull-style iterator: each call to Next consumes one field. A fresh Words
// over the same line restarts the sequence.
type Words struct {
	rest string
}

// Fields returns a Words iterator over the fields of line.
func Fields(line string) *Words {
	return &Words{rest: line}
}

// Next returns the next field and whether one was available.
func (w *Words) Next() (string, bool) {
	w.rest = strings.TrimLeft(w.rest, " \t\r\n")
	if w.rest == "" {
		return "", false
	}
	end := strings.IndexAny(w.rest, " \t\r\n")
	if end < 0 {
		field := w.rest
		w.rest = ""
		return field, true
	}
	field := w.rest[:end]
	w.rest = w.rest[end:]
	return field, true
}

// Rest consumes every remaining field and returns them joined by single
// spaces. Filenames in mtllib and map_* instructions may contain unescaped
// spaces; joining the tail of the line tolerates them.
func (w *Words) Rest() string {
	var fields []string
	for {
		field, ok := w.Next()
		if !ok {
			break
		}
		fields = append(fields, field)
	}
	return strings.Join(fields, " ")
}
