package obj

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Encoder writes OBJ and MTL text to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Marshal returns the OBJ encoding of d. Parsing the result yields a model
// structurally equal to d.
func Marshal(d *ObjData) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalMtl returns the MTL encoding of m.
func MarshalMtl(m *Mtl) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).EncodeMtl(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the OBJ encoding of d to the stream: attribute arrays in
// original order, then each object with its groups, materials and faces,
// then the referenced material libraries.
func (e *Encoder) Encode(d *ObjData) error {
	w := &lineWriter{w: bufio.NewWriter(e.w)}

	for _, v := range d.Position {
		w.line("v", formatFloats(v[:]...))
	}
	for _, t := range d.Texture {
		w.line("vt", formatFloats(t[:]...))
	}
	for _, n := range d.Normal {
		w.line("vn", formatFloats(n[:]...))
	}

	// The active material carries across group and object boundaries the
	// same way the parser's does, so a group with no material needs an
	// explicit reset once one has been selected.
	active := ""
	for oi := range d.Objects {
		o := &d.Objects[oi]
		if oi > 0 || o.Name != DefaultName {
			w.line("o", o.Name)
		}
		for gi := range o.Groups {
			g := &o.Groups[gi]
			if g.Index == 0 {
				w.line("g", g.Name)
			} else if gi == 0 || o.Groups[gi-1].Name != g.Name || o.Groups[gi-1].Index != g.Index-1 {
				return fmt.Errorf("obj: group %q index %d is not preceded by its same-named sibling", g.Name, g.Index)
			}
			switch {
			case g.Material != nil:
				w.line("usemtl", g.Material.Name)
				active = g.Material.Name
			case active != "":
				w.line("usemtl")
				active = ""
			}
			for _, poly := range g.Polys {
				w.face(poly)
			}
		}
	}

	for i := range d.MaterialLibs {
		w.line("mtllib", d.MaterialLibs[i].Filename)
	}
	return w.flush()
}

// EncodeMtl writes the MTL encoding of m to the stream, one newmtl block
// per material. Aliased instructions are written in their canonical form.
func (e *Encoder) EncodeMtl(m *Mtl) error {
	w := &lineWriter{w: bufio.NewWriter(e.w)}

	for _, mat := range m.Materials {
		w.line("newmtl", mat.Name)

		colors := []struct {
			cmd string
			v   *[3]float32
		}{
			{"Ka", mat.Ka}, {"Kd", mat.Kd}, {"Ks", mat.Ks}, {"Ke", mat.Ke}, {"Tf", mat.Tf},
		}
		for _, c := range colors {
			if c.v != nil {
				w.line(c.cmd, formatFloats(c.v[:]...))
			}
		}

		scalars := []struct {
			cmd string
			v   *float32
		}{
			{"Ns", mat.Ns}, {"Ni", mat.Ni}, {"Km", mat.Km}, {"Tr", mat.Tr}, {"d", mat.D},
		}
		for _, s := range scalars {
			if s.v != nil {
				w.line(s.cmd, formatFloats(*s.v))
			}
		}
		if mat.Illum != nil {
			w.line("illum", strconv.Itoa(*mat.Illum))
		}

		maps := []struct {
			cmd  string
			path string
		}{
			{"map_Ka", mat.MapKa}, {"map_Kd", mat.MapKd}, {"map_Ks", mat.MapKs},
			{"map_Ke", mat.MapKe}, {"map_Ns", mat.MapNs}, {"map_d", mat.MapD},
			{"map_bump", mat.MapBump}, {"map_refl", mat.MapRefl},
		}
		for _, mp := range maps {
			if mp.path != "" {
				w.line(mp.cmd, mp.path)
			}
		}
	}
	return w.flush()
}

// lineWriter emits space-joined command lines, holding on to the first
// write error.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (w *lineWriter) line(fields ...string) {
	if w.err != nil {
		return
	}
	for i, f := range fields {
		if i > 0 {
			if w.err = w.w.WriteByte(' '); w.err != nil {
				return
			}
		}
		if _, w.err = w.w.WriteString(f); w.err != nil {
			return
		}
	}
	w.err = w.w.WriteByte('\n')
}

func (w *lineWriter) face(poly SimplePolygon) {
	if w.err != nil {
		return
	}
	if _, w.err = w.w.WriteString("f"); w.err != nil {
		return
	}
	for _, t := range poly {
		s := " " + strconv.Itoa(t.Position+1)
		switch {
		case t.Texture != nil && t.Normal != nil:
			s += "/" + strconv.Itoa(*t.Texture+1) + "/" + strconv.Itoa(*t.Normal+1)
		case t.Texture != nil:
			s += "/" + strconv.Itoa(*t.Texture+1)
		case t.Normal != nil:
			s += "//" + strconv.Itoa(*t.Normal+1)
		}
		if _, w.err = w.w.WriteString(s); w.err != nil {
			return
		}
	}
	w.err = w.w.WriteByte('\n')
}

func (w *lineWriter) flush() error {
	if w.err != nil {
		return fmt.Errorf("obj: %w", w.err)
	}
	return w.w.Flush()
}

func formatFloats(vals ...float32) string {
	var b []byte
	for i, v := range vals {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendFloat(b, float64(v), 'g', -1, 32)
	}
	return string(b)
}
