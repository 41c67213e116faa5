package obj

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kvark/obj/internal/scan"
)

// Material holds the illumination coefficients and texture map paths of
// one newmtl block. Scalar and vector fields are nil when the source never
// set them; map paths are empty strings when unset.
type Material struct {
	Name string

	Ka *[3]float32
	Kd *[3]float32
	Ks *[3]float32
	Ke *[3]float32
	Tf *[3]float32

	Ns    *float32
	Ni    *float32
	Km    *float32
	Tr    *float32
	D     *float32
	Illum *int

	MapKa   string
	MapKd   string
	MapKs   string
	MapKe   string
	MapNs   string
	MapD    string
	MapBump string
	MapRefl string
}

// Mtl is one material library: the filename it was referenced by and the
// materials it defines, in declaration order. Right after an OBJ parse
// only Filename is set; LoadMtls fills Materials.
type Mtl struct {
	Filename  string
	Materials []*Material
}

// ParseMtl parses one in-memory MTL buffer. filename becomes the Filename
// of the returned library. Any syntax error is fatal to the whole buffer.
func ParseMtl(filename string, data []byte) (*Mtl, error) {
	p := &mtlParser{lib: &Mtl{Filename: filename}}
	if err := p.run(data); err != nil {
		return nil, err
	}
	return p.lib, nil
}

// mtlParser carries the single piece of MTL parser state: the material
// under construction, if any.
type mtlParser struct {
	lib      *Mtl
	material *Material
	line     int
}

func (p *mtlParser) errorf(kind error, format string, args ...any) error {
	return &ParseError{Line: p.line, Message: fmt.Sprintf(format, args...), Err: kind}
}

func (p *mtlParser) run(data []byte) error {
	for line := range strings.Lines(string(data)) {
		p.line++
		words := scan.Fields(line)
		cmd, ok := words.Next()
		if !ok {
			continue
		}
		if err := p.instruction(cmd, words); err != nil {
			return err
		}
	}
	p.flush()
	return nil
}

func (p *mtlParser) flush() {
	if p.material != nil {
		p.lib.Materials = append(p.lib.Materials, p.material)
		p.material = nil
	}
}

func (p *mtlParser) instruction(cmd string, words *scan.Words) error {
	switch cmd {
	case "newmtl":
		name, ok := words.Next()
		if !ok {
			return p.errorf(ErrMissingMaterialName, "newmtl without a name")
		}
		p.flush()
		p.material = &Material{Name: name}
	case "Ka":
		return p.setColor(words, func(m *Material, v *[3]float32) { m.Ka = v })
	case "Kd":
		return p.setColor(words, func(m *Material, v *[3]float32) { m.Kd = v })
	case "Ks":
		return p.setColor(words, func(m *Material, v *[3]float32) { m.Ks = v })
	case "Ke":
		return p.setColor(words, func(m *Material, v *[3]float32) { m.Ke = v })
	case "Tf":
		return p.setColor(words, func(m *Material, v *[3]float32) { m.Tf = v })
	case "Ns":
		return p.setScalar(words, func(m *Material, v *float32) { m.Ns = v })
	case "Ni":
		return p.setScalar(words, func(m *Material, v *float32) { m.Ni = v })
	case "Km":
		return p.setScalar(words, func(m *Material, v *float32) { m.Km = v })
	case "Tr":
		return p.setScalar(words, func(m *Material, v *float32) { m.Tr = v })
	case "d":
		return p.setScalar(words, func(m *Material, v *float32) { m.D = v })
	case "illum":
		field, ok := words.Next()
		if !ok {
			return p.errorf(ErrMissingValue, "illum")
		}
		i, err := strconv.Atoi(field)
		if err != nil {
			return p.errorf(ErrInvalidValue, "illum %q", field)
		}
		if p.material != nil {
			p.material.Illum = &i
		}
	case "map_Ka":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapKa = path })
	case "map_Kd":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapKd = path })
	case "map_Ks":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapKs = path })
	case "map_Ke":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapKe = path })
	case "map_Ns":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapNs = path })
	case "map_d":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapD = path })
	case "map_bump", "map_Bump", "bump":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapBump = path })
	case "map_refl", "refl":
		return p.setMap(cmd, words, func(m *Material, path string) { m.MapRefl = path })
	default:
		if strings.HasPrefix(cmd, "#") {
			return nil
		}
		return p.errorf(ErrInvalidInstruction, "%q", cmd)
	}
	return nil
}

// setColor parses three floats and assigns them through set. The value is
// parsed strictly even without a material under construction, then
// discarded.
func (p *mtlParser) setColor(words *scan.Words, set func(*Material, *[3]float32)) error {
	var v [3]float32
	for i := range v {
		field, ok := words.Next()
		if !ok {
			return p.errorf(ErrMissingValue, "expected 3 components, got %d", i)
		}
		f, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return p.errorf(ErrInvalidValue, "%q", field)
		}
		v[i] = float32(f)
	}
	if p.material != nil {
		set(p.material, &v)
	}
	return nil
}

func (p *mtlParser) setScalar(words *scan.Words, set func(*Material, *float32)) error {
	field, ok := words.Next()
	if !ok {
		return p.errorf(ErrMissingValue, "expected a value")
	}
	f, err := strconv.ParseFloat(field, 32)
	if err != nil {
		return p.errorf(ErrInvalidValue, "%q", field)
	}
	v := float32(f)
	if p.material != nil {
		set(p.material, &v)
	}
	return nil
}

// setMap joins every remaining field into one path, tolerating unescaped
// spaces in filenames.
func (p *mtlParser) setMap(cmd string, words *scan.Words, set func(*Material, string)) error {
	path := words.Rest()
	if path == "" {
		return p.errorf(ErrMissingValue, "%s without a path", cmd)
	}
	if p.material != nil {
		set(p.material, path)
	}
	return nil
}
