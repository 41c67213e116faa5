package obj

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kvark/obj/internal/scan"
)

// Decoder reads OBJ data from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode parses the stream and returns the populated model. Any syntax
// error is fatal: no partial ObjData is returned.
func (d *Decoder) Decode() (*ObjData, error) {
	if d.r == nil {
		return nil, fmt.Errorf("obj: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return Parse(data, d.opts...)
}

// Parse parses one in-memory OBJ buffer. It performs no filesystem access;
// material libraries named by mtllib commands are recorded by filename
// only, to be resolved later by LoadMtls.
func Parse(data []byte, opts ...Option) (*ObjData, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	p := &parser{cfg: cfg, data: &ObjData{}}
	if err := p.run(data); err != nil {
		return nil, err
	}
	return p.data, nil
}

// parser holds the state threaded through one parse call: the object and
// group currently under construction and the active material name. The
// active material outlives g and o commands; each newly opened group
// inherits it.
type parser struct {
	cfg  config
	data *ObjData

	object   Object
	group    *Group
	material string
	line     int
}

func (p *parser) errorf(kind error, format string, args ...any) error {
	return &ParseError{Line: p.line, Message: fmt.Sprintf(format, args...), Err: kind}
}

func (p *parser) run(data []byte) error {
	p.object = Object{Name: DefaultName}

	for line := range strings.Lines(string(data)) {
		p.line++
		words := scan.Fields(line)
		cmd, ok := words.Next()
		if !ok {
			continue
		}
		if err := p.command(cmd, words); err != nil {
			return err
		}
	}

	p.closeGroup()
	p.data.Objects = append(p.data.Objects, p.object)
	return nil
}

func (p *parser) command(cmd string, words *scan.Words) error {
	switch cmd {
	case "v":
		v, err := p.parseFloat3(words)
		if err != nil {
			return err
		}
		p.data.Position = append(p.data.Position, v)
	case "vt":
		t, err := p.parseFloat2(words)
		if err != nil {
			return err
		}
		p.data.Texture = append(p.data.Texture, t)
	case "vn":
		n, err := p.parseFloat3(words)
		if err != nil {
			return err
		}
		p.data.Normal = append(p.data.Normal, n)
	case "f":
		poly, err := p.parsePolygon(words)
		if err != nil {
			return err
		}
		g := p.currentGroup()
		g.Polys = append(g.Polys, poly)
	case "g":
		p.closeGroup()
		p.openGroup(nameOrDefault(words.Rest()), 0)
	case "o":
		p.closeGroup()
		// The implicit starting object stays out of the model unless
		// something was actually put into it.
		if len(p.object.Groups) > 0 {
			p.data.Objects = append(p.data.Objects, p.object)
		}
		p.object = Object{Name: nameOrDefault(words.Rest())}
	case "mtllib":
		name := words.Rest()
		if name == "" {
			return p.errorf(ErrMissingMTLName, "mtllib without a filename")
		}
		p.data.MaterialLibs = append(p.data.MaterialLibs, Mtl{Filename: name})
	case "usemtl":
		name, _ := words.Next()
		p.useMaterial(name)
	case "s", "l":
		// Smoothing groups and line elements are recognized but carry
		// no meaning in this model.
	default:
		if strings.HasPrefix(cmd, "#") {
			return nil
		}
		if p.cfg.strict {
			return p.errorf(ErrUnexpectedCommand, "%q", cmd)
		}
	}
	return nil
}

// currentGroup returns the group under construction, opening a default one
// if no g command has run since the last boundary.
func (p *parser) currentGroup() *Group {
	if p.group == nil {
		p.openGroup(DefaultName, 0)
	}
	return p.group
}

func (p *parser) openGroup(name string, index int) {
	g := Group{Name: name, Index: index}
	if p.material != "" {
		g.Material = &MaterialRef{Name: p.material}
	}
	p.group = &g
}

func (p *parser) closeGroup() {
	if p.group != nil {
		p.object.Groups = append(p.object.Groups, *p.group)
		p.group = nil
	}
}

// useMaterial applies a usemtl command. If the current group already holds
// polygons under a different material it is closed and a sibling with the
// same name and the next index is opened, so that one named group can
// batch polygons by material without explicit g commands in between. A
// group that has not collected polygons yet simply takes the new material.
// A usemtl with no name clears the active material.
func (p *parser) useMaterial(name string) {
	p.material = name
	if p.group == nil {
		return
	}
	if name == "" {
		p.group.Material = nil
		return
	}
	if p.group.Material != nil && p.group.Material.Name != name && len(p.group.Polys) > 0 {
		gname, index := p.group.Name, p.group.Index
		p.closeGroup()
		p.openGroup(gname, index+1)
	}
	p.group.Material = &MaterialRef{Name: name}
}

func nameOrDefault(name string) string {
	if name == "" {
		return DefaultName
	}
	return name
}

func (p *parser) parseFloat3(words *scan.Words) ([3]float32, error) {
	var out [3]float32
	for i := range out {
		f, err := p.nextFloat(words)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

func (p *parser) parseFloat2(words *scan.Words) ([2]float32, error) {
	var out [2]float32
	for i := range out {
		f, err := p.nextFloat(words)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

func (p *parser) nextFloat(words *scan.Words) (float32, error) {
	field, ok := words.Next()
	if !ok {
		return 0, p.errorf(ErrArgumentListFailure, "missing component")
	}
	f, err := strconv.ParseFloat(field, 32)
	if err != nil {
		return 0, p.errorf(ErrArgumentListFailure, "%q is not a number", field)
	}
	return float32(f), nil
}

func (p *parser) parsePolygon(words *scan.Words) (SimplePolygon, error) {
	var poly SimplePolygon
	for {
		field, ok := words.Next()
		if !ok {
			break
		}
		tuple, err := p.parseIndexTuple(field)
		if err != nil {
			return nil, err
		}
		poly = append(poly, tuple)
	}
	if len(poly) < 3 {
		return nil, p.errorf(ErrArgumentListFailure, "face with %d vertices", len(poly))
	}
	return poly, nil
}

// parseIndexTuple resolves one p[/t][/n] face field against the attribute
// counts accumulated so far. Positive components are 1-based; negative
// components count back from the most recently declared attribute.
func (p *parser) parseIndexTuple(field string) (IndexTuple, error) {
	var tuple IndexTuple
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return tuple, p.errorf(ErrMalformedFaceGroup, "%q", field)
	}

	pos, err := p.resolveIndex(parts[0], len(p.data.Position), field)
	if err != nil {
		return tuple, err
	}
	tuple.Position = pos

	// An empty texture component (the p//n form) means "absent", not an
	// error. All other components must parse.
	if len(parts) > 1 && parts[1] != "" {
		t, err := p.resolveIndex(parts[1], len(p.data.Texture), field)
		if err != nil {
			return tuple, err
		}
		tuple.Texture = &t
	}
	if len(parts) > 2 {
		n, err := p.resolveIndex(parts[2], len(p.data.Normal), field)
		if err != nil {
			return tuple, err
		}
		tuple.Normal = &n
	}
	return tuple, nil
}

// resolveIndex normalizes one signed 1-based index component to a
// zero-based index into an attribute array of the given current length.
func (p *parser) resolveIndex(component string, count int, field string) (int, error) {
	i, err := strconv.Atoi(component)
	if err != nil {
		return 0, p.errorf(ErrMalformedFaceGroup, "%q", field)
	}
	if i == 0 {
		return 0, p.errorf(ErrZeroVertexNumber, "%q", field)
	}
	if i > 0 {
		i--
	} else {
		i += count
	}
	if i < 0 || i >= count {
		return 0, p.errorf(ErrMalformedFaceGroup, "%q is out of range (%d declared)", field, count)
	}
	return i, nil
}
