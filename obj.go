package obj

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the name given to objects and groups that are created
// implicitly, before any o or g command names them.
const DefaultName = "default"

// IndexTuple identifies one polygon vertex by zero-based indices into the
// position, texture coordinate and normal arrays of an ObjData. Texture and
// Normal are nil when the corresponding component was omitted in the source.
type IndexTuple struct {
	Position int
	Texture  *int
	Normal   *int
}

// SimplePolygon is an ordered sequence of vertices, one IndexTuple each.
// Parsed polygons always have at least three vertices. Arity is otherwise
// unconstrained; see Triangulate for fixed-arity adaptation.
type SimplePolygon []IndexTuple

// MaterialRef is a group's reference to a material. Name is the name as
// written after usemtl and is always set. Material is nil until a
// resolution pass (LoadMtls or LoadMtlsFn) binds it to a shared handle
// inside one of the referenced libraries.
type MaterialRef struct {
	Name     string
	Material *Material
}

// Group is a named batch of polygons sharing one material. Index
// disambiguates several groups with the same name: a usemtl command that
// changes the material of a group without an intervening g command splits
// the group, producing a sibling with the same name and Index+1.
type Group struct {
	Name     string
	Index    int
	Material *MaterialRef
	Polys    []SimplePolygon
}

// Object is a named collection of groups, created by an o command or
// implicitly at the start of a parse.
type Object struct {
	Name   string
	Groups []Group
}

// ObjData is the parsed content of one OBJ buffer. The attribute arrays
// are shared by all objects; polygons index into them through IndexTuples.
// MaterialLibs lists the libraries referenced by mtllib commands. After
// parsing only the Filename of each library is set; LoadMtls fills in the
// materials.
type ObjData struct {
	Position     [][3]float32
	Texture      [][2]float32
	Normal       [][3]float32
	Objects      []Object
	MaterialLibs []Mtl
}

// Obj couples the parsed data of an OBJ file with the directory it was
// loaded from, which is the default search directory for its material
// libraries.
type Obj struct {
	Data *ObjData
	Dir  string
}

// Load reads and parses the OBJ file at path. Material libraries are not
// loaded; call LoadMtls or LoadMtlsFn on the result to resolve them.
func Load(path string, opts ...Option) (*Obj, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	defer f.Close()

	data, err := NewDecoder(f, opts...).Decode()
	if err != nil {
		return nil, err
	}
	return &Obj{Data: data, Dir: filepath.Dir(path)}, nil
}

// LoadMtls loads every material library referenced by the OBJ file from
// its directory and resolves the material references of all groups. See
// ObjData.LoadMtls for the error semantics.
func (o *Obj) LoadMtls() error {
	return o.Data.LoadMtls(o.Dir, openLibrary)
}

// LoadMtlsFn is like LoadMtls but reads library content through load,
// allowing virtual filesystems or alternate search paths.
func (o *Obj) LoadMtlsFn(load LibraryLoader) error {
	return o.Data.LoadMtls(o.Dir, load)
}
