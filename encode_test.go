package obj_test

import (
	"testing"

	"github.com/kvark/obj"
	"github.com/stretchr/testify/require"
)

// reparse asserts the round-trip property: serializing data and parsing
// the result yields a structurally equal model.
func reparse(t *testing.T, data *obj.ObjData) {
	t.Helper()
	out, err := obj.Marshal(data)
	require.NoError(t, err)
	again, err := obj.Parse(out)
	require.NoError(t, err, "marshaled output: %q", out)
	require.Equal(t, data, again, "marshaled output: %q", out)
}

func TestMarshalSimple(t *testing.T) {
	const src = "v 0 1 0\nv 0 0 0\nv 1 0 0\nf 1 2 3\nmtllib a.mtl\n"
	data, err := obj.Parse([]byte(src))
	require.NoError(t, err)

	out, err := obj.Marshal(data)
	require.NoError(t, err)
	require.Equal(t,
		"v 0 1 0\nv 0 0 0\nv 1 0 0\ng default\nf 1 2 3\nmtllib a.mtl\n",
		string(out))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"attributes only", "v 1 2 3\nvt 0 1\nvn 0 0 1\n"},
		{"plain square", "v 0 1 0\nv 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 3 4\n"},
		{"all index forms", `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vn 0 0 1
f 1 2 3
f 1/1 2/2 3/1
f 1//1 2//1 3//1
f 1/1/1 2/2/1 3/1/1
`},
		{"negative indices", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"},
		{"objects and groups", `
v 0 0 0
v 1 0 0
v 0 1 0
o left
g top
f 1 2 3
g bottom
f 3 2 1
o right part
f 1 3 2
`},
		{"material split", `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
mtllib shared.mtl
g body
usemtl red
f 1 2 3
usemtl blue
f 2 3 4
`},
		{"material persistence", `
v 0 0 0
v 1 0 0
v 0 1 0
usemtl glow
g a
f 1 2 3
g b
f 3 2 1
`},
		{"material cleared", `
v 0 0 0
v 1 0 0
v 0 1 0
usemtl red
g lit
f 1 2 3
g unlit
usemtl
f 1 2 3
`},
		{"big polygon", "v 0 0 0\nv 1 0 0\nv 2 0 0\nv 2 1 0\nv 1 2 0\nv 0 1 0\nf 1 2 3 4 5 6\n"},
		{"exotic floats", "v 1e-07 -2.5e+18 0.33333334\nv -0 3.4028235e+38 1\nv 0 0 Inf\n"},
		{"fractional texcoords", "vt 0.25 0.75\nvt -1.5 2\n"},
		{"spaced names", "g left wing\nmtllib my lib.mtl\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := obj.Parse([]byte(tt.src))
			require.NoError(t, err)
			reparse(t, data)
		})
	}
}

func TestMarshalGroupSiblingInvariant(t *testing.T) {
	// A group with Index > 0 must directly follow its same-named sibling;
	// the writer refuses models that violate this.
	bad := &obj.ObjData{
		Position: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Objects: []obj.Object{{
			Name: "default",
			Groups: []obj.Group{{
				Name:     "body",
				Index:    1,
				Material: &obj.MaterialRef{Name: "red"},
				Polys:    []obj.SimplePolygon{{{Position: 0}, {Position: 1}, {Position: 2}}},
			}},
		}},
	}
	_, err := obj.Marshal(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sibling")

	bad.Objects[0].Groups = []obj.Group{
		{Name: "head", Index: 0},
		{Name: "body", Index: 1, Material: &obj.MaterialRef{Name: "red"}},
	}
	_, err = obj.Marshal(bad)
	require.Error(t, err)
}

func TestMarshalSecondDefaultObject(t *testing.T) {
	// An o command with no name opens an object with the default name; the
	// writer must still emit the boundary for every object after the first.
	const src = `
v 0 0 0
v 1 0 0
v 0 1 0
o named
f 1 2 3
o
f 3 2 1
`
	data, err := obj.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, data.Objects, 2)
	require.Equal(t, "default", data.Objects[1].Name)
	reparse(t, data)
}

func TestMtlRoundTrip(t *testing.T) {
	const src = `
newmtl shiny
Ka 1 1 1
Kd 0.8 0.2 0.2
Ks 0.5 0.5 0.5
Tf 0 1 0
Ns 250
Ni 1.45
Km 0.25
Tr 0.1
d 0.9
illum 7
map_Ka ambient.png
map_Kd diffuse with spaces.png
map_bump b.png
map_refl r.png
newmtl flat
Kd 0.1 0.9 0.1
`
	lib, err := obj.ParseMtl("round.mtl", []byte(src))
	require.NoError(t, err)

	out, err := obj.MarshalMtl(lib)
	require.NoError(t, err)
	again, err := obj.ParseMtl("round.mtl", out)
	require.NoError(t, err)
	require.Equal(t, lib, again)
}

func TestMtlMarshalCanonicalAliases(t *testing.T) {
	lib, err := obj.ParseMtl("alias.mtl", []byte("newmtl m\nbump b.png\nrefl r.png\n"))
	require.NoError(t, err)

	out, err := obj.MarshalMtl(lib)
	require.NoError(t, err)
	require.Equal(t, "newmtl m\nmap_bump b.png\nmap_refl r.png\n", string(out))
}
