package obj

import "fmt"

// Triangulate fans a polygon into triangles: an n-gon yields n-2 triangles
// sharing the first vertex, so a quad becomes the usual two-triangle
// split. Polygons with fewer than three vertices are rejected.
//
// The core parser keeps polygons at their source arity; this adapter is
// for consumers that want a fixed arity.
func Triangulate(poly SimplePolygon) ([]SimplePolygon, error) {
	if len(poly) < 3 {
		return nil, fmt.Errorf("obj: cannot triangulate a polygon with %d vertices", len(poly))
	}
	tris := make([]SimplePolygon, 0, len(poly)-2)
	for i := 1; i < len(poly)-1; i++ {
		tris = append(tris, SimplePolygon{poly[0], poly[i], poly[i+1]})
	}
	return tris, nil
}

// CompactMesh re-expresses the polygons of an ObjData over a deduplicated
// vertex list. Vertices holds each distinct (position, texture, normal)
// signature once, in first-use order; Faces holds every polygon of the
// model in traversal order as indices into Vertices.
type CompactMesh struct {
	Vertices []IndexTuple
	Faces    [][]int
}

// Compact interns the index tuples of every polygon in d into a shared
// vertex list, the way GPU index buffers want them. The core parser leaves
// raw per-face tuples untouched; this is an optional post-pass.
func (d *ObjData) Compact() *CompactMesh {
	type signature struct {
		p, t, n int
	}
	seen := make(map[signature]int)
	mesh := &CompactMesh{}

	key := func(t IndexTuple) signature {
		s := signature{p: t.Position, t: -1, n: -1}
		if t.Texture != nil {
			s.t = *t.Texture
		}
		if t.Normal != nil {
			s.n = *t.Normal
		}
		return s
	}

	for oi := range d.Objects {
		for gi := range d.Objects[oi].Groups {
			for _, poly := range d.Objects[oi].Groups[gi].Polys {
				face := make([]int, len(poly))
				for vi, tuple := range poly {
					k := key(tuple)
					idx, ok := seen[k]
					if !ok {
						idx = len(mesh.Vertices)
						seen[k] = idx
						mesh.Vertices = append(mesh.Vertices, tuple)
					}
					face[vi] = idx
				}
				mesh.Faces = append(mesh.Faces, face)
			}
		}
	}
	return mesh
}
