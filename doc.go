/*
Package obj parses and serializes the Wavefront OBJ geometry format and
its companion MTL material library format.

Parsing produces a canonical in-memory model: shared position, texture
coordinate and normal arrays, plus objects that hold groups of polygons
whose vertices index into those arrays. All OBJ index forms are normalized
to zero-based absolute indices, including negative (relative) references
and the omitted-texture p//n form.

Models can be loaded from a file or from an in-memory buffer:

	model, err := obj.Load("assets/scene.obj")
	if err != nil {
		// handle error
	}

	data, err := obj.Parse(buf) // no filesystem access
	if err != nil {
		// handle error
	}

Material libraries referenced by mtllib commands are recorded by filename
during the parse and resolved in a separate pass, so embedders can supply
their own resolution function:

	if err := model.LoadMtls(); err != nil {
		// err aggregates per-library failures; the libraries that
		// did load are applied regardless.
	}

	err = model.LoadMtlsFn(func(dir, name string) (io.ReadCloser, error) {
		return vfs.Open(name)
	})

After resolution each group's MaterialRef carries a shared *Material
handle next to the name it was written with; names that match no loaded
material simply stay unresolved.

The inverse direction is Marshal and MarshalMtl (or Encoder for streams).
Serialization round-trips: parsing the output of Marshal yields a model
structurally equal to the input.

Unrecognized OBJ commands are fatal by default; pass Strict(false) to skip
them instead, which helps with files carrying vendor extensions:

	data, err := obj.Parse(buf, obj.Strict(false))

Triangulate and Compact are optional post-passes for consumers that need
fixed-arity polygons or a deduplicated vertex list; the core model keeps
polygons exactly as declared.
*/
package obj
