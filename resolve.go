package obj

import (
	"io"
	"os"
	"path/filepath"
)

// LibraryLoader opens the content of one material library. dir is the
// search directory (for file-backed models, the directory of the OBJ
// file) and name the filename written after mtllib.
type LibraryLoader func(dir, name string) (io.ReadCloser, error)

func openLibrary(dir, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(dir, name))
}

// LoadMtls loads every referenced material library through load, in the
// order the mtllib commands listed them, and upgrades the material
// references of all groups to shared handles.
//
// When several libraries define a material with the same name, the
// first-listed library wins, matching the documented mtllib search order.
// A library that fails to load or parse does not abort the pass: its
// failure is collected and the remaining libraries are still applied. The
// returned error is nil on full success and an MtlLibErrors slice
// otherwise. References that match no loaded material are left unresolved.
func (d *ObjData) LoadMtls(dir string, load LibraryLoader) error {
	materials := make(map[string]*Material)
	var errs MtlLibErrors

	for i := range d.MaterialLibs {
		lib := &d.MaterialLibs[i]
		parsed, err := loadLibrary(dir, lib.Filename, load)
		if err != nil {
			errs = append(errs, MtlLibError{Filename: lib.Filename, Err: err})
			continue
		}
		lib.Materials = parsed.Materials
		for _, m := range lib.Materials {
			if _, taken := materials[m.Name]; !taken {
				materials[m.Name] = m
			}
		}
	}

	for oi := range d.Objects {
		for gi := range d.Objects[oi].Groups {
			ref := d.Objects[oi].Groups[gi].Material
			if ref == nil || ref.Material != nil {
				continue
			}
			if m, found := materials[ref.Name]; found {
				ref.Material = m
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func loadLibrary(dir, name string, load LibraryLoader) (*Mtl, error) {
	rc, err := load(dir, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return ParseMtl(name, data)
}
