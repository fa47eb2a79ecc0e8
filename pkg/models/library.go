package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/rgeo/pkg/palette"
)

// Library maps prop kinds to the meshes drawn for them.
type Library struct {
	meshes [NumKinds]*Mesh
}

// NewLibrary creates a library holding the built-in mesh of every kind.
func NewLibrary() *Library {
	lib := &Library{}
	for k := range NumKinds {
		lib.meshes[k] = Builtin(k)
	}
	return lib
}

// Mesh returns the mesh for k. It panics for an unknown kind.
func (l *Library) Mesh(k Kind) *Mesh {
	if k < 0 || k >= NumKinds {
		panic(fmt.Sprintf("models: no mesh for %v", k))
	}
	return l.meshes[k]
}

// Set replaces the mesh drawn for k.
func (l *Library) Set(k Kind, m *Mesh) error {
	if k < 0 || k >= NumKinds {
		return fmt.Errorf("models: cannot set mesh for %v", k)
	}
	if m == nil || len(m.Faces) == 0 {
		return fmt.Errorf("models: empty mesh for %v", k)
	}
	l.meshes[k] = m
	return nil
}

// LoadDir replaces built-in meshes with GLB files from dir named after a
// kind, such as "tree.glb". Files with other names are ignored. It returns
// the number of meshes replaced.
func (l *Library) LoadDir(dir string, pal *palette.Palette) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("models: read %s: %w", dir, err)
	}

	loader := NewGLTFLoader(pal)
	n := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".glb") {
			continue
		}
		k, err := ParseKind(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			continue
		}
		m, err := loader.Load(filepath.Join(dir, name))
		if err != nil {
			return n, fmt.Errorf("models: load %s: %w", name, err)
		}
		if err := l.Set(k, m); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
