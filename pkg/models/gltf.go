package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format. Every triangle
// primitive of every mesh in the document is merged into one Mesh.
type GLTFLoader struct {
	Logger *zap.Logger
}

// NewGLTFLoader creates a loader. A nil logger discards diagnostics.
func NewGLTFLoader(logger *zap.Logger) *GLTFLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GLTFLoader{Logger: logger}
}

// LoadGLB loads a binary or text GLTF file with a silent loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader(nil).Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path))
}

// FromDocument converts an already decoded document.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	var points []math3d.Vec3
	var faces [][3]int

	for _, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				l.Logger.Debug("skipping non-triangle primitive",
					zap.String("mesh", m.Name), zap.Int("primitive", pi))
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("read positions of %q: %w", m.Name, err)
			}

			// Faces are 1-based for NewMesh
			base := len(points) + 1
			for _, p := range positions {
				points = append(points, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
			}

			if prim.Indices == nil {
				// No indices, assume sequential triangles
				for i := 0; i+2 < len(positions); i += 3 {
					faces = append(faces, [3]int{base + i, base + i + 1, base + i + 2})
				}
				continue
			}

			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("read indices of %q: %w", m.Name, err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				faces = append(faces, [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				})
			}
		}
	}

	mesh, err := NewMesh(name, points, faces)
	if err != nil {
		return nil, err
	}
	l.Logger.Debug("loaded gltf",
		zap.String("mesh", name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.TriangleCount()),
	)
	return mesh, nil
}
