package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/math3d"
)

// OBJLoader reads Wavefront OBJ geometry. Only "v" and "f" records are
// used; malformed records are skipped.
type OBJLoader struct {
	Logger *zap.Logger
}

// NewOBJLoader creates a loader that logs skipped records to logger.
// A nil logger discards them.
func NewOBJLoader(logger *zap.Logger) *OBJLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OBJLoader{Logger: logger}
}

// LoadOBJ loads an OBJ file with a silent loader.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader(nil).Load(path)
}

// Load opens path and reads it with Read.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return l.Read(f, filepath.Base(path))
}

// Read parses OBJ data in two passes. The first pass counts vertex and face
// records so storage can be sized exactly; the second rewinds and parses.
func (l *OBJLoader) Read(r io.ReadSeeker, name string) (*Mesh, error) {
	numVertices, numFaces, err := countRecords(r)
	if err != nil {
		return nil, fmt.Errorf("count obj records: %w", err)
	}
	if numVertices == 0 || numFaces == 0 {
		return nil, fmt.Errorf("read obj %q: %w", name, ErrEmptyMesh)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind obj: %w", err)
	}

	points := make([]math3d.Vec3, 0, numVertices)
	faces := make([][3]int, 0, numFaces)
	skipped := 0

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		switch recordKind(line) {
		case 'v':
			p, ok := parseVertex(line[2:])
			if !ok {
				skipped++
				l.Logger.Debug("skipping malformed vertex", zap.String("mesh", name), zap.Int("line", lineNo))
				continue
			}
			points = append(points, p)
		case 'f':
			f, ok := parseFace(line[2:], len(points))
			if !ok {
				skipped++
				l.Logger.Debug("skipping malformed face", zap.String("mesh", name), zap.Int("line", lineNo))
				continue
			}
			faces = append(faces, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	mesh, err := NewMesh(name, points, faces)
	if err != nil {
		return nil, err
	}

	l.Logger.Debug("loaded obj",
		zap.String("mesh", name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.TriangleCount()),
		zap.Int("skipped", skipped),
	)
	return mesh, nil
}

// countRecords is the first pass: it counts "v " and "f " lines.
func countRecords(r io.Reader) (vertices, faces int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch recordKind(scanner.Text()) {
		case 'v':
			vertices++
		case 'f':
			faces++
		}
	}
	return vertices, faces, scanner.Err()
}

// recordKind returns 'v' or 'f' for vertex and face records, 0 otherwise.
// "vt", "vn" and friends are not vertex records.
func recordKind(line string) byte {
	if len(line) < 2 || line[1] != ' ' {
		return 0
	}
	switch line[0] {
	case 'v', 'f':
		return line[0]
	}
	return 0
}

func parseVertex(s string) (math3d.Vec3, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return math3d.Vec3{}, false
	}
	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, false
		}
		xyz[i] = v
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), true
}

// parseFace reads a three-vertex face. Each reference may be "i", "i/t",
// "i/t/n" or "i//n". Negative indices count back from the last vertex read
// so far. The result stays 1-based.
func parseFace(s string, seen int) ([3]int, bool) {
	var face [3]int
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return face, false
	}
	for i, field := range fields {
		ref, _, _ := strings.Cut(field, "/")
		idx, err := strconv.Atoi(ref)
		if err != nil || idx == 0 {
			return face, false
		}
		if idx < 0 {
			idx = seen + idx + 1
			if idx < 1 {
				return face, false
			}
		}
		face[i] = idx
	}
	return face, true
}
