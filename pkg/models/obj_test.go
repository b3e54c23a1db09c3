package models

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOBJCube(t *testing.T) {
	mesh, err := LoadOBJ(filepath.Join("testdata", "cube.obj"))
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	if mesh.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("faces = %d, want 12", mesh.TriangleCount())
	}
	if mesh.Name != "cube.obj" {
		t.Errorf("name = %q", mesh.Name)
	}
	// "f 1/1 2/2 3/3" becomes 0-based
	if mesh.Faces[0].V != [3]int{0, 1, 2} {
		t.Errorf("first face = %v", mesh.Faces[0].V)
	}
}

func TestOBJReadFaceForms(t *testing.T) {
	src := strings.Join([]string{
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"v 0 0 1",
		"f 1 2 3",
		"f 1/1 2/2 4/3",
		"f 1/1/1 3/3/3 4/4/4",
		"f 2//1 3//1 4//1",
		"f -4 -3 -1",
	}, "\n")

	mesh, err := NewOBJLoader(nil).Read(strings.NewReader(src), "forms")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := [][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}, {0, 1, 3}}
	if len(mesh.Faces) != len(want) {
		t.Fatalf("faces = %d, want %d", len(mesh.Faces), len(want))
	}
	for i, f := range mesh.Faces {
		if f.V != want[i] {
			t.Errorf("face %d = %v, want %v", i, f.V, want[i])
		}
	}
}

func TestOBJSkipsMalformedLines(t *testing.T) {
	src := strings.Join([]string{
		"# comment",
		"v 0 0 0",
		"v 1 0 0",
		"v nope 1 0",
		"v 0 1 0",
		"v 1 1",
		"vt 0.5 0.5",
		"vn 0 0 1",
		"f 1 2",
		"f 1 2 3 4",
		"f a b c",
		"f 0 1 2",
		"f 1 2 3",
		"g group",
		"",
		"f",
	}, "\n")

	mesh, err := NewOBJLoader(nil).Read(strings.NewReader(src), "messy")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if mesh.VertexCount() != 3 {
		t.Errorf("vertices = %d, want 3", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("faces = %d, want 1", mesh.TriangleCount())
	}
}

func TestOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrEmptyMesh},
		{"no faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n", ErrEmptyMesh},
		{"only malformed faces", "v 0 0 0\nf x y z\n", ErrEmptyMesh},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n", ErrFaceIndex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOBJLoader(nil).Read(strings.NewReader(tc.src), tc.name)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadOBJInvalidPath(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/path.obj"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadByExtension(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "cube.obj"), nil); err != nil {
		t.Errorf("Load(.obj): %v", err)
	}
	if _, err := Load("model.stl", nil); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
