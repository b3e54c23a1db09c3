package render

import (
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestNewFrustumSamplePoint(t *testing.T) {
	f := NewFrustum(1, 2, 1.5)

	if f.Inside != math3d.P4(0, 0, 2) {
		t.Errorf("Inside = %v, want (0,0,2)", f.Inside)
	}
	for i, p := range f.Planes {
		if p.Distance(f.Inside) == 0 {
			t.Errorf("plane %d passes through the sample point", i)
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := NewFrustum(1, 2, 2)

	tests := []struct {
		name     string
		point    math3d.Vec4
		expected bool
	}{
		{"ahead", math3d.P4(0, 0, 5), true},
		{"view plane corner", math3d.P4(1, 1, 1), true},
		{"before near plane", math3d.P4(0, 0, 0.5), false},
		{"behind eye", math3d.P4(0, 0, -5), false},
		{"left", math3d.P4(-6, 0, 5), false},
		{"right", math3d.P4(6, 0, 5), false},
		{"below", math3d.P4(0, -6, 5), false},
		{"above", math3d.P4(0, 6, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	center := box.Center()
	if center.X != 0 || center.Y != 0 || center.Z != 0 {
		t.Errorf("center = %v, want (0, 0, 0)", center)
	}

	size := box.Size()
	if size.X != 2 || size.Y != 4 || size.Z != 6 {
		t.Errorf("size = %v, want (2, 4, 6)", size)
	}

	halfSize := box.HalfSize()
	if halfSize.X != 1 || halfSize.Y != 2 || halfSize.Z != 3 {
		t.Errorf("halfSize = %v, want (1, 2, 3)", halfSize)
	}
}

func TestAABBCorners(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(1, 2, 3))
	corners := box.Corners()

	if corners[0] != box.Min || corners[7] != box.Max {
		t.Errorf("corners[0]=%v corners[7]=%v", corners[0], corners[7])
	}
	if corners[5] != math3d.V3(1, 0, 3) {
		t.Errorf("corners[5] = %v, want (1,0,3)", corners[5])
	}

	seen := make(map[math3d.Vec3]bool)
	for _, c := range corners {
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("%d distinct corners, want 8", len(seen))
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center", math3d.V3(5, 5, 5), true},
		{"corner min", math3d.V3(0, 0, 0), true},
		{"corner max", math3d.V3(10, 10, 10), true},
		{"edge", math3d.V3(5, 0, 5), true},
		{"outside X", math3d.V3(11, 5, 5), false},
		{"outside Y", math3d.V3(5, -1, 5), false},
		{"outside Z", math3d.V3(5, 5, 15), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := box.ContainsPoint(tc.point)
			if result != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, result, tc.expected)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	t.Run("translation", func(t *testing.T) {
		transformed := box.Transform(math3d.Translate(math3d.V3(10, 20, 30)))

		if transformed.Min != math3d.V3(9, 19, 29) {
			t.Errorf("translated min = %v, want (9, 19, 29)", transformed.Min)
		}
		if transformed.Max != math3d.V3(11, 21, 31) {
			t.Errorf("translated max = %v, want (11, 21, 31)", transformed.Max)
		}
	})

	t.Run("scale", func(t *testing.T) {
		transformed := box.Transform(math3d.Scale(math3d.V3(2, 2, 2)))

		if transformed.Min != math3d.V3(-2, -2, -2) {
			t.Errorf("scaled min = %v, want (-2, -2, -2)", transformed.Min)
		}
		if transformed.Max != math3d.V3(2, 2, 2) {
			t.Errorf("scaled max = %v, want (2, 2, 2)", transformed.Max)
		}
	})
}

func TestFrustumIntersectAABB(t *testing.T) {
	f := NewFrustum(1, 2, 2)
	unit := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	tests := []struct {
		name     string
		offset   math3d.Vec3
		expected bool
	}{
		{"ahead", math3d.V3(0, 0, 5), true},
		{"straddling near plane", math3d.V3(0, 0, 1), true},
		{"behind", math3d.V3(0, 0, -5), false},
		{"far left", math3d.V3(-20, 0, 5), false},
		{"far right", math3d.V3(20, 0, 5), false},
		{"far above", math3d.V3(0, 20, 5), false},
		{"partly left", math3d.V3(-5.5, 0, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f.IntersectAABB(unit, math3d.Translate(tc.offset))
			if got != tc.expected {
				t.Errorf("IntersectAABB at %v = %v, want %v", tc.offset, got, tc.expected)
			}
		})
	}
}
