package objfile

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// quadMesh returns two triangles sharing an edge, all facing +Z.
func quadMesh() *Mesh {
	p := []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0},
		{0, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	uv := []mgl32.Vec2{
		{0, 0}, {1, 0}, {1, 1},
		{0, 0}, {1, 1}, {0, 1},
	}
	n := make([]mgl32.Vec3, 6)
	for i := range n {
		n[i] = mgl32.Vec3{0, 0, 1}
	}
	return &Mesh{Positions: p, UVs: uv, Normals: n}
}

func TestIndexDeduplicates(t *testing.T) {
	im, err := Index(quadMesh())
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	if im.VertexCount() != 4 {
		t.Errorf("Expected 4 unique vertices, got %d", im.VertexCount())
	}
	if len(im.Indices) != 6 {
		t.Errorf("Expected 6 indices, got %d", len(im.Indices))
	}
	for i, idx := range im.Indices {
		if int(idx) >= im.VertexCount() {
			t.Errorf("Index %d = %d out of range (%d vertices)", i, idx, im.VertexCount())
		}
	}
	// shared corners must resolve to the same vertex
	if im.Indices[0] != im.Indices[3] || im.Indices[2] != im.Indices[4] {
		t.Errorf("Shared corners not collapsed: %v", im.Indices)
	}
}

func TestIndexParallelArrays(t *testing.T) {
	im, err := Index(quadMesh())
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if len(im.UVs) != im.VertexCount() || len(im.Normals) != im.VertexCount() {
		t.Errorf("Arrays not parallel: %d positions, %d uvs, %d normals",
			im.VertexCount(), len(im.UVs), len(im.Normals))
	}
	if im.Tangents != nil || im.Bitangents != nil {
		t.Error("Plain Index must not allocate tangent buffers")
	}
}

func TestIndexWithTangents(t *testing.T) {
	im, err := IndexWithTangents(quadMesh())
	if err != nil {
		t.Fatalf("IndexWithTangents failed: %v", err)
	}

	if len(im.Tangents) != im.VertexCount() || len(im.Bitangents) != im.VertexCount() {
		t.Fatalf("Tangent arrays not parallel: %d/%d tangents for %d vertices",
			len(im.Tangents), len(im.Bitangents), im.VertexCount())
	}

	for i, tan := range im.Tangents {
		n := im.Normals[i]
		if d := math.Abs(float64(tan.Dot(n))); d > 1e-5 {
			t.Errorf("Tangent %d not orthogonal to normal: dot=%g", i, d)
		}
		if l := tan.Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("Tangent %d not unit length: %g", i, l)
		}
		// for this flat +Z quad with axis-aligned UVs the tangent is +X
		if tan.X() < 0.99 {
			t.Errorf("Tangent %d = %v, want +X", i, tan)
		}
	}
}

func TestIndexOverflow(t *testing.T) {
	n := maxVertices + 3
	m := &Mesh{
		Positions: make([]mgl32.Vec3, n),
		UVs:       make([]mgl32.Vec2, n),
		Normals:   make([]mgl32.Vec3, n),
	}
	for i := 0; i < n; i++ {
		m.Positions[i] = mgl32.Vec3{float32(i), 0, 0}
		m.Normals[i] = mgl32.Vec3{0, 1, 0}
	}
	if _, err := Index(m); err == nil {
		t.Error("Expected overflow error past 65536 unique vertices")
	}
}
