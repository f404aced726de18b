package objfile

import "github.com/go-gl/mathgl/mgl32"

// Mesh holds raw triangle-soup geometry as read from an OBJ file:
// one entry per face corner, in file order.
type Mesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Normals   []mgl32.Vec3
}

// IndexedMesh is the deduplicated, GPU-ready form of a Mesh. All vertex
// arrays are parallel: one entry per unique (position, uv, normal) tuple.
// Tangents and Bitangents are nil unless built with IndexWithTangents.
type IndexedMesh struct {
	Positions  []mgl32.Vec3
	UVs        []mgl32.Vec2
	Normals    []mgl32.Vec3
	Tangents   []mgl32.Vec3
	Bitangents []mgl32.Vec3
	Indices    []uint16
}

// VertexCount returns the number of unique vertices.
func (m *IndexedMesh) VertexCount() int {
	return len(m.Positions)
}
