package objfile

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Element indices are uploaded as GL_UNSIGNED_SHORT.
const maxVertices = 1 << 16

type packedVertex struct {
	p mgl32.Vec3
	u mgl32.Vec2
	n mgl32.Vec3
}

// Index collapses duplicate (position, uv, normal) tuples into a
// uint16-indexed representation. Insertion order follows first use.
func Index(m *Mesh) (*IndexedMesh, error) {
	out := &IndexedMesh{Indices: make([]uint16, 0, len(m.Positions))}
	seen := make(map[packedVertex]uint16, len(m.Positions))

	for i := range m.Positions {
		key := packedVertex{m.Positions[i], m.UVs[i], m.Normals[i]}
		if idx, ok := seen[key]; ok {
			out.Indices = append(out.Indices, idx)
			continue
		}
		if len(out.Positions) >= maxVertices {
			return nil, fmt.Errorf("mesh exceeds %d unique vertices", maxVertices)
		}
		idx := uint16(len(out.Positions))
		out.Positions = append(out.Positions, m.Positions[i])
		out.UVs = append(out.UVs, m.UVs[i])
		out.Normals = append(out.Normals, m.Normals[i])
		seen[key] = idx
		out.Indices = append(out.Indices, idx)
	}
	return out, nil
}

// IndexWithTangents is Index plus a per-vertex tangent basis for normal
// mapping. Face tangents are accumulated across every corner that collapses
// into the same vertex, then orthogonalized against the vertex normal.
func IndexWithTangents(m *Mesh) (*IndexedMesh, error) {
	tangents, bitangents := faceTangentBasis(m)

	out := &IndexedMesh{Indices: make([]uint16, 0, len(m.Positions))}
	seen := make(map[packedVertex]uint16, len(m.Positions))

	for i := range m.Positions {
		key := packedVertex{m.Positions[i], m.UVs[i], m.Normals[i]}
		if idx, ok := seen[key]; ok {
			out.Indices = append(out.Indices, idx)
			// average tangents over shared vertices
			out.Tangents[idx] = out.Tangents[idx].Add(tangents[i])
			out.Bitangents[idx] = out.Bitangents[idx].Add(bitangents[i])
			continue
		}
		if len(out.Positions) >= maxVertices {
			return nil, fmt.Errorf("mesh exceeds %d unique vertices", maxVertices)
		}
		idx := uint16(len(out.Positions))
		out.Positions = append(out.Positions, m.Positions[i])
		out.UVs = append(out.UVs, m.UVs[i])
		out.Normals = append(out.Normals, m.Normals[i])
		out.Tangents = append(out.Tangents, tangents[i])
		out.Bitangents = append(out.Bitangents, bitangents[i])
		seen[key] = idx
		out.Indices = append(out.Indices, idx)
	}

	for i := range out.Tangents {
		n := out.Normals[i]
		t := out.Tangents[i]
		b := out.Bitangents[i]

		// Gram-Schmidt: make the tangent orthogonal to the normal
		t = t.Sub(n.Mul(n.Dot(t)))
		if t.Len() > 0 {
			t = t.Normalize()
		}
		// flip to keep a right-handed basis
		if n.Cross(t).Dot(b) < 0 {
			t = t.Mul(-1)
		}
		out.Tangents[i] = t
		if b.Len() > 0 {
			out.Bitangents[i] = b.Normalize()
		}
	}
	return out, nil
}

// faceTangentBasis derives a tangent and bitangent per corner from the UV
// gradient of each triangle. Degenerate UV triangles get a zero basis.
func faceTangentBasis(m *Mesh) (tangents, bitangents []mgl32.Vec3) {
	tangents = make([]mgl32.Vec3, len(m.Positions))
	bitangents = make([]mgl32.Vec3, len(m.Positions))

	for i := 0; i+2 < len(m.Positions); i += 3 {
		dp1 := m.Positions[i+1].Sub(m.Positions[i])
		dp2 := m.Positions[i+2].Sub(m.Positions[i])
		duv1 := m.UVs[i+1].Sub(m.UVs[i])
		duv2 := m.UVs[i+2].Sub(m.UVs[i])

		denom := duv1.X()*duv2.Y() - duv1.Y()*duv2.X()
		if denom == 0 {
			continue
		}
		r := 1.0 / denom
		t := dp1.Mul(duv2.Y()).Sub(dp2.Mul(duv1.Y())).Mul(r)
		b := dp2.Mul(duv1.X()).Sub(dp1.Mul(duv2.X())).Mul(r)

		for c := 0; c < 3; c++ {
			tangents[i+c] = t
			bitangents[i+c] = b
		}
	}
	return tangents, bitangents
}
