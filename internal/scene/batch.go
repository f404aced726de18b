package scene

import (
	"fmt"

	"classroom/internal/graphics"
	"classroom/pkg/objfile"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex attribute layout shared by both shader programs.
const (
	attrPosition  = 0
	attrUV        = 1
	attrNormal    = 2
	attrTangent   = 3
	attrBitangent = 4
)

// Batch is a mesh's GPU-resident geometry plus its material textures and
// instance transform list: the unit of drawing. Instances are append-only
// during scene composition and frozen afterwards.
type Batch struct {
	vertexBuffer    uint32
	uvBuffer        uint32
	normalBuffer    uint32
	tangentBuffer   uint32
	bitangentBuffer uint32
	elementBuffer   uint32

	// Texture handles are owned by the graphics texture cache, not the batch.
	diffuseTex  uint32
	normalTex   uint32
	specularTex uint32

	indexCount   int32
	hasNormalMap bool

	instances []mgl32.Mat4
}

// LoadBatch loads an OBJ model and its diffuse texture into GPU memory.
func LoadBatch(modelPath, texturePath string) (*Batch, error) {
	mesh, err := objfile.Load(modelPath)
	if err != nil {
		return nil, err
	}
	indexed, err := objfile.Index(mesh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", modelPath, err)
	}

	b := &Batch{}
	if b.diffuseTex, err = graphics.GetTexture(texturePath); err != nil {
		return nil, err
	}
	if err := b.upload(indexed); err != nil {
		b.Dispose()
		return nil, err
	}
	return b, nil
}

// LoadNormalMappedBatch loads an OBJ model with diffuse, normal and
// specular maps, computing the tangent basis the normal-map shader needs.
func LoadNormalMappedBatch(modelPath, diffusePath, normalPath, specularPath string) (*Batch, error) {
	mesh, err := objfile.Load(modelPath)
	if err != nil {
		return nil, err
	}
	indexed, err := objfile.IndexWithTangents(mesh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", modelPath, err)
	}

	b := &Batch{hasNormalMap: true}
	if b.diffuseTex, err = graphics.GetTexture(diffusePath); err != nil {
		return nil, err
	}
	if b.normalTex, err = graphics.GetTexture(normalPath); err != nil {
		return nil, err
	}
	if b.specularTex, err = graphics.GetTexture(specularPath); err != nil {
		return nil, err
	}
	if err := b.upload(indexed); err != nil {
		b.Dispose()
		return nil, err
	}
	return b, nil
}

func (b *Batch) upload(m *objfile.IndexedMesh) error {
	if len(m.Indices) == 0 {
		return fmt.Errorf("mesh has no triangles")
	}

	b.indexCount = int32(len(m.Indices))
	b.vertexBuffer = newVec3Buffer(m.Positions)
	b.uvBuffer = newVec2Buffer(m.UVs)
	b.normalBuffer = newVec3Buffer(m.Normals)
	if b.hasNormalMap {
		b.tangentBuffer = newVec3Buffer(m.Tangents)
		b.bitangentBuffer = newVec3Buffer(m.Bitangents)
	}

	gl.GenBuffers(1, &b.elementBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.elementBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	return nil
}

func newVec3Buffer(data []mgl32.Vec3) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*3*4, gl.Ptr(data), gl.STATIC_DRAW)
	return buf
}

func newVec2Buffer(data []mgl32.Vec2) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*2*4, gl.Ptr(data), gl.STATIC_DRAW)
	return buf
}

// AddInstance appends one placement of this batch's geometry.
func (b *Batch) AddInstance(m mgl32.Mat4) {
	b.instances = append(b.instances, m)
}

// Instances returns the instance transforms in insertion order.
func (b *Batch) Instances() []mgl32.Mat4 {
	return b.instances
}

// InstanceCount returns the number of placements.
func (b *Batch) InstanceCount() int {
	return len(b.instances)
}

// HasNormalMap reports whether the batch carries a tangent basis and
// normal/specular maps.
func (b *Batch) HasNormalMap() bool {
	return b.hasNormalMap
}

// IndexCount returns the number of element indices.
func (b *Batch) IndexCount() int32 {
	return b.indexCount
}

// DiffuseTexture returns the diffuse map handle.
func (b *Batch) DiffuseTexture() uint32 { return b.diffuseTex }

// NormalTexture returns the normal map handle, 0 when absent.
func (b *Batch) NormalTexture() uint32 { return b.normalTex }

// SpecularTexture returns the specular map handle, 0 when absent.
func (b *Batch) SpecularTexture() uint32 { return b.specularTex }

// BindPositionOnly binds just the position attribute and the element
// buffer; the depth pass needs nothing else.
func (b *Batch) BindPositionOnly() {
	gl.EnableVertexAttribArray(attrPosition)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vertexBuffer)
	gl.VertexAttribPointerWithOffset(attrPosition, 3, gl.FLOAT, false, 0, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.elementBuffer)
}

// BindGeometry binds position, uv and normal attributes, plus tangent and
// bitangent when the batch is normal-mapped, and the element buffer.
func (b *Batch) BindGeometry() {
	gl.EnableVertexAttribArray(attrPosition)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vertexBuffer)
	gl.VertexAttribPointerWithOffset(attrPosition, 3, gl.FLOAT, false, 0, 0)

	gl.EnableVertexAttribArray(attrUV)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.uvBuffer)
	gl.VertexAttribPointerWithOffset(attrUV, 2, gl.FLOAT, false, 0, 0)

	gl.EnableVertexAttribArray(attrNormal)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.normalBuffer)
	gl.VertexAttribPointerWithOffset(attrNormal, 3, gl.FLOAT, false, 0, 0)

	if b.hasNormalMap {
		gl.EnableVertexAttribArray(attrTangent)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.tangentBuffer)
		gl.VertexAttribPointerWithOffset(attrTangent, 3, gl.FLOAT, false, 0, 0)

		gl.EnableVertexAttribArray(attrBitangent)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.bitangentBuffer)
		gl.VertexAttribPointerWithOffset(attrBitangent, 3, gl.FLOAT, false, 0, 0)
	} else {
		gl.DisableVertexAttribArray(attrTangent)
		gl.DisableVertexAttribArray(attrBitangent)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.elementBuffer)
}

// UnbindGeometry disables the attribute arrays enabled by BindGeometry.
func (b *Batch) UnbindGeometry() {
	gl.DisableVertexAttribArray(attrPosition)
	gl.DisableVertexAttribArray(attrUV)
	gl.DisableVertexAttribArray(attrNormal)
	if b.hasNormalMap {
		gl.DisableVertexAttribArray(attrTangent)
		gl.DisableVertexAttribArray(attrBitangent)
	}
}

// Dispose releases the batch's buffer objects. Handles are zeroed as they
// are deleted, so calling Dispose again is a no-op. Textures belong to the
// graphics cache and are released there.
func (b *Batch) Dispose() {
	for _, buf := range []*uint32{
		&b.vertexBuffer, &b.uvBuffer, &b.normalBuffer,
		&b.tangentBuffer, &b.bitangentBuffer, &b.elementBuffer,
	} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
}
