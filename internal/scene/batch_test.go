package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAddInstancePreservesOrder(t *testing.T) {
	b := &Batch{}
	m1 := Transform(mgl32.Vec3{1, 0, 0}, 0, YAxis, NoScale)
	m2 := Transform(mgl32.Vec3{2, 0, 0}, 90, YAxis, NoScale)
	m3 := Transform(mgl32.Vec3{3, 0, 0}, 0, YAxis, mgl32.Vec3{2, 2, 2})

	b.AddInstance(m1)
	b.AddInstance(m2)
	b.AddInstance(m3)

	got := b.Instances()
	if len(got) != 3 {
		t.Fatalf("Expected 3 instances, got %d", len(got))
	}
	if got[0] != m1 || got[1] != m2 || got[2] != m3 {
		t.Error("Instances not in insertion order")
	}
}

func TestPlainBatchHasNoNormalMap(t *testing.T) {
	b := &Batch{}
	if b.HasNormalMap() {
		t.Error("Batch without normal map reports HasNormalMap")
	}
	if b.NormalTexture() != 0 || b.SpecularTexture() != 0 {
		t.Error("Batch without normal map holds map handles")
	}
}

// Dispose on a batch that never acquired resources must be a per-resource
// no-op, and repeated calls must stay that way: handles are zeroed as they
// are released, so a second Dispose touches nothing.
func TestDisposeZeroResourceBatch(t *testing.T) {
	b := &Batch{}
	b.Dispose()
	b.Dispose()

	if b.vertexBuffer != 0 || b.elementBuffer != 0 {
		t.Error("Dispose left nonzero handles")
	}
}

func TestZeroInstanceBatchDrawsNothing(t *testing.T) {
	b := &Batch{}
	if b.InstanceCount() != 0 {
		t.Fatal("Fresh batch has instances")
	}
	// the draw loops iterate Instances(); empty means no draw calls
	for range b.Instances() {
		t.Fatal("Iterated an instance on an empty batch")
	}
}
