package scene

import (
	"fmt"
	"path/filepath"

	"classroom/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Asset locations
const (
	ModelsDir   = "assets/models"
	TexturesDir = "assets/textures"
)

// Bucket tags a batch's draw group. Draw order across buckets is fixed:
// opaque, normal-mapped, marker (unlit), transparent.
type Bucket int

const (
	BucketOpaque Bucket = iota
	BucketNormalMapped
	BucketMarker
	BucketTransparent
)

// Scene owns every batch, keyed by role id, and the bucket lists that
// define draw order. Transparent batches do not cast shadows.
type Scene struct {
	batches map[string]*Batch

	opaque       []*Batch
	normalMapped []*Batch
	transparent  []*Batch
	markers      []*Batch

	lights *Lights
}

// NewScene builds an empty scene around the given light set.
func NewScene(lights *Lights) *Scene {
	return &Scene{
		batches: make(map[string]*Batch),
		lights:  lights,
	}
}

// AddBatch registers a batch under a role id and its draw bucket.
func (s *Scene) AddBatch(role string, b *Batch, bucket Bucket) {
	s.batches[role] = b
	switch bucket {
	case BucketOpaque:
		s.opaque = append(s.opaque, b)
	case BucketNormalMapped:
		s.normalMapped = append(s.normalMapped, b)
	case BucketMarker:
		s.markers = append(s.markers, b)
	case BucketTransparent:
		s.transparent = append(s.transparent, b)
	}
}

// Batch returns the batch registered under role, or nil.
func (s *Scene) Batch(role string) *Batch {
	return s.batches[role]
}

// Lights returns the scene's light set.
func (s *Scene) Lights() *Lights {
	return s.lights
}

// Opaque returns the opaque bucket in draw order.
func (s *Scene) Opaque() []*Batch { return s.opaque }

// NormalMapped returns the normal-mapped bucket in draw order.
func (s *Scene) NormalMapped() []*Batch { return s.normalMapped }

// Transparent returns the transparent bucket in draw order.
func (s *Scene) Transparent() []*Batch { return s.transparent }

// Markers returns the unlit marker batches.
func (s *Scene) Markers() []*Batch { return s.markers }

// ShadowCasters returns every batch the depth pass renders: the opaque and
// normal-mapped buckets. Markers and glass cast no shadows.
func (s *Scene) ShadowCasters() []*Batch {
	out := make([]*Batch, 0, len(s.opaque)+len(s.normalMapped))
	out = append(out, s.opaque...)
	out = append(out, s.normalMapped...)
	return out
}

// DrawOrder returns every batch in the order the forward pass draws them.
func (s *Scene) DrawOrder() []*Batch {
	out := make([]*Batch, 0, len(s.opaque)+len(s.normalMapped)+len(s.markers)+len(s.transparent))
	out = append(out, s.opaque...)
	out = append(out, s.normalMapped...)
	out = append(out, s.markers...)
	out = append(out, s.transparent...)
	return out
}

// Dispose releases every batch exactly once.
func (s *Scene) Dispose() {
	for _, b := range s.batches {
		b.Dispose()
	}
}

func mod(name string) string { return filepath.Join(ModelsDir, name+".obj") }
func tex(name string) string { return filepath.Join(TexturesDir, name+".dds") }

// batchSpec describes one role's assets. Roles with an empty texture reuse
// the model name; exhaust shares the projector texture.
type batchSpec struct {
	role    string
	texture string
	bucket  Bucket
}

var classroomBatches = []batchSpec{
	{role: "bench", bucket: BucketOpaque},
	{role: "door", bucket: BucketOpaque},
	{role: "switch", bucket: BucketOpaque},
	{role: "exhaust", texture: "projector", bucket: BucketOpaque},
	{role: "clock", bucket: BucketOpaque},
	{role: "pipe", bucket: BucketOpaque},
	{role: "projector", bucket: BucketOpaque},
	{role: "screen", bucket: BucketOpaque},
	{role: "floor", bucket: BucketOpaque},
	{role: "fan", bucket: BucketOpaque},
	{role: "greenboard", bucket: BucketOpaque},
	{role: "podium", bucket: BucketOpaque},
	{role: "table", bucket: BucketOpaque},
	{role: "window", bucket: BucketOpaque},
	{role: "wallfan", bucket: BucketOpaque},
	{role: "lightpanel", bucket: BucketMarker},
	{role: "glass", bucket: BucketTransparent},
}

// normal-mapped roles share one normal/specular map pair
var classroomNormalMapped = []struct {
	role  string
	model string
}{
	{role: "wall", model: "walls"},
	{role: "ceiling", model: "ceiling"},
	{role: "grid", model: "grid"},
}

// LoadClassroom loads every batch and composes the full room. Any missing
// or malformed asset aborts with an error; there is no partial scene.
func LoadClassroom() (*Scene, error) {
	s := NewScene(NewLightsFromGrid(config.GetLightGrid()))

	for _, spec := range classroomBatches {
		texture := spec.texture
		if texture == "" {
			texture = spec.role
		}
		b, err := LoadBatch(mod(spec.role), tex(texture))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", spec.role, err)
		}
		s.AddBatch(spec.role, b, spec.bucket)
	}

	normalMap := filepath.Join(TexturesDir, "normal.bmp")
	for _, spec := range classroomNormalMapped {
		b, err := LoadNormalMappedBatch(mod(spec.model), tex(spec.model), normalMap, tex("specular"))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", spec.role, err)
		}
		s.AddBatch(spec.role, b, BucketNormalMapped)
	}

	if err := s.Compose(); err != nil {
		return nil, err
	}
	return s, nil
}

// Compose populates every batch's instance list. Deterministic: the same
// configuration always produces the same transforms in the same order.
func (s *Scene) Compose() error {
	for _, spec := range classroomBatches {
		if s.batches[spec.role] == nil {
			return fmt.Errorf("compose: missing batch %q", spec.role)
		}
	}
	for _, spec := range classroomNormalMapped {
		if s.batches[spec.role] == nil {
			return fmt.Errorf("compose: missing batch %q", spec.role)
		}
	}

	// Benches: 5x5 grid with two cells skipped for the aisle
	benches := Grid{
		Origin: mgl32.Vec3{-16.0, 0.5, -40.0},
		StepI:  mgl32.Vec3{9.5, 0, 0},
		StepJ:  mgl32.Vec3{0, 0, 20.0},
		CountI: 5,
		CountJ: 5,
		Skip:   func(i, j int) bool { return i == 0 && (j == 3 || j == 4) },
	}
	benches.Each(func(_, _ int, pos mgl32.Vec3) {
		s.place("bench", pos, 90, YAxis, NoScale)
	})

	// Ceiling fans: 2x3 grid
	fans := Grid{
		Origin: mgl32.Vec3{-32.2 + 19.32, 32.975, -48.3 + 22.54},
		StepI:  mgl32.Vec3{25.76, 0, 0},
		StepJ:  mgl32.Vec3{0, 0, 25.76},
		CountI: 2,
		CountJ: 3,
	}
	fans.Each(func(_, _ int, pos mgl32.Vec3) {
		s.place("fan", pos, 0, YAxis, NoScale)
	})

	// Room shell
	s.place("floor", mgl32.Vec3{0, 0, 0}, 0, YAxis, NoScale)
	s.place("ceiling", mgl32.Vec3{0, 38.1, 0}, 0, YAxis, NoScale)
	s.place("wall", mgl32.Vec3{-32.7, 19.06, 0}, 0, YAxis, NoScale)
	s.place("door", mgl32.Vec3{-31.7, 12.5, 48.8}, 0, YAxis, NoScale)

	// Ceiling grid needs a double rotation, composed by hand
	gridXform := mgl32.Translate3D(0, 38.8, 0).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(180), mgl32.Vec3{1, 0, 0}))
	s.batches["grid"].AddInstance(gridXform)

	// Paired wall fittings
	for i := 0; i < 2; i++ {
		fi := float32(i)
		s.place("greenboard", mgl32.Vec3{-32.2, 18.6, fi*36*0.8 - 27.7 + 3.6}, 0, YAxis, mgl32.Vec3{1, 1, 0.8})
		s.place("switch", mgl32.Vec3{-10.2 + fi*28.2, 14.6, 48.3}, 180, YAxis, mgl32.Vec3{0.7, 0.7, 0.7})
		s.place("exhaust", mgl32.Vec3{14.23 - fi*21.46, 34.1, 48.8}, 0, YAxis, mgl32.Vec3{0.857, 0.857, 0.857})
	}

	// Furniture and fixtures
	s.place("podium", mgl32.Vec3{-20.0, 0.5, 28.0}, 290, YAxis, NoScale)
	s.place("table", mgl32.Vec3{-9.0, 0.5, 13.2}, 90, YAxis, NoScale)
	s.place("projector", mgl32.Vec3{6.44, 29.75, -3.22}, 180, YAxis, NoScale)
	s.place("screen", mgl32.Vec3{-31.5, 30.0, -9.66}, 0, YAxis, mgl32.Vec3{1, 1.2, 1.5})
	s.place("clock", mgl32.Vec3{7.6, 28.0, -48.0}, 90, mgl32.Vec3{1, 0, 0}, NoScale)
	s.place("pipe", mgl32.Vec3{-32.2, 5.0, -9.0}, 90, YAxis, NoScale)
	s.place("wallfan", mgl32.Vec3{-14.0, 25.0, 48.3}, 180, YAxis, mgl32.Vec3{0.5, 0.5, 0.5})

	// East wall: 8 window frames, each with a glass pane
	for i := 0; i < 8; i++ {
		pos := mgl32.Vec3{32.70, 34.1, -42.26 + 12.075*float32(i)}
		s.place("window", pos, 90, YAxis, NoScale)
		s.place("glass", pos, 90, YAxis, mgl32.Vec3{1, 1, 0.25})
	}
	// North wall: 6 window frames, slightly narrower
	for i := 0; i < 6; i++ {
		pos := mgl32.Vec3{26.83 - 10.73*float32(i), 34.1, 48.8}
		s.place("window", pos, 0, YAxis, mgl32.Vec3{0.888, 1, 1})
		s.place("glass", pos, 0, YAxis, mgl32.Vec3{1, 1, 0.25})
	}

	// One visual panel directly under each light
	for _, lp := range s.lights.Positions() {
		s.place("lightpanel", mgl32.Vec3{lp.X(), lp.Y() - 0.925, lp.Z()}, 0, YAxis, mgl32.Vec3{6.44, 0.2, 6.44})
	}

	return nil
}

func (s *Scene) place(role string, pos mgl32.Vec3, rotDeg float32, axis, scale mgl32.Vec3) {
	s.batches[role].AddInstance(Transform(pos, rotDeg, axis, scale))
}
