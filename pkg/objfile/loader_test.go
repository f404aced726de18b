package objfile

import (
	"os"
	"path/filepath"
	"testing"
)

const quadOBJ = `# two triangles sharing an edge
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write obj fixture: %v", err)
	}
	return path
}

func TestLoadQuad(t *testing.T) {
	mesh, err := Load(writeOBJ(t, quadOBJ))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(mesh.Positions) != 6 {
		t.Errorf("Expected 6 corners, got %d", len(mesh.Positions))
	}
	if len(mesh.UVs) != 6 || len(mesh.Normals) != 6 {
		t.Errorf("Corner arrays not parallel: %d uvs, %d normals", len(mesh.UVs), len(mesh.Normals))
	}

	// second corner of the first triangle is v2/vt2/vn1
	if got := mesh.Positions[1]; got.X() != 1 || got.Y() != 0 || got.Z() != 0 {
		t.Errorf("Corner 1 position = %v, want (1,0,0)", got)
	}
	if got := mesh.Normals[5]; got.Z() != 1 {
		t.Errorf("Corner 5 normal = %v, want (0,0,1)", got)
	}
}

func TestLoadInvertsV(t *testing.T) {
	mesh, err := Load(writeOBJ(t, quadOBJ))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// vt 1 1 appears at corner 2; V must come back negated for DDS orientation
	uv := mesh.UVs[2]
	if uv.X() != 1 || uv.Y() != -1 {
		t.Errorf("UV = %v, want (1,-1)", uv)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	cases := map[string]string{
		"quad face":        "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 1/1/1 1/1/1 1/1/1\n",
		"missing normals":  "v 0 0 0\nvt 0 0\nf 1/1 1/1 1/1\n",
		"bad float":        "v 0 zero 0\n",
		"index out of pool": "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 1/1/1\n",
	}
	for name, content := range cases {
		if _, err := Load(writeOBJ(t, content)); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}
