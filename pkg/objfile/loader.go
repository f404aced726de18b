package objfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Load reads a Wavefront OBJ file containing triangulated faces with
// position, uv and normal references (f v/vt/vn v/vt/vn v/vt/vn).
// The V texture coordinate is negated because the DDS textures this
// engine consumes store their rows top-down.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open model file: %w", err)
	}
	defer f.Close()

	var (
		positions []mgl32.Vec3
		uvs       []mgl32.Vec2
		normals   []mgl32.Vec3
		corners   [][3]int // position/uv/normal pool indices, 1-based
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad vertex: %w", path, lineNo, err)
			}
			positions = append(positions, v)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad uv: %w", path, lineNo, err)
			}
			uv[1] = -uv[1]
			uvs = append(uvs, uv)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad normal: %w", path, lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("%s:%d: face is not a triangle", path, lineNo)
			}
			for _, corner := range fields[1:] {
				refs, err := parseCorner(corner)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
				corners = append(corners, refs)
			}
		default:
			// material libs, groups, smoothing flags: ignored
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	mesh := &Mesh{
		Positions: make([]mgl32.Vec3, 0, len(corners)),
		UVs:       make([]mgl32.Vec2, 0, len(corners)),
		Normals:   make([]mgl32.Vec3, 0, len(corners)),
	}
	for _, c := range corners {
		vi, ti, ni := c[0], c[1], c[2]
		if vi < 1 || vi > len(positions) || ti < 1 || ti > len(uvs) || ni < 1 || ni > len(normals) {
			return nil, fmt.Errorf("%s: face references vertex %d/%d/%d out of range", path, vi, ti, ni)
		}
		mesh.Positions = append(mesh.Positions, positions[vi-1])
		mesh.UVs = append(mesh.UVs, uvs[ti-1])
		mesh.Normals = append(mesh.Normals, normals[ni-1])
	}
	return mesh, nil
}

func parseCorner(s string) ([3]int, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return [3]int{}, fmt.Errorf("face corner %q is not v/vt/vn", s)
	}
	var refs [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return [3]int{}, fmt.Errorf("face corner %q: %w", s, err)
		}
		refs[i] = n
	}
	return refs, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseVec2(fields []string) (mgl32.Vec2, error) {
	var v mgl32.Vec2
	if len(fields) < 2 {
		return v, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}
