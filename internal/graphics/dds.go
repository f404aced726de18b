package graphics

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DirectDraw Surface container: "DDS " magic, a 124-byte header, then the
// raw S3TC block data for every mip level.

const ddsHeaderSize = 128 // magic + header

const (
	fourCCDXT1 = 0x31545844 // "DXT1"
	fourCCDXT3 = 0x33545844 // "DXT3"
	fourCCDXT5 = 0x35545844 // "DXT5"
)

// S3TC enums come from EXT_texture_compression_s3tc and are not part of the
// core 4.1 bindings.
const (
	glCompressedRGBAS3TCDXT1 = 0x83F1
	glCompressedRGBAS3TCDXT3 = 0x83F2
	glCompressedRGBAS3TCDXT5 = 0x83F3
)

type ddsHeader struct {
	width       uint32
	height      uint32
	mipMapCount uint32
	fourCC      uint32
}

func parseDDSHeader(data []byte) (ddsHeader, error) {
	var h ddsHeader
	if len(data) < ddsHeaderSize {
		return h, fmt.Errorf("file too short for a DDS header (%d bytes)", len(data))
	}
	if string(data[:4]) != "DDS " {
		return h, fmt.Errorf("bad magic %q", data[:4])
	}
	le := binary.LittleEndian
	h.height = le.Uint32(data[12:])
	h.width = le.Uint32(data[16:])
	h.mipMapCount = le.Uint32(data[28:])
	h.fourCC = le.Uint32(data[84:])
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("degenerate dimensions %dx%d", h.width, h.height)
	}
	if h.mipMapCount == 0 {
		h.mipMapCount = 1
	}
	return h, nil
}

func (h ddsHeader) glFormat() (format uint32, blockSize uint32, err error) {
	switch h.fourCC {
	case fourCCDXT1:
		return glCompressedRGBAS3TCDXT1, 8, nil
	case fourCCDXT3:
		return glCompressedRGBAS3TCDXT3, 16, nil
	case fourCCDXT5:
		return glCompressedRGBAS3TCDXT5, 16, nil
	default:
		return 0, 0, fmt.Errorf("unsupported DDS fourCC 0x%08X", h.fourCC)
	}
}

// loadDDS uploads a DXT-compressed texture with its full mip chain.
func loadDDS(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open texture file: %w", err)
	}

	header, err := parseDDSHeader(data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	format, blockSize, err := header.glFormat()
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	width, height := header.width, header.height
	offset := uint32(ddsHeaderSize)
	levels := int32(0)
	for level := uint32(0); level < header.mipMapCount && (width > 0 || height > 0); level++ {
		if width == 0 {
			width = 1
		}
		if height == 0 {
			height = 1
		}
		size := ((width + 3) / 4) * ((height + 3) / 4) * blockSize
		if uint32(len(data)) < offset+size {
			gl.DeleteTextures(1, &texture)
			return 0, fmt.Errorf("failed to parse %s: mip %d truncated", path, level)
		}
		gl.CompressedTexImage2D(gl.TEXTURE_2D, int32(level), format,
			int32(width), int32(height), 0, int32(size), gl.Ptr(data[offset:]))
		offset += size
		width /= 2
		height /= 2
		levels++
	}

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, levels-1)
	if levels > 1 {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture, nil
}
