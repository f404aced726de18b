package graphics

import (
	"encoding/binary"
	"testing"
)

func ddsFixture(width, height, mips, fourCC uint32) []byte {
	data := make([]byte, ddsHeaderSize)
	copy(data, "DDS ")
	le := binary.LittleEndian
	le.PutUint32(data[4:], 124)
	le.PutUint32(data[12:], height)
	le.PutUint32(data[16:], width)
	le.PutUint32(data[28:], mips)
	le.PutUint32(data[84:], fourCC)
	return data
}

func TestParseDDSHeader(t *testing.T) {
	h, err := parseDDSHeader(ddsFixture(256, 128, 9, fourCCDXT1))
	if err != nil {
		t.Fatalf("parseDDSHeader failed: %v", err)
	}
	if h.width != 256 || h.height != 128 {
		t.Errorf("Got %dx%d, want 256x128", h.width, h.height)
	}
	if h.mipMapCount != 9 {
		t.Errorf("Got %d mips, want 9", h.mipMapCount)
	}
}

func TestParseDDSHeaderDefaultsMipCount(t *testing.T) {
	h, err := parseDDSHeader(ddsFixture(64, 64, 0, fourCCDXT5))
	if err != nil {
		t.Fatalf("parseDDSHeader failed: %v", err)
	}
	if h.mipMapCount != 1 {
		t.Errorf("Zero mip count should default to 1, got %d", h.mipMapCount)
	}
}

func TestParseDDSHeaderRejectsBadMagic(t *testing.T) {
	data := ddsFixture(64, 64, 1, fourCCDXT1)
	copy(data, "PNG ")
	if _, err := parseDDSHeader(data); err == nil {
		t.Error("Expected error for bad magic")
	}
}

func TestParseDDSHeaderRejectsShortFile(t *testing.T) {
	if _, err := parseDDSHeader([]byte("DDS ")); err == nil {
		t.Error("Expected error for truncated header")
	}
}

func TestGLFormat(t *testing.T) {
	cases := []struct {
		fourCC    uint32
		format    uint32
		blockSize uint32
	}{
		{fourCCDXT1, glCompressedRGBAS3TCDXT1, 8},
		{fourCCDXT3, glCompressedRGBAS3TCDXT3, 16},
		{fourCCDXT5, glCompressedRGBAS3TCDXT5, 16},
	}
	for _, c := range cases {
		h := ddsHeader{fourCC: c.fourCC}
		format, blockSize, err := h.glFormat()
		if err != nil {
			t.Errorf("fourCC 0x%X: unexpected error %v", c.fourCC, err)
			continue
		}
		if format != c.format || blockSize != c.blockSize {
			t.Errorf("fourCC 0x%X: got format 0x%X block %d", c.fourCC, format, blockSize)
		}
	}

	h := ddsHeader{fourCC: 0x30315844} // "DX10" layout is not handled
	if _, _, err := h.glFormat(); err == nil {
		t.Error("Expected error for unsupported fourCC")
	}
}
