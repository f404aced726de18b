package render

import "testing"

func TestToggleShadingModelRoundTrips(t *testing.T) {
	r := &Renderer{shading: ShadingPhong}

	if got := r.ToggleShadingModel(); got != ShadingGouraud {
		t.Fatalf("First toggle gave %v, want Gouraud", got)
	}
	if got := r.ToggleShadingModel(); got != ShadingPhong {
		t.Fatalf("Second toggle gave %v, want Phong", got)
	}
	if r.ShadingModel() != ShadingPhong {
		t.Error("ShadingModel does not reflect the last toggle")
	}
}

func TestShadingModelString(t *testing.T) {
	if ShadingPhong.String() != "Phong" {
		t.Errorf("Phong prints as %q", ShadingPhong.String())
	}
	if ShadingGouraud.String() != "Gouraud" {
		t.Errorf("Gouraud prints as %q", ShadingGouraud.String())
	}
}
