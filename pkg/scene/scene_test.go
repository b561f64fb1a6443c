package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

func TestLookup_BuiltIns(t *testing.T) {
	for _, id := range IDs() {
		t.Run(id, func(t *testing.T) {
			s, err := Lookup(id)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", id, err)
			}
			if s.Name != id {
				t.Errorf("Expected scene name %q, got %q", id, s.Name)
			}
			if s.World.Len() == 0 {
				t.Error("Scene world should not be empty")
			}
			if s.Background == nil {
				t.Error("Scene should have a background")
			}
			if _, err := renderer.NewCamera(s.Camera); err != nil {
				t.Errorf("Scene camera config is invalid: %v", err)
			}
		})
	}
}

func TestLookup_NamesAreNormalized(t *testing.T) {
	s, err := Lookup("  Final ")
	if err != nil || s.Name != "final" {
		t.Errorf("Expected the final scene, got %v, %v", s, err)
	}

	s, err = Lookup("")
	if err != nil || s.Name != DefaultSceneID {
		t.Errorf("Expected the default scene for an empty name, got %v, %v", s, err)
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("cornell"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestFinalScene_Deterministic(t *testing.T) {
	a := NewFinalScene()
	b := NewFinalScene()
	if a.World.Len() != b.World.Len() {
		t.Fatalf("Final scene object count differs between builds: %d vs %d", a.World.Len(), b.World.Len())
	}
	// 1 ground + up to 22*22 small spheres + 3 large ones
	if a.World.Len() < 4 || a.World.Len() > 1+22*22+3 {
		t.Errorf("Unexpected object count %d", a.World.Len())
	}
}

func TestDefocusScene(t *testing.T) {
	s := NewDefocusScene()
	if s.Camera.DefocusAngle <= 0 {
		t.Errorf("Defocus scene should have a positive defocus angle, got %f", s.Camera.DefocusAngle)
	}
	if NewMaterialsScene().Camera.DefocusAngle != 0 {
		t.Error("Building the defocus scene must not alter the materials scene")
	}
}

func TestList(t *testing.T) {
	scenes := List()
	if len(scenes) != len(IDs()) {
		t.Fatalf("Expected %d scenes, got %d", len(IDs()), len(scenes))
	}

	for i, info := range scenes {
		if i > 0 && scenes[i-1].ID >= info.ID {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].ID, info.ID)
		}
		if info.Width <= 0 || info.Height <= 0 || info.Samples <= 0 || info.Objects <= 0 {
			t.Errorf("Incomplete scene info %+v", info)
		}
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"sphere-grid", "Sphere Grid"},
		{"glass_spheres", "Glass Spheres"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestOklchToRGB_InGamut(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 15 {
		c := oklchToRGB(0.65, 0.25, hue)
		for _, component := range []float64{c.X, c.Y, c.Z} {
			if component < 0 || component > 1 {
				t.Fatalf("Hue %f produced out-of-range color %v", hue, c)
			}
		}
	}
}
