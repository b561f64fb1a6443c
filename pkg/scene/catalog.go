package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a built-in scene without constructing it
type SceneInfo struct {
	ID          string // Name accepted by Lookup
	DisplayName string // Human readable name
	Description string
	Objects     int // Number of top-level objects in the world
	Width       int // Recommended image width
	Height      int // Recommended image height
	Samples     int // Recommended samples per pixel
}

// builders maps scene IDs to their constructors
var builders = map[string]func() *Scene{
	"simple":     NewSimpleScene,
	"materials":  NewMaterialsScene,
	"defocus":    NewDefocusScene,
	"final":      NewFinalScene,
	"spheregrid": NewSphereGridScene,
}

// DefaultSceneID is rendered when no scene is named
const DefaultSceneID = "materials"

// Lookup builds the named built-in scene. Names are case-insensitive.
func Lookup(name string) (*Scene, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	if id == "" {
		id = DefaultSceneID
	}

	build, ok := builders[id]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(IDs(), ", "))
	}
	return build(), nil
}

// IDs returns the names of every built-in scene in alphabetical order
func IDs() []string {
	ids := make([]string, 0, len(builders))
	for id := range builders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List describes every built-in scene, sorted by ID
func List() []SceneInfo {
	var scenes []SceneInfo
	for _, id := range IDs() {
		s := builders[id]()
		width, height := recommendedSize(s)
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: s.Description,
			Objects:     s.GetPrimitiveCount(),
			Width:       width,
			Height:      height,
			Samples:     s.Camera.SamplesPerPixel,
		})
	}
	return scenes
}

func recommendedSize(s *Scene) (int, int) {
	camera, err := renderer.NewCamera(s.Camera)
	if err != nil {
		return s.Camera.ImageWidth, 0
	}
	return camera.ImageSize()
}

// titleCase converts a scene ID to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
