package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string
	Description string
}

var builtinScenes = map[string]struct {
	description string
	build       func() *Scene
}{
	"cornell":         {"Sphere-walled Cornell box with a single point light", NewCornellScene},
	"cornell-spheres": {"Cornell box with a mirror ball and a green matte ball", NewCornellSpheresScene},
	"default":         {"Cornell room with two colored point lights", NewDefaultScene},
	"spheregrid":      {"Grid of matte and mirror spheres on a ground sphere", NewSphereGridScene},
}

// ListBuiltinScenes returns the built-in scenes sorted by ID
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, entry := range builtinScenes {
		scenes = append(scenes, SceneInfo{ID: id, Description: entry.description})
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewBuiltinScene creates the built-in scene with the given ID
func NewBuiltinScene(id string) (*Scene, error) {
	entry, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return entry.build(), nil
}
