package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/scene"
	"github.com/df07/go-photon-mapper/pkg/tracer"
)

// photonDisk stores ten unit photons along x at the given z, all travelling along direction
func photonDisk(t *testing.T, z float64, direction core.Vec3) *photonmap.PhotonMap {
	t.Helper()
	pm := photonmap.New(10)
	for i := 0; i < 10; i++ {
		pm.Store(core.NewVec3(float64(i)*0.1, 0, z), core.NewVec3(1, 1, 1), direction)
	}
	if err := pm.Balance(); err != nil {
		t.Fatal(err)
	}
	return pm
}

func TestRadianceDiffuse(t *testing.T) {
	s := scene.NewScene("diffuse")
	s.Camera = lookDownZ()
	white := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, 0, -20), 5, white)

	pm := photonDisk(t, -15, core.NewVec3(0, 0, -1))
	rt := NewRaytracer(s, pm, 1, 1, DefaultRenderConfig())

	var stats RenderStats
	radiance, err := rt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), &stats)
	if err != nil {
		t.Fatal(err)
	}

	irradiance := 10 / (math.Pi * 0.81)
	expected := irradiance * 0.5 / math.Pi
	if math.Abs(radiance.X-expected) > 1e-9 || math.Abs(radiance.Y-expected) > 1e-9 {
		t.Errorf("Expected radiance %f, got %v", expected, radiance)
	}
	if stats.DiffuseHits != 1 || stats.MirrorBounces != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestRadianceThroughMirror(t *testing.T) {
	s := scene.NewScene("mirror")
	s.Camera = lookDownZ()
	chrome := s.AddMaterial(material.NewMirror(core.NewVec3(0.8, 0.8, 0.8)))
	white := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, 0, -10), 1, chrome)
	s.AddSphere(core.NewVec3(0, 0, 20), 5, white)

	// The mirror sends the ray back to the sphere behind the camera, whose front is at z=15
	pm := photonDisk(t, 15, core.NewVec3(0, 0, 1))
	rt := NewRaytracer(s, pm, 1, 1, DefaultRenderConfig())

	var stats RenderStats
	radiance, err := rt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), &stats)
	if err != nil {
		t.Fatal(err)
	}

	expected := 10 / (math.Pi * 0.81) * 0.5 / math.Pi * 0.8
	if math.Abs(radiance.Z-expected) > 1e-9 {
		t.Errorf("Expected radiance %f, got %v", expected, radiance)
	}
	if stats.MirrorBounces != 1 || stats.DiffuseHits != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestRadianceDepthExceeded(t *testing.T) {
	s := scene.NewScene("hall of mirrors")
	s.Camera = lookDownZ()
	chrome := s.AddMaterial(material.NewMirror(core.NewVec3(1, 1, 1)))
	s.AddSphere(core.NewVec3(0, 0, 0), 10, chrome)

	config := DefaultRenderConfig()
	config.MaxDepth = 3
	rt := NewRaytracer(s, photonmap.New(0), 1, 1, config)

	var stats RenderStats
	radiance, err := rt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), &stats)
	if err != nil {
		t.Fatal(err)
	}
	if !radiance.IsZero() {
		t.Errorf("Expected black after exceeding depth, got %v", radiance)
	}
	if stats.MirrorBounces != 4 || stats.DepthExceeded != 1 {
		t.Errorf("Expected 4 mirror bounces and one depth cutoff, got %+v", stats)
	}
}

func TestRenderRequiresBalancedMap(t *testing.T) {
	rt := NewRaytracer(scene.NewCornellScene(), photonmap.New(10), 4, 4, DefaultRenderConfig())
	if _, _, err := rt.Render(); !errors.Is(err, photonmap.ErrNotBalanced) {
		t.Errorf("Expected ErrNotBalanced, got %v", err)
	}
}

func TestRenderCornellSmoke(t *testing.T) {
	s := scene.NewCornellSpheresScene()
	if err := s.Preprocess(lights.SelectionUniform); err != nil {
		t.Fatal(err)
	}
	pm := photonmap.New(100000)
	if _, err := tracer.NewTracer(s, tracer.Config{Seed: 1, ScaleByEmitted: true}).EmitPhotons(pm, 20000); err != nil {
		t.Fatal(err)
	}
	if err := pm.Balance(); err != nil {
		t.Fatal(err)
	}

	render := func(workers int) ([]core.Vec3, RenderStats) {
		config := DefaultRenderConfig()
		config.Workers = workers
		pixels, stats, err := NewRaytracer(s, pm, 16, 9, config).Render()
		if err != nil {
			t.Fatal(err)
		}
		return pixels, stats
	}

	pixels, stats := render(1)
	if stats.TotalPixels != 16*9 || len(pixels) != 16*9 {
		t.Fatalf("Expected %d pixels, got %d (%d)", 16*9, stats.TotalPixels, len(pixels))
	}
	lit := 0
	for _, p := range pixels {
		if p.X < 0 || p.Y < 0 || p.Z < 0 || math.IsNaN(p.X) {
			t.Fatalf("Invalid radiance %v", p)
		}
		if !p.IsZero() {
			lit++
		}
	}
	if lit < len(pixels)/2 {
		t.Errorf("Expected most pixels lit, got %d of %d", lit, len(pixels))
	}

	parallel, _ := render(4)
	for i := range pixels {
		if pixels[i] != parallel[i] {
			t.Fatalf("Pixel %d differs between 1 and 4 workers: %v vs %v", i, pixels[i], parallel[i])
		}
	}
}
