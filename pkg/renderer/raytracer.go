package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// RenderConfig controls the gather pass
type RenderConfig struct {
	EstimateRadius  float64 // Largest search radius for the irradiance estimate
	EstimatePhotons int     // Photons gathered per estimate
	MaxDepth        int     // Mirror reflections followed before giving up
	Workers         int     // Row workers, 0 for runtime.NumCPU()
}

// DefaultRenderConfig returns the settings of the reference render
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		EstimateRadius:  20.0,
		EstimatePhotons: 100,
		MaxDepth:        5,
	}
}

// Raytracer shades camera rays with radiance estimates from a balanced photon map
type Raytracer struct {
	scene     *scene.Scene
	photonMap *photonmap.PhotonMap
	camera    *Camera
	width     int
	height    int
	config    RenderConfig
	logger    core.Logger
}

// NewRaytracer creates a raytracer for the scene's camera
func NewRaytracer(s *scene.Scene, pm *photonmap.PhotonMap, width, height int, config RenderConfig) *Raytracer {
	return &Raytracer{
		scene:     s,
		photonMap: pm,
		camera:    NewCamera(s.Camera, width, height),
		width:     width,
		height:    height,
		config:    config,
		logger:    core.NopLogger{},
	}
}

// SetLogger sets the logger used for progress messages
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// Radiance returns the light leaving the first diffuse surface seen along ray.
// Mirrors are followed up to MaxDepth reflections, each scaling by its reflectance.
func (rt *Raytracer) Radiance(ray core.Ray, stats *RenderStats) (core.Vec3, error) {
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; depth <= rt.config.MaxDepth; depth++ {
		hit, isHit := rt.scene.Intersect(ray)
		if !isHit {
			stats.Misses++
			return core.Vec3{}, nil
		}

		mat := rt.scene.Material(hit)
		if mat.IsDiffuse() {
			stats.DiffuseHits++
			irradiance, err := rt.photonMap.EstimateIrradiance(hit.Point, hit.OrientedNormal, rt.config.EstimateRadius, rt.config.EstimatePhotons)
			if err != nil {
				return core.Vec3{}, err
			}
			if irradiance.IsZero() {
				stats.ZeroEstimates++
			}
			return irradiance.MultiplyVec(mat.BRDF()).MultiplyVec(throughput), nil
		}

		// Mirror sampling draws no random numbers
		stats.MirrorBounces++
		sample := mat.Sample(hit.Outgoing, hit.OrientedNormal, nil)
		throughput = throughput.MultiplyVec(sample.BRDF)
		ray = core.NewRay(hit.Point, sample.Incident.Normalize())
	}

	stats.DepthExceeded++
	return core.Vec3{}, nil
}

// renderRow shades one image row into pixels
func (rt *Raytracer) renderRow(j int, pixels []core.Vec3) (RenderStats, error) {
	var stats RenderStats
	for i := 0; i < rt.width; i++ {
		color, err := rt.Radiance(rt.camera.GetRay(i, j), &stats)
		if err != nil {
			return stats, fmt.Errorf("pixel (%d, %d): %w", i, j, err)
		}
		pixels[j*rt.width+i] = color
		stats.TotalPixels++
	}
	return stats, nil
}

// Render shades every pixel and returns linear radiance in row-major order, top row first
func (rt *Raytracer) Render() ([]core.Vec3, RenderStats, error) {
	if !rt.photonMap.IsBalanced() {
		return nil, RenderStats{}, fmt.Errorf("render: %w", photonmap.ErrNotBalanced)
	}

	start := time.Now()
	pixels := make([]core.Vec3, rt.width*rt.height)

	pool := NewWorkerPool(rt, pixels, rt.config.Workers)
	pool.Start()
	for j := 0; j < rt.height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}
	pool.Stop()

	var stats RenderStats
	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
	}
	if firstErr != nil {
		return nil, stats, firstErr
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Rendered %dx%d in %v (%d diffuse hits, %d mirror bounces, %d empty estimates)",
		rt.width, rt.height, stats.Duration, stats.DiffuseHits, stats.MirrorBounces, stats.ZeroEstimates)
	return pixels, stats, nil
}
