package tracer

import (
	"fmt"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// Outcome is the final state of a photon path
type Outcome int

const (
	Escaped           Outcome = iota // No surface hit
	Terminated                       // Roulette failed after a diffuse store, or the sampled direction was degenerate
	Absorbed                         // Roulette failed on a mirror
	CapacityExhausted                // The sink refused a store
	BounceLimit                      // MaxBounces reached
	NoEmission                       // The scene had no light to emit from
)

func (o Outcome) String() string {
	switch o {
	case Escaped:
		return "escaped"
	case Terminated:
		return "terminated"
	case Absorbed:
		return "absorbed"
	case CapacityExhausted:
		return "capacity exhausted"
	case BounceLimit:
		return "bounce limit"
	case NoEmission:
		return "no emission"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// PathResult describes a single traced photon path
type PathResult struct {
	Outcome      Outcome
	Stored       int
	DiffuseHits  int
	SpecularHits int
	Bounces      int
}

// PhotonSink receives photons deposited on diffuse surfaces
type PhotonSink interface {
	Store(position, power, direction core.Vec3) bool
}

// Config controls photon emission
type Config struct {
	MaxBounces     int   // Cap on bounces followed per path, 0 for unlimited
	Seed           int64 // Base seed; emission chunk i uses Seed+i
	ScaleByEmitted bool  // Divide stored power by the number of emitted photons
}

// Tracer follows photons from the scene's lights through the scene
type Tracer struct {
	scene  *scene.Scene
	config Config
	logger core.Logger
}

// NewTracer creates a tracer for a preprocessed scene
func NewTracer(s *scene.Scene, config Config) *Tracer {
	return &Tracer{scene: s, config: config, logger: core.NopLogger{}}
}

// SetLogger sets the logger used for progress messages
func (t *Tracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	t.logger = logger
}

// Config returns the tracer configuration
func (t *Tracer) Config() Config {
	return t.config
}

// TracePhoton emits one photon and follows it until it leaves the scene or is
// absorbed. Every diffuse hit deposits the carried flux into sink. The flux is
// never attenuated; Russian roulette on the green reflectance decides survival.
func (t *Tracer) TracePhoton(sampler core.Sampler, sink PhotonSink) PathResult {
	var result PathResult

	ray, ok := t.scene.EmitPhotonRay(sampler)
	if !ok {
		result.Outcome = NoEmission
		return result
	}

	for {
		hit, isHit := t.scene.Intersect(ray.Ray)
		if !isHit {
			result.Outcome = Escaped
			return result
		}

		mat := t.scene.Material(hit)
		if mat.IsDiffuse() {
			result.DiffuseHits++
			if !sink.Store(hit.Point, ray.Flux, ray.Direction) {
				result.Outcome = CapacityExhausted
				return result
			}
			result.Stored++
			if sampler.Get1D() >= mat.SurvivalProbability() {
				result.Outcome = Terminated
				return result
			}
		} else {
			result.SpecularHits++
			if sampler.Get1D() >= mat.SurvivalProbability() {
				result.Outcome = Absorbed
				return result
			}
		}

		sample := mat.Sample(hit.Outgoing, hit.OrientedNormal, sampler)
		direction := sample.Incident.Normalize()
		if direction.IsZero() {
			result.Outcome = Terminated
			return result
		}

		if t.config.MaxBounces > 0 && result.Bounces >= t.config.MaxBounces {
			result.Outcome = BounceLimit
			return result
		}
		result.Bounces++

		ray = core.PhotonRay{Ray: core.NewRay(hit.Point, direction), Flux: ray.Flux}
	}
}

// EmitPhotons traces count photons on the calling goroutine. It walks the same
// emission chunks as WorkerPool.EmitPhotons and produces the same photon map.
func (t *Tracer) EmitPhotons(pm *photonmap.PhotonMap, count int) (TraceStats, error) {
	if err := t.checkEmission(pm, count); err != nil {
		return TraceStats{}, err
	}

	tasks := t.splitBudget(count, pm.Capacity()-pm.Count())
	results := make([]EmissionResult, len(tasks))
	for i, task := range tasks {
		results[i] = t.runTask(task)
	}

	stats := mergeResults(pm, results)
	t.finish(pm, stats)
	return stats, nil
}

// splitBudget divides count photons into chunks of EmissionChunkSize. Chunk i
// is seeded with Seed+i, so the chunks depend only on the seed and the count.
func (t *Tracer) splitBudget(count, limit int) []EmissionTask {
	tasks := make([]EmissionTask, 0, (count+EmissionChunkSize-1)/EmissionChunkSize)
	for start := 0; start < count; start += EmissionChunkSize {
		id := len(tasks)
		tasks = append(tasks, EmissionTask{
			TaskID: id,
			Count:  min(EmissionChunkSize, count-start),
			Seed:   t.config.Seed + int64(id),
			Limit:  limit,
		})
	}
	return tasks
}

// runTask traces one chunk into a private buffer
func (t *Tracer) runTask(task EmissionTask) EmissionResult {
	sampler := core.NewSeededSampler(task.Seed)
	buffer := &photonBuffer{limit: task.Limit}

	var stats TraceStats
	for i := 0; i < task.Count; i++ {
		stats.Add(t.TracePhoton(sampler, buffer))
	}
	return EmissionResult{TaskID: task.TaskID, Photons: buffer.photons, Stats: stats}
}

// mergeResults copies buffered photons into pm in task order. Photons that no
// longer fit are moved from Stored to Rejected.
func mergeResults(pm *photonmap.PhotonMap, results []EmissionResult) TraceStats {
	var stats TraceStats
	for _, result := range results {
		accepted := pm.Merge(result.Photons)
		dropped := len(result.Photons) - accepted
		result.Stats.Stored -= dropped
		result.Stats.Rejected += dropped
		stats.Merge(result.Stats)
	}
	return stats
}

func (t *Tracer) checkEmission(pm *photonmap.PhotonMap, count int) error {
	if count < 0 {
		return fmt.Errorf("photon count must not be negative, got %d", count)
	}
	if pm.IsBalanced() {
		return fmt.Errorf("cannot emit into photon map: %w", photonmap.ErrAlreadyBalanced)
	}
	if len(t.scene.Lights) == 0 {
		return scene.ErrNoLights
	}
	return nil
}

// finish normalizes stored power by the emitted photon count
func (t *Tracer) finish(pm *photonmap.PhotonMap, stats TraceStats) {
	if t.config.ScaleByEmitted && stats.Emitted > 0 {
		pm.ScalePower(1.0 / float64(stats.Emitted))
	}
	t.logger.Printf("Photon pass: %s", stats)
}
