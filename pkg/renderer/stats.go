package renderer

import "time"

// RenderStats contains statistics about the gather pass
type RenderStats struct {
	TotalPixels   int           // Pixels rendered
	DiffuseHits   int           // Camera paths that ended on a diffuse surface
	MirrorBounces int           // Mirror reflections followed
	Misses        int           // Camera paths that left the scene
	DepthExceeded int           // Paths still on mirrors at MaxDepth
	ZeroEstimates int           // Diffuse hits with too few photons nearby
	Duration      time.Duration // Wall time of the pass
}

// merge adds the counters of other
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.DiffuseHits += other.DiffuseHits
	s.MirrorBounces += other.MirrorBounces
	s.Misses += other.Misses
	s.DepthExceeded += other.DepthExceeded
	s.ZeroEstimates += other.ZeroEstimates
}
