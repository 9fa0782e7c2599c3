package tracer

import "fmt"

// TraceStats counts what happened to emitted photons
type TraceStats struct {
	Emitted      int // Photon paths started
	Stored       int // Photons deposited in the map
	Escaped      int // Paths that left the scene
	Terminated   int // Paths ended by Russian roulette on a diffuse surface
	Absorbed     int // Paths ended by Russian roulette on a mirror
	Rejected     int // Stores refused because the map was full
	Truncated    int // Paths cut at the bounce limit
	DiffuseHits  int
	SpecularHits int
	Bounces      int // Roulette draws that survived
}

// Add accumulates the outcome of a single path
func (s *TraceStats) Add(r PathResult) {
	s.Emitted++
	s.Stored += r.Stored
	s.DiffuseHits += r.DiffuseHits
	s.SpecularHits += r.SpecularHits
	s.Bounces += r.Bounces

	switch r.Outcome {
	case Escaped:
		s.Escaped++
	case Terminated:
		s.Terminated++
	case Absorbed:
		s.Absorbed++
	case CapacityExhausted:
		s.Rejected++
	case BounceLimit:
		s.Truncated++
	}
}

// Merge adds the counters of other
func (s *TraceStats) Merge(other TraceStats) {
	s.Emitted += other.Emitted
	s.Stored += other.Stored
	s.Escaped += other.Escaped
	s.Terminated += other.Terminated
	s.Absorbed += other.Absorbed
	s.Rejected += other.Rejected
	s.Truncated += other.Truncated
	s.DiffuseHits += other.DiffuseHits
	s.SpecularHits += other.SpecularHits
	s.Bounces += other.Bounces
}

// MeanBounces returns the average number of surviving bounces per emitted photon
func (s TraceStats) MeanBounces() float64 {
	if s.Emitted == 0 {
		return 0
	}
	return float64(s.Bounces) / float64(s.Emitted)
}

func (s TraceStats) String() string {
	return fmt.Sprintf("emitted=%d stored=%d escaped=%d terminated=%d absorbed=%d rejected=%d truncated=%d bounces=%.3f/photon",
		s.Emitted, s.Stored, s.Escaped, s.Terminated, s.Absorbed, s.Rejected, s.Truncated, s.MeanBounces())
}
