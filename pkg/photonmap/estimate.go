package photonmap

import (
	"container/heap"
	"math"
	"sort"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Neighbor is a photon found by LocatePhotons
type Neighbor struct {
	Index           int // Heap index in the balanced map
	Photon          Photon
	DistanceSquared float64
}

// neighborHeap is a max-heap on distance so the farthest kept photon is at the root
type neighborHeap []Neighbor

func (h neighborHeap) Len() int           { return len(h) }
func (h neighborHeap) Less(i, j int) bool { return h[i].DistanceSquared > h[j].DistanceSquared }
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *neighborHeap) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type search struct {
	pm           *PhotonMap
	position     core.Vec3
	normal       core.Vec3
	maxPhotons   int
	maxDistance2 float64
	found        neighborHeap
}

// LocatePhotons finds up to maxPhotons photons within maxRadius of position that
// arrived from the side normal points to. A zero normal disables the direction test.
// Neighbors are returned nearest first, along with the squared distance of the farthest one.
func (pm *PhotonMap) LocatePhotons(position, normal core.Vec3, maxRadius float64, maxPhotons int) ([]Neighbor, float64, error) {
	if !pm.balanced {
		return nil, 0, ErrNotBalanced
	}
	if maxPhotons <= 0 || maxRadius <= 0 {
		return nil, 0, nil
	}

	s := &search{
		pm:           pm,
		position:     position,
		normal:       normal,
		maxPhotons:   maxPhotons,
		maxDistance2: maxRadius * maxRadius,
		found:        make(neighborHeap, 0, min(maxPhotons, pm.count)),
	}
	s.locate(1)

	if len(s.found) == 0 {
		return nil, 0, nil
	}
	farthest := s.found[0].DistanceSquared

	neighbors := []Neighbor(s.found)
	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].DistanceSquared < neighbors[j].DistanceSquared
	})
	return neighbors, farthest, nil
}

func (s *search) locate(index int) {
	p := &s.pm.photons[index]
	count := s.pm.count

	left, right := 2*index, 2*index+1
	if left <= count {
		axis := int(p.Plane)
		delta := s.position.Axis(axis) - p.Position.Axis(axis)

		if delta < 0 {
			s.locate(left)
			if right <= count && delta*delta < s.maxDistance2 {
				s.locate(right)
			}
		} else {
			if right <= count {
				s.locate(right)
			}
			if delta*delta < s.maxDistance2 {
				s.locate(left)
			}
		}
	}

	distance2 := p.Position.Subtract(s.position).LengthSquared()
	if distance2 >= s.maxDistance2 {
		return
	}

	// Photon directions are travel directions, so an arrival from the normal's side points against it
	if !s.normal.IsZero() && s.pm.tables.direction(p.Theta, p.Phi).Dot(s.normal) >= 0 {
		return
	}

	s.insert(Neighbor{Index: index, Photon: *p, DistanceSquared: distance2})
}

func (s *search) insert(n Neighbor) {
	if len(s.found) < s.maxPhotons {
		heap.Push(&s.found, n)
		if len(s.found) == s.maxPhotons {
			s.maxDistance2 = s.found[0].DistanceSquared
		}
		return
	}

	s.found[0] = n
	heap.Fix(&s.found, 0)
	s.maxDistance2 = s.found[0].DistanceSquared
}

// EstimateIrradiance returns the flux density around position from the nearest
// maxPhotons photons within maxRadius that arrived on the normal's side.
// It returns zero when fewer than MinPhotons are found.
func (pm *PhotonMap) EstimateIrradiance(position, normal core.Vec3, maxRadius float64, maxPhotons int) (core.Vec3, error) {
	neighbors, radius2, err := pm.LocatePhotons(position, normal, maxRadius, maxPhotons)
	if err != nil {
		return core.Vec3{}, err
	}
	if len(neighbors) < pm.MinPhotons || len(neighbors) == 0 || radius2 <= 0 {
		return core.Vec3{}, nil
	}

	var flux core.Vec3
	for _, n := range neighbors {
		flux = flux.Add(n.Photon.Power)
	}
	return flux.Multiply(1.0 / (math.Pi * radius2)), nil
}
