package photonmap

import (
	"fmt"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// DefaultMinPhotons is the fewest neighbors that give a non-zero irradiance estimate
const DefaultMinPhotons = 8

// PhotonMap stores photons in a fixed-capacity slice and, once balanced,
// answers nearest-neighbor queries over them.
//
// The slice is 1-indexed: after Balance the node at index i has children at
// 2i and 2i+1. Stores are not safe for concurrent use; queries on a balanced
// map are.
type PhotonMap struct {
	// MinPhotons is the fewest accepted neighbors for a non-zero estimate
	MinPhotons int

	photons  []Photon // length capacity+1, index 0 unused
	count    int
	capacity int
	bounds   core.AABB
	balanced bool
	tables   *angleTables
}

// New creates an empty photon map holding up to capacity photons.
// It panics if capacity is negative.
func New(capacity int) *PhotonMap {
	if capacity < 0 {
		panic(fmt.Sprintf("photonmap: negative capacity %d", capacity))
	}
	return &PhotonMap{
		MinPhotons: DefaultMinPhotons,
		photons:    make([]Photon, capacity+1),
		capacity:   capacity,
		bounds:     core.NewEmptyAABB(),
		tables:     newAngleTables(),
	}
}

// Store records a photon hitting position while travelling along direction.
// It returns false without changing the map when the map is full or already balanced.
func (pm *PhotonMap) Store(position, power, direction core.Vec3) bool {
	return pm.add(NewPhoton(position, power, direction))
}

func (pm *PhotonMap) add(p Photon) bool {
	if pm.balanced || pm.count >= pm.capacity {
		return false
	}
	pm.count++
	pm.photons[pm.count] = p
	pm.bounds.Append(p.Position)
	return true
}

// Merge appends photons in order until the map is full and returns how many were accepted
func (pm *PhotonMap) Merge(photons []Photon) int {
	accepted := 0
	for _, p := range photons {
		if !pm.add(p) {
			break
		}
		accepted++
	}
	return accepted
}

// ScalePower multiplies the power of every stored photon by scale
func (pm *PhotonMap) ScalePower(scale float64) {
	for i := 1; i <= pm.count; i++ {
		pm.photons[i].Power = pm.photons[i].Power.Multiply(scale)
	}
}

// Photon returns the photon at 1-based index i.
// Before balancing the order is insertion order; afterwards it is heap order.
func (pm *PhotonMap) Photon(i int) Photon {
	if i < 1 || i > pm.count {
		panic(fmt.Sprintf("photonmap: index %d out of range [1, %d]", i, pm.count))
	}
	return pm.photons[i]
}

// PhotonDirection decodes the travel direction of p
func (pm *PhotonMap) PhotonDirection(p Photon) core.Vec3 {
	return pm.tables.direction(p.Theta, p.Phi)
}

// Count returns the number of stored photons
func (pm *PhotonMap) Count() int {
	return pm.count
}

// Capacity returns the maximum number of photons
func (pm *PhotonMap) Capacity() int {
	return pm.capacity
}

// Bounds returns the bounding box of all stored positions
func (pm *PhotonMap) Bounds() core.AABB {
	return pm.bounds
}

// IsBalanced reports whether Balance has completed
func (pm *PhotonMap) IsBalanced() bool {
	return pm.balanced
}
