package photonmap

import (
	"sync"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// ParallelBalanceThreshold is the segment size at which both halves of a split are balanced concurrently
var ParallelBalanceThreshold = 1 << 14

// Balance reorganizes the stored photons into a left-balanced k-d tree in heap order.
// It returns ErrNoPhotons when the map is empty and ErrAlreadyBalanced on a second call.
func (pm *PhotonMap) Balance() error {
	if pm.balanced {
		return ErrAlreadyBalanced
	}
	if pm.count == 0 {
		return ErrNoPhotons
	}

	b := &balancer{
		photons: pm.photons,
		order:   make([]int, pm.count+1),
		tree:    make([]int, pm.count+1),
	}
	for i := 1; i <= pm.count; i++ {
		b.order[i] = i
	}

	b.balanceSegment(1, 1, pm.count, pm.bounds)
	pm.permute(b.tree)
	pm.balanced = true
	return nil
}

// balancer partitions index slices; photons are only moved once the tree is complete
type balancer struct {
	photons []Photon
	order   []int // stored photon indices, partitioned in place
	tree    []int // heap slot -> stored photon index
}

func (b *balancer) coordinate(i, axis int) float64 {
	return b.photons[b.order[i]].Position.Axis(axis)
}

// balanceSegment places the median of order[begin..end] at heap slot index and recurses.
// The box bounds the segment and is narrowed on the split axis for each half.
func (b *balancer) balanceSegment(index, begin, end int, box core.AABB) {
	median := segmentMedian(begin, end)
	axis := box.LongestAxis()

	b.medianSplit(begin, end, median, axis)

	b.tree[index] = b.order[median]
	b.photons[b.order[median]].Plane = uint8(axis)
	split := b.coordinate(median, axis)

	leftBox, rightBox := box, box
	leftBox.Max = leftBox.Max.SetAxis(axis, split)
	rightBox.Min = rightBox.Min.SetAxis(axis, split)

	balanceLeft := func() {
		if median <= begin {
			return
		}
		if begin < median-1 {
			b.balanceSegment(2*index, begin, median-1, leftBox)
		} else {
			b.tree[2*index] = b.order[begin]
		}
	}
	balanceRight := func() {
		if median >= end {
			return
		}
		if median+1 < end {
			b.balanceSegment(2*index+1, median+1, end, rightBox)
		} else {
			b.tree[2*index+1] = b.order[end]
		}
	}

	// The halves touch disjoint ranges of order and tree, so they can run side by side
	if end-begin+1 >= ParallelBalanceThreshold {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			balanceLeft()
		}()
		balanceRight()
		wg.Wait()
		return
	}

	balanceLeft()
	balanceRight()
}

// segmentMedian picks the split position that keeps the tree left-balanced:
// the left subtree is complete whenever possible.
func segmentMedian(begin, end int) int {
	n := end - begin + 1
	m := 1
	for 4*m <= n {
		m += m
	}
	if 3*m <= n {
		return 2*m + begin - 1
	}
	return end - m + 1
}

// medianSplit partially sorts order[left..right] on axis so that order[median]
// holds the median and no element to its left is greater, none to its right smaller.
func (b *balancer) medianSplit(left, right, median, axis int) {
	for left < right {
		v := b.coordinate(right, axis)
		i := left - 1
		j := right

		for {
			for i++; b.coordinate(i, axis) < v; i++ {
			}
			for j--; b.coordinate(j, axis) > v && j > left; j-- {
			}
			if i >= j {
				break
			}
			b.order[i], b.order[j] = b.order[j], b.order[i]
		}

		b.order[i], b.order[right] = b.order[right], b.order[i]
		if i >= median {
			right = i - 1
		}
		if i <= median {
			left = i + 1
		}
	}
}

// permute moves photons so that slot i holds the photon tree[i] refers to.
// Each cycle of the permutation is followed holding one displaced photon.
func (pm *PhotonMap) permute(tree []int) {
	for start := 1; start <= pm.count; start++ {
		if tree[start] == 0 {
			continue
		}
		held := pm.photons[start]
		j := start
		for {
			d := tree[j]
			tree[j] = 0
			if d == start {
				pm.photons[j] = held
				break
			}
			pm.photons[j] = pm.photons[d]
			j = d
		}
	}
}
