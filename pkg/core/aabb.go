package core

// emptyBoundsExtent initializes an inverted box so the first Append establishes it
const emptyBoundsExtent = 1e8

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewEmptyAABB creates an inverted AABB (Min = +large, Max = -large).
// The first Append turns it into a degenerate box at that point.
func NewEmptyAABB() AABB {
	return AABB{
		Min: NewVec3(emptyBoundsExtent, emptyBoundsExtent, emptyBoundsExtent),
		Max: NewVec3(-emptyBoundsExtent, -emptyBoundsExtent, -emptyBoundsExtent),
	}
}

// Append expands the box on each axis independently to contain point
func (aabb *AABB) Append(point Vec3) {
	aabb.Min = Vec3{
		X: min(aabb.Min.X, point.X),
		Y: min(aabb.Min.Y, point.Y),
		Z: min(aabb.Min.Z, point.Z),
	}
	aabb.Max = Vec3{
		X: max(aabb.Max.X, point.X),
		Y: max(aabb.Max.Y, point.Y),
		Z: max(aabb.Max.Z, point.Z),
	}
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties prefer the later axis.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}
