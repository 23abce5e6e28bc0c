// pkg/physics/collision.go
package physics

// Sphere represents a spherical collision shape
type Sphere struct {
	Center Vector3D
	Radius float64
}

// Intersects reports whether two spheres overlap or touch.
func (s Sphere) Intersects(other Sphere) bool {
	r := s.Radius + other.Radius
	return s.Center.DistanceSquared(other.Center) <= r*r
}

// Bounds returns the axis-aligned box enclosing the sphere.
func (s Sphere) Bounds() Box {
	d := s.Radius * 2
	return Box{Center: s.Center, Width: d, Height: d, Depth: d}
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector3D
	Penetration  float64
	ContactPoint Vector3D
}

// CheckCollision performs detailed collision detection between two spheres
func CheckCollision(a, b Sphere) CollisionResult {
	if !a.Intersects(b) {
		return CollisionResult{}
	}

	normal := b.Center.Sub(a.Center)
	distance := normal.Length()
	normal = normal.Normalize()

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center.Add(normal.Scale(a.Radius)),
	}
}

// Box represents an axis-aligned box given by its center and full extents
type Box struct {
	Center Vector3D
	Width  float64 // X extent
	Height float64 // Y extent
	Depth  float64 // Z extent
}

// Contains reports whether point lies inside the box. The lower faces are
// inclusive and the upper faces exclusive so octants never share a point.
func (b Box) Contains(point Vector3D) bool {
	return point.X >= b.Center.X-b.Width/2 &&
		point.X < b.Center.X+b.Width/2 &&
		point.Y >= b.Center.Y-b.Height/2 &&
		point.Y < b.Center.Y+b.Height/2 &&
		point.Z >= b.Center.Z-b.Depth/2 &&
		point.Z < b.Center.Z+b.Depth/2
}

// Intersects reports whether two boxes overlap (touching faces count).
func (b Box) Intersects(other Box) bool {
	return !(other.Center.X-other.Width/2 > b.Center.X+b.Width/2 ||
		other.Center.X+other.Width/2 < b.Center.X-b.Width/2 ||
		other.Center.Y-other.Height/2 > b.Center.Y+b.Height/2 ||
		other.Center.Y+other.Height/2 < b.Center.Y-b.Height/2 ||
		other.Center.Z-other.Depth/2 > b.Center.Z+b.Depth/2 ||
		other.Center.Z+other.Depth/2 < b.Center.Z-b.Depth/2)
}

// Expand returns the box grown by margin on every side.
func (b Box) Expand(margin float64) Box {
	return Box{
		Center: b.Center,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
		Depth:  b.Depth + 2*margin,
	}
}

// BoundingBox returns the smallest box containing every point, padded by
// margin so that the upper faces stay exclusive of the extreme points.
func BoundingBox(points []Vector3D, margin float64) Box {
	if len(points) == 0 {
		return Box{Width: 2 * margin, Height: 2 * margin, Depth: 2 * margin}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min.X, max.X = minf(min.X, p.X), maxf(max.X, p.X)
		min.Y, max.Y = minf(min.Y, p.Y), maxf(max.Y, p.Y)
		min.Z, max.Z = minf(min.Z, p.Z), maxf(max.Z, p.Z)
	}
	return Box{
		Center: min.Add(max).Scale(0.5),
		Width:  max.X - min.X,
		Height: max.Y - min.Y,
		Depth:  max.Z - min.Z,
	}.Expand(margin)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// maxOctreeDepth bounds subdivision when many points coincide.
const maxOctreeDepth = 8

// Octree for spatial partitioning
type Octree struct {
	Boundary Box
	Capacity int
	Points   []Vector3D
	Objects  []interface{}
	Divided  bool
	Children [8]*Octree
	depth    int
}

// NewOctree creates a new octree with the given boundary and capacity
func NewOctree(boundary Box, capacity int) *Octree {
	return newOctree(boundary, capacity, 0)
}

func newOctree(boundary Box, capacity, depth int) *Octree {
	if capacity < 1 {
		capacity = 1
	}
	return &Octree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector3D, 0, capacity),
		Objects:  make([]interface{}, 0, capacity),
		depth:    depth,
	}
}

// Insert stores object at point. It returns false when point lies outside
// the tree's boundary.
func (ot *Octree) Insert(point Vector3D, object interface{}) bool {
	if !ot.Boundary.Contains(point) {
		return false
	}

	if !ot.Divided && (len(ot.Points) < ot.Capacity || ot.depth >= maxOctreeDepth) {
		ot.keep(point, object)
		return true
	}

	if !ot.Divided {
		ot.Subdivide()
	}

	ot.push(point, object)
	return true
}

// push hands point to the child octant that contains it. Rounding where
// octant faces meet can leave a point inside this node but outside every
// child; such points stay here.
func (ot *Octree) push(point Vector3D, object interface{}) {
	for _, child := range ot.Children {
		if child.Insert(point, object) {
			return
		}
	}
	ot.keep(point, object)
}

func (ot *Octree) keep(point Vector3D, object interface{}) {
	ot.Points = append(ot.Points, point)
	ot.Objects = append(ot.Objects, object)
}

// Subdivide splits the node into eight octants and pushes its points down
func (ot *Octree) Subdivide() {
	c := ot.Boundary.Center
	w, h, d := ot.Boundary.Width/2, ot.Boundary.Height/2, ot.Boundary.Depth/2

	i := 0
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				octant := Box{
					Center: Vector3D{X: c.X + sx*w/2, Y: c.Y + sy*h/2, Z: c.Z + sz*d/2},
					Width:  w,
					Height: h,
					Depth:  d,
				}
				ot.Children[i] = newOctree(octant, ot.Capacity, ot.depth+1)
				i++
			}
		}
	}
	ot.Divided = true

	points, objects := ot.Points, ot.Objects
	ot.Points, ot.Objects = nil, nil
	for j, p := range points {
		ot.push(p, objects[j])
	}
}

// Query returns all objects whose point lies inside area
func (ot *Octree) Query(area Box) []interface{} {
	found := make([]interface{}, 0)
	return ot.query(area, found)
}

func (ot *Octree) query(area Box, found []interface{}) []interface{} {
	if !ot.Boundary.Intersects(area) {
		return found
	}

	for i, point := range ot.Points {
		if area.Contains(point) {
			found = append(found, ot.Objects[i])
		}
	}

	if !ot.Divided {
		return found
	}

	for _, child := range ot.Children {
		found = child.query(area, found)
	}
	return found
}
