package collision

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Candidate is a mover/asteroid pair that may intersect, given as indexes
// into the slices passed to BroadPhase.Candidates
type Candidate struct {
	Mover    int
	Asteroid int
}

// BroadPhase narrows the set of pairs the registry tests exactly. An
// implementation may return false positives but must not drop a pair whose
// spheres intersect.
type BroadPhase interface {
	Candidates(movers, asteroids []Body) []Candidate
}

// BruteForce pairs every mover with every asteroid
type BruteForce struct{}

// Candidates returns the full cross product
func (BruteForce) Candidates(movers, asteroids []Body) []Candidate {
	out := make([]Candidate, 0, len(movers)*len(asteroids))
	for i := range movers {
		for j := range asteroids {
			out = append(out, Candidate{Mover: i, Asteroid: j})
		}
	}
	return out
}

// OctreeBroadPhase indexes asteroid centers in an octree rebuilt every pass
// and queries it with each mover's bounds grown by the largest asteroid
// radius.
type OctreeBroadPhase struct {
	Capacity int
}

// NewOctreeBroadPhase creates an octree broad phase with the given node
// capacity
func NewOctreeBroadPhase(capacity int) *OctreeBroadPhase {
	return &OctreeBroadPhase{Capacity: capacity}
}

// Candidates returns pairs whose bounds overlap
func (o *OctreeBroadPhase) Candidates(movers, asteroids []Body) []Candidate {
	if len(movers) == 0 || len(asteroids) == 0 {
		return nil
	}

	centers := make([]physics.Vector3D, len(asteroids))
	maxRadius := 0.0
	for i, a := range asteroids {
		centers[i] = a.Center
		maxRadius = max(maxRadius, a.Radius)
	}

	tree := physics.NewOctree(physics.BoundingBox(centers, 1), o.Capacity)
	var unindexed []int
	for i, a := range asteroids {
		if !tree.Insert(a.Center, i) {
			unindexed = append(unindexed, i)
		}
	}

	out := make([]Candidate, 0)
	for i, m := range movers {
		area := m.Sphere().Bounds().Expand(maxRadius + 1e-9)
		for _, obj := range tree.Query(area) {
			out = append(out, Candidate{Mover: i, Asteroid: obj.(int)})
		}
		for _, j := range unindexed {
			out = append(out, Candidate{Mover: i, Asteroid: j})
		}
	}
	return out
}
