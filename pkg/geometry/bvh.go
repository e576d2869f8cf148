package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// ErrEmptyBVH is returned when a BVH is built from no objects
var ErrEmptyBVH = errors.New("bvh: no objects")

// BVHNode represents a node in the Bounding Volume Hierarchy.
// A leaf holds exactly one Object; an interior node holds two children.
// Nodes are immutable after construction and safe for concurrent queries.
type BVHNode struct {
	Box    core.AABB
	Left   *BVHNode
	Right  *BVHNode
	Object Hittable // Non-nil only for leaf nodes
}

// IsLeaf returns true if the node holds an object rather than children
func (n *BVHNode) IsLeaf() bool {
	return n.Object != nil
}

type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a BVH over objects for the shutter interval [time0, time1].
// Every object must report a bounding box; the input slice is not modified.
// random picks the split axis at each level.
func NewBVH(objects []Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("bvh: object %d (%T) has no bounding box", i, object)
		}
		if !box.IsValid() {
			return nil, fmt.Errorf("bvh: object %d (%T) has an invalid bounding box %v", i, object, box)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	return buildBVH(entries, random), nil
}

// buildBVH sorts the span by box minimum along a random axis and splits at the midpoint
func buildBVH(entries []bvhEntry, random *rand.Rand) *BVHNode {
	switch len(entries) {
	case 1:
		return &BVHNode{Box: entries[0].box, Object: entries[0].object}
	case 2:
		left := &BVHNode{Box: entries[0].box, Object: entries[0].object}
		right := &BVHNode{Box: entries[1].box, Object: entries[1].object}
		return &BVHNode{Box: left.Box.Union(right.Box), Left: left, Right: right}
	}

	axis := random.Intn(3)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].box.Min.Axis(axis) < entries[j].box.Min.Axis(axis)
	})

	mid := len(entries) / 2
	left := buildBVH(entries[:mid], random)
	right := buildBVH(entries[mid:], random)

	return &BVHNode{
		Box:   left.Box.Union(right.Box),
		Left:  left,
		Right: right,
	}
}

// Hit tests if a ray intersects any object in the BVH and returns the closest hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if n.IsLeaf() {
		return n.Object.Hit(ray, tMin, tMax, sampler)
	}

	// Both children are queried with the same tMax and the nearer hit wins
	leftHit, leftOk := n.Left.Hit(ray, tMin, tMax, sampler)
	rightHit, rightOk := n.Right.Hit(ray, tMin, tMax, sampler)

	switch {
	case leftOk && rightOk:
		if rightHit.T < leftHit.T {
			return rightHit, true
		}
		return leftHit, true
	case leftOk:
		return leftHit, true
	case rightOk:
		return rightHit, true
	}
	return nil, false
}

// BoundingBox returns the cached box; BVH nodes always have one
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if n.IsLeaf() {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}
	n.Left.collectStats(depth+1, stats)
	n.Right.collectStats(depth+1, stats)
}
