package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// HittableList is an ordered collection of hittables treated as one object.
//
// Every child is tested; there is no spatial pruning. When two children report
// exactly the same nearest t, the one added first wins because later hits must
// be strictly closer to replace it.
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Clear removes every object from the list
func (l *HittableList) Clear() {
	l.Objects = nil
}

// Len returns the number of direct children
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit across all children within rayT
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		hit, isHit := object.Hit(ray, rayT.WithMax(closestSoFar))
		if !isHit || math.IsNaN(hit.T) {
			continue
		}
		closestSoFar = hit.T
		closestHit = hit
	}

	return closestHit, closestHit != nil
}
