package ageinterval

import (
	"fmt"
	"slices"
)

// Interval is a half-open age range [Low, High). The last interval of a set is Unbounded.
type Interval struct {
	Low       int
	High      int
	Unbounded bool
}

// Contains reports whether age falls within the interval
func (i Interval) Contains(age int) bool {
	if age < i.Low {
		return false
	}
	return i.Unbounded || age < i.High
}

// Label formats the interval as "[low,high)" or "[low,+)" for the unbounded one
func (i Interval) Label() string {
	if i.Unbounded {
		return fmt.Sprintf("[%d,+)", i.Low)
	}
	return fmt.Sprintf("[%d,%d)", i.Low, i.High)
}

// Intervals is an ordered set of age breakpoints partitioning [0,+inf).
// 0 is always the first breakpoint; the zero value is a single interval [0,+).
type Intervals struct {
	breaks []int
}

// New creates an interval set from the given breakpoints
func New(breaks ...int) *Intervals {
	iv := &Intervals{}
	iv.Set(breaks...)
	return iv
}

// Set merges breakpoints into the set. Non-positive values are ignored since 0 is implicit.
func (iv *Intervals) Set(breaks ...int) {
	for _, b := range breaks {
		if b <= 0 {
			continue
		}
		idx, found := slices.BinarySearch(iv.breaks, b)
		if found {
			continue
		}
		iv.breaks = slices.Insert(iv.breaks, idx, b)
	}
}

// Breaks returns the positive breakpoints in ascending order
func (iv *Intervals) Breaks() []int {
	return slices.Clone(iv.breaks)
}

// Intervals returns every interval, lowest first
func (iv *Intervals) Intervals() []Interval {
	result := make([]Interval, 0, len(iv.breaks)+1)
	low := 0
	for _, b := range iv.breaks {
		result = append(result, Interval{Low: low, High: b})
		low = b
	}
	return append(result, Interval{Low: low, Unbounded: true})
}

// Labels returns the interval labels, lowest first
func (iv *Intervals) Labels() []string {
	intervals := iv.Intervals()
	labels := make([]string, len(intervals))
	for i, interval := range intervals {
		labels[i] = interval.Label()
	}
	return labels
}

// Classify returns the interval containing age. Negative ages belong to no interval.
func (iv *Intervals) Classify(age int) (Interval, bool) {
	if age < 0 {
		return Interval{}, false
	}
	// Number of breakpoints <= age selects the interval index
	idx, found := slices.BinarySearch(iv.breaks, age)
	if found {
		idx++
	}
	return iv.Intervals()[idx], true
}

// ByLabel finds the interval with the given label
func (iv *Intervals) ByLabel(label string) (Interval, bool) {
	for _, interval := range iv.Intervals() {
		if interval.Label() == label {
			return interval, true
		}
	}
	return Interval{}, false
}
