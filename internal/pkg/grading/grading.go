// Package grading turns letter grades into grade points and a unit-weighted
// cumulative grade point average.
package grading

import (
	"math"
	"strconv"
	"strings"
)

// Letter is a course letter grade.
type Letter string

const (
	A Letter = "A"
	B Letter = "B"
	C Letter = "C"
	D Letter = "D"
	E Letter = "E"
	F Letter = "F"
)

var points = map[Letter]float64{
	A: 5,
	B: 4,
	C: 3,
	D: 2,
	E: 1,
	F: 0,
}

// ParseLetter normalises a stored grade value.
func ParseLetter(s string) Letter {
	return Letter(strings.ToUpper(strings.TrimSpace(s)))
}

// Known reports whether l is in the grade point table.
func (l Letter) Known() bool {
	_, ok := points[l]
	return ok
}

// Points returns the grade points for l. Letters outside the table earn 0.
func Points(l Letter) float64 {
	return points[l]
}

// Row is one graded course. Ungraded courses must be filtered out before
// aggregation.
type Row struct {
	Grade Letter
	Unit  int
}

// Result is the outcome of ComputeCGPA.
type Result struct {
	CGPA        float64 `json:"cgpa"`
	TotalPoints float64 `json:"totalPoints"`
	TotalUnits  int     `json:"totalUnits"`
}

// ComputeCGPA sums unit-weighted points over rows. CGPA is exactly 0 when no
// units were attempted.
func ComputeCGPA(rows []Row) Result {
	var res Result
	for _, r := range rows {
		res.TotalPoints += Points(r.Grade) * float64(r.Unit)
		res.TotalUnits += r.Unit
	}
	if res.TotalUnits > 0 {
		res.CGPA = res.TotalPoints / float64(res.TotalUnits)
	}
	return res
}

// RoundForDisplay rounds v to two decimal places. Use the unrounded value for
// any further computation.
func RoundForDisplay(v float64) float64 {
	return math.Round(v*100) / 100
}

// Format renders v with two decimal places, e.g. "3.44".
func Format(v float64) string {
	return strconv.FormatFloat(RoundForDisplay(v), 'f', 2, 64)
}
