package models

// OfferingMode says whether a departmental course is mandatory for the cohort
type OfferingMode string

const (
	ModeCompulsory OfferingMode = "COMPULSORY"
	ModeElective   OfferingMode = "ELECTIVE"
)

// Valid reports whether m is a known offering mode
func (m OfferingMode) Valid() bool {
	return m == ModeCompulsory || m == ModeElective
}
