package models

// Course is a catalog entry. ID is the course code, e.g. CSC101.
type Course struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Unit int    `json:"unit" db:"unit"`
}
