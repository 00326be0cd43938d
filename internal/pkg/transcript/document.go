// Package transcript assembles a student's graded course records into a
// transcript document and renders it as PDF.
package transcript

import (
	"time"

	"github.com/yigit/registrar/internal/pkg/grading"
)

// Student identifies the transcript holder.
type Student struct {
	Name         string
	Email        string
	MatricNumber string
	Department   string
	Level        string
}

// Row is one graded course line.
type Row struct {
	CourseCode string
	CourseName string
	Unit       int
	Term       string
	Score      *float64
	Grade      grading.Letter
}

// TermSection holds the rows of a single term, in input order.
type TermSection struct {
	Term  string
	Rows  []Row
	Units int
}

// Summary is the academic summary printed at the foot of the record.
type Summary struct {
	TotalUnits  int
	TotalPoints float64
	// CGPA is unrounded; use CGPADisplay for presentation.
	CGPA float64
}

// CGPADisplay returns the CGPA rounded to two decimals.
func (s Summary) CGPADisplay() string {
	return grading.Format(s.CGPA)
}

// Document is a fully assembled transcript, independent of output format.
type Document struct {
	Institution   string
	RegistrarName string
	Disclaimer    string
	GeneratedAt   time.Time
	Student       Student
	Sections      []TermSection
	Summary       Summary
}

// Options controls assembly.
type Options struct {
	// TermOrder is an optional canonical ordering of terms. Terms it does not
	// name follow in the order they are first encountered.
	TermOrder     []string
	Institution   string
	RegistrarName string
	Disclaimer    string
	GeneratedAt   time.Time
}

// Build groups rows by term and computes the summary. Rows with no grade
// should already have been dropped by the caller.
func Build(student Student, rows []Row, opts Options) *Document {
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	doc := &Document{
		Institution:   opts.Institution,
		RegistrarName: opts.RegistrarName,
		Disclaimer:    opts.Disclaimer,
		GeneratedAt:   generatedAt,
		Student:       student,
		Sections:      groupByTerm(rows, opts.TermOrder),
	}

	gradeRows := make([]grading.Row, 0, len(rows))
	for _, r := range rows {
		gradeRows = append(gradeRows, grading.Row{Grade: r.Grade, Unit: r.Unit})
	}
	res := grading.ComputeCGPA(gradeRows)
	doc.Summary = Summary{
		TotalUnits:  res.TotalUnits,
		TotalPoints: res.TotalPoints,
		CGPA:        res.CGPA,
	}

	return doc
}

func groupByTerm(rows []Row, termOrder []string) []TermSection {
	index := make(map[string]int)
	var sections []TermSection

	for _, r := range rows {
		i, ok := index[r.Term]
		if !ok {
			i = len(sections)
			index[r.Term] = i
			sections = append(sections, TermSection{Term: r.Term})
		}
		sections[i].Rows = append(sections[i].Rows, r)
		sections[i].Units += r.Unit
	}

	if len(termOrder) == 0 {
		return sections
	}

	ordered := make([]TermSection, 0, len(sections))
	placed := make(map[string]bool, len(sections))
	for _, term := range termOrder {
		if i, ok := index[term]; ok && !placed[term] {
			ordered = append(ordered, sections[i])
			placed[term] = true
		}
	}
	for _, s := range sections {
		if !placed[s.Term] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
