package grading

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCGPAScenario(t *testing.T) {
	res := ComputeCGPA([]Row{{Grade: A, Unit: 3}, {Grade: B, Unit: 4}, {Grade: F, Unit: 2}})

	assert.Equal(t, 31.0, res.TotalPoints)
	assert.Equal(t, 9, res.TotalUnits)
	assert.Equal(t, 31.0/9.0, res.CGPA)
	assert.Equal(t, "3.44", Format(res.CGPA))
}

func TestComputeCGPAZeroUnits(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
	}{
		{name: "nil", rows: nil},
		{name: "empty", rows: []Row{}},
		{name: "zero unit rows", rows: []Row{{Grade: A, Unit: 0}, {Grade: B, Unit: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeCGPA(tt.rows)
			assert.Equal(t, 0.0, res.CGPA)
			assert.Equal(t, 0, res.TotalUnits)
		})
	}
}

func TestComputeCGPAUnknownLetterEarnsZero(t *testing.T) {
	res := ComputeCGPA([]Row{{Grade: "X", Unit: 3}, {Grade: A, Unit: 3}})

	assert.Equal(t, 15.0, res.TotalPoints)
	assert.Equal(t, 6, res.TotalUnits)
	assert.Equal(t, 2.5, res.CGPA)
}

func TestComputeCGPAOrderIndependent(t *testing.T) {
	letters := []Letter{A, B, C, D, E, F, "Z"}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		rows := make([]Row, 1+rng.Intn(12))
		for j := range rows {
			rows[j] = Row{Grade: letters[rng.Intn(len(letters))], Unit: 1 + rng.Intn(6)}
		}
		want := ComputeCGPA(rows)

		shuffled := append([]Row(nil), rows...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := ComputeCGPA(shuffled)

		assert.Equal(t, want.TotalPoints, got.TotalPoints)
		assert.Equal(t, want.TotalUnits, got.TotalUnits)
		assert.Equal(t, want.CGPA, got.CGPA)
		assert.Equal(t, got.TotalPoints/float64(got.TotalUnits), got.CGPA)
	}
}

func TestPointsTable(t *testing.T) {
	assert.Equal(t, 5.0, Points(A))
	assert.Equal(t, 4.0, Points(B))
	assert.Equal(t, 3.0, Points(C))
	assert.Equal(t, 2.0, Points(D))
	assert.Equal(t, 1.0, Points(E))
	assert.Equal(t, 0.0, Points(F))
	assert.Equal(t, 0.0, Points(""))
}

func TestParseLetter(t *testing.T) {
	assert.Equal(t, B, ParseLetter(" b "))
	assert.True(t, ParseLetter("a").Known())
	assert.False(t, ParseLetter("P").Known())
}

func TestRoundForDisplay(t *testing.T) {
	assert.Equal(t, 3.44, RoundForDisplay(31.0/9.0))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "5.00", Format(5))
}

func TestColor(t *testing.T) {
	assert.Equal(t, RGB{R: 0, G: 128, B: 0}, Color(A))
	assert.Equal(t, RGB{R: 204, G: 0, B: 0}, Color(F))
	assert.Equal(t, unknownColor, Color("Q"))
}
