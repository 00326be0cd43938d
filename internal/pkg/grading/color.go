package grading

// RGB is an 8-bit colour triple.
type RGB struct {
	R, G, B int
}

var gradeColors = map[Letter]RGB{
	A: {R: 0, G: 128, B: 0},
	B: {R: 0, G: 102, B: 204},
	C: {R: 204, G: 153, B: 0},
	D: {R: 230, G: 115, B: 0},
	E: {R: 204, G: 51, B: 0},
	F: {R: 204, G: 0, B: 0},
}

// Unknown grades are drawn in grey.
var unknownColor = RGB{R: 128, G: 128, B: 128}

// Color returns the display colour for a grade. It carries no meaning beyond
// presentation.
func Color(l Letter) RGB {
	if c, ok := gradeColors[l]; ok {
		return c
	}
	return unknownColor
}
