package solver

import "github.com/kvanta/ukodus-core/internal/position"

// Action is one concrete board change a Step makes: either placing a digit
// or eliminating candidates from one or more cells.
type Action struct {
	Place     bool
	Pos       position.Position
	Digit     int
	Eliminate []Elimination
}

// Elimination removes Digit from the candidates of Pos.
type Elimination struct {
	Pos   position.Position
	Digit int
}

// Step is one applied deduction: the technique that found it, the cells it
// examined ("highlights" for explanation UIs) and the Action it produced.
type Step struct {
	Technique  Technique
	Highlights []position.Position
	Action     Action
	Message    string
}

// Hint is the public result of GetHint: the next single deduction a solver
// would make, without committing it to the grid.
type Hint struct {
	Step       Step
	SERating   float64
	Difficulty Difficulty
}
