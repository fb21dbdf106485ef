// Package solver implements the human-style technique ladder with its
// recursive-search fallback, plus the hint API and SE/difficulty rating
// built on top of it.
package solver

// Technique identifies one rung of the solving ladder, totally ordered by
// its SE rating.
type Technique int

const (
	TechniqueNone Technique = iota
	HiddenSingle
	NakedSingle
	PointingPair
	BoxLineReduction
	NakedPair
	XWing
	HiddenPair
	NakedTriple
	HiddenTriple
	NakedQuad
	HiddenQuad
	EmptyRectangle
	Swordfish
	XYWing
	XYZWing
	WWing
	WXYZWing
	SimpleColoring
	Jellyfish
	FinnedFish
	UniqueRectangleType1
	UniqueRectangleType2
	UniqueRectangleType3
	UniqueRectangleType4
	UniqueRectangleType5
	UniqueRectangleType6
	HiddenRectangle
	AvoidableRectangle
	ExtendedUniqueRectangle
	SiameseFish
	BUGPlusOne
	ThreeDMedusa
	XChain
	ALSXZ
	FrankenFish
	MutantFish
	ALSXYWing
	AIC
	SueDeCoq
	AlignedPairExclusion
	ALSChain
	AlignedTripleExclusion
	DeathBlossom
	KrakenFish
	NishioForcingChain
	CellForcingChain
	RegionForcingChain
	DynamicForcingChain
	Backtracking
)

// seRating is the fixed SE (Sudoku-Explainer) table the difficulty tiers
// key off. Retuning any entry shifts RateSE for every puzzle, so the
// values stay as they are.
var seRating = map[Technique]float64{
	HiddenSingle:            1.5,
	NakedSingle:             2.3,
	PointingPair:            2.6,
	BoxLineReduction:        2.8,
	NakedPair:               3.0,
	XWing:                   3.2,
	HiddenPair:              3.4,
	NakedTriple:             3.6,
	HiddenTriple:            3.7,
	EmptyRectangle:          3.8,
	NakedQuad:               3.9,
	HiddenQuad:              4.0,
	Swordfish:               4.0,
	XYWing:                  4.2,
	XYZWing:                 4.4,
	WWing:                   4.4,
	UniqueRectangleType1:    4.5,
	UniqueRectangleType2:    4.5,
	HiddenRectangle:         4.6,
	AvoidableRectangle:      4.6,
	UniqueRectangleType5:    4.6,
	UniqueRectangleType3:    4.7,
	UniqueRectangleType6:    4.7,
	UniqueRectangleType4:    4.8,
	ExtendedUniqueRectangle: 4.8,
	WXYZWing:                4.8,
	SimpleColoring:          4.9,
	ThreeDMedusa:            5.0,
	Jellyfish:               5.2,
	FinnedFish:              5.3,
	SiameseFish:             5.4,
	ALSXZ:                   5.5,
	BUGPlusOne:              5.6,
	FrankenFish:             5.8,
	XChain:                  6.0,
	AIC:                     6.0,
	SueDeCoq:                6.2,
	AlignedPairExclusion:    6.2,
	MutantFish:              6.5,
	ALSXYWing:               7.0,
	ALSChain:                7.5,
	AlignedTripleExclusion:  7.8,
	DeathBlossom:            8.0,
	KrakenFish:              8.2,
	NishioForcingChain:      8.5,
	CellForcingChain:        8.8,
	RegionForcingChain:      9.0,
	DynamicForcingChain:     9.3,
	Backtracking:            11.0,
}

// SERating returns t's Sudoku-Explainer rating.
func SERating(t Technique) float64 {
	if r, ok := seRating[t]; ok {
		return r
	}
	return 0
}

// String returns the technique's display name.
func (t Technique) String() string {
	if name, ok := techniqueNames[t]; ok {
		return name
	}
	return "unknown"
}

var techniqueNames = map[Technique]string{
	TechniqueNone:           "none",
	HiddenSingle:            "hidden-single",
	NakedSingle:             "naked-single",
	PointingPair:            "pointing-pair",
	BoxLineReduction:        "box-line-reduction",
	NakedPair:               "naked-pair",
	XWing:                   "x-wing",
	HiddenPair:              "hidden-pair",
	NakedTriple:             "naked-triple",
	HiddenTriple:            "hidden-triple",
	NakedQuad:               "naked-quad",
	HiddenQuad:              "hidden-quad",
	EmptyRectangle:          "empty-rectangle",
	Swordfish:               "swordfish",
	XYWing:                  "xy-wing",
	XYZWing:                 "xyz-wing",
	WWing:                   "w-wing",
	WXYZWing:                "wxyz-wing",
	SimpleColoring:          "simple-coloring",
	Jellyfish:               "jellyfish",
	FinnedFish:              "finned-fish",
	SiameseFish:             "siamese-fish",
	UniqueRectangleType1:    "unique-rectangle-type-1",
	UniqueRectangleType2:    "unique-rectangle-type-2",
	UniqueRectangleType3:    "unique-rectangle-type-3",
	UniqueRectangleType4:    "unique-rectangle-type-4",
	UniqueRectangleType5:    "unique-rectangle-type-5",
	UniqueRectangleType6:    "unique-rectangle-type-6",
	HiddenRectangle:         "hidden-rectangle",
	AvoidableRectangle:      "avoidable-rectangle",
	ExtendedUniqueRectangle: "extended-unique-rectangle",
	BUGPlusOne:              "bug-plus-one",
	ThreeDMedusa:            "3d-medusa",
	XChain:                  "x-chain",
	ALSXZ:                   "als-xz",
	FrankenFish:             "franken-fish",
	MutantFish:              "mutant-fish",
	ALSXYWing:               "als-xy-wing",
	AIC:                     "aic",
	SueDeCoq:                "sue-de-coq",
	AlignedPairExclusion:    "aligned-pair-exclusion",
	ALSChain:                "als-chain",
	AlignedTripleExclusion:  "aligned-triple-exclusion",
	DeathBlossom:            "death-blossom",
	KrakenFish:              "kraken-fish",
	NishioForcingChain:      "nishio-forcing-chain",
	CellForcingChain:        "cell-forcing-chain",
	RegionForcingChain:      "region-forcing-chain",
	DynamicForcingChain:     "dynamic-forcing-chain",
	Backtracking:            "backtracking",
}

// Difficulty is one of the eight puzzle difficulty tiers.
type Difficulty int

const (
	Beginner Difficulty = iota
	Easy
	Medium
	Intermediate
	Hard
	Expert
	Master
	Extreme
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Intermediate:
		return "Intermediate"
	case Hard:
		return "Hard"
	case Expert:
		return "Expert"
	case Master:
		return "Master"
	case Extreme:
		return "Extreme"
	default:
		return "unknown"
	}
}

// Letter returns the PuzzleId tier letter for d.
func (d Difficulty) Letter() byte {
	return "BEMIHXSZ"[d]
}

// DifficultyFromLetter decodes a PuzzleId tier letter (case-insensitive).
func DifficultyFromLetter(letter byte) (Difficulty, bool) {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	for i, l := range []byte("BEMIHXSZ") {
		if l == letter {
			return Difficulty(i), true
		}
	}
	return 0, false
}

// seRange is [min, max) except for Extreme, which is closed at 11.0.
type seRange struct{ min, max float64 }

var difficultyRanges = map[Difficulty]seRange{
	Beginner:     {1.5, 2.0},
	Easy:         {2.0, 2.5},
	Medium:       {2.5, 3.4},
	Intermediate: {3.4, 3.8},
	Hard:         {3.8, 4.5},
	Expert:       {4.5, 5.5},
	Master:       {5.5, 7.0},
	Extreme:      {7.0, 11.0},
}

// DifficultyForSE maps an SE rating to its tier.
func DifficultyForSE(se float64) Difficulty {
	for d := Beginner; d <= Extreme; d++ {
		r := difficultyRanges[d]
		if d == Extreme {
			if se >= r.min && se <= r.max {
				return d
			}
			continue
		}
		if se >= r.min && se < r.max {
			return d
		}
	}
	if se < difficultyRanges[Beginner].min {
		return Beginner
	}
	return Extreme
}

// SERangeFor returns the [min, max] SE window for d, and its midpoint.
func SERangeFor(d Difficulty) (min, max, mid float64) {
	r := difficultyRanges[d]
	return r.min, r.max, (r.min + r.max) / 2
}

// DifficultyForTechnique maps the hardest technique used to a tier, with
// the Beginner/Easy empty-count adjustment.
func DifficultyForTechnique(hardest Technique, emptyCount int) Difficulty {
	d := DifficultyForSE(SERating(hardest))
	if d == Easy && hardest == NakedSingle && emptyCount <= 40 {
		return Beginner
	}
	return d
}
