package puzzleid_test

import (
	"strings"
	"testing"

	"github.com/kvanta/ukodus-core/internal/puzzleid"
	"github.com/kvanta/ukodus-core/internal/solver"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	id := puzzleid.ID{Difficulty: solver.Hard, Seed: 123456}
	code := puzzleid.Encode(id)
	if len(code) != 8 {
		t.Fatalf("expected an 8-character code, got %q", code)
	}
	got, err := puzzleid.Decode(code)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != id {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, id)
	}
}

func TestDecodeIsCaseInsensitive(t *testing.T) {
	code := puzzleid.Encode(puzzleid.ID{Difficulty: solver.Extreme, Seed: 99})
	lower, err := puzzleid.Decode(strings.ToLower(code))
	if err != nil {
		t.Fatalf("Decode(lower) failed: %v", err)
	}
	upper, err := puzzleid.Decode(code)
	if err != nil {
		t.Fatalf("Decode(upper) failed: %v", err)
	}
	if lower != upper {
		t.Errorf("case should not affect decoding: %+v vs %+v", lower, upper)
	}
}

func TestDecodeRejectsBadLength(t *testing.T) {
	if _, err := puzzleid.Decode("SHORT"); err != puzzleid.ErrInvalidCode {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}

func TestDecodeRejectsBadLetter(t *testing.T) {
	if _, err := puzzleid.Decode("Q0000000"); err != puzzleid.ErrInvalidCode {
		t.Errorf("expected ErrInvalidCode for an unknown tier letter, got %v", err)
	}
}

func TestEncodeWrapsLargeSeeds(t *testing.T) {
	id := puzzleid.ID{Difficulty: solver.Beginner, Seed: ^uint64(0)}
	code := puzzleid.Encode(id)
	if _, err := puzzleid.Decode(code); err != nil {
		t.Errorf("encoded code for a huge seed should still decode: %v", err)
	}
}

func TestGenerateIsDeterministicPerID(t *testing.T) {
	id := puzzleid.ID{Difficulty: solver.Easy, Seed: 4242}
	first, err := id.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := id.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.Grid.String() != second.Grid.String() {
		t.Errorf("same ID produced different puzzles:\n%s\nvs\n%s", first.Grid.String(), second.Grid.String())
	}
	if !solver.HasUniqueSolution(first.Grid) {
		t.Error("generated puzzle is not uniquely solvable")
	}
}
