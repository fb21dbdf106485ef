// Package puzzleid implements the compact (Difficulty, Seed) puzzle
// identifier: a tier letter followed by seven base-36 digits, deterministic
// and reversible.
package puzzleid

import (
	"errors"
	"strings"

	"github.com/kvanta/ukodus-core/internal/generator"
	"github.com/kvanta/ukodus-core/internal/solver"
)

const (
	base       = 36
	seedDigits = 7
)

// seedCap is 36^seedDigits, the modulus Encode reduces a seed by so it
// always fits in seedDigits base-36 digits.
var seedCap uint64

func init() {
	c := uint64(1)
	for i := 0; i < seedDigits; i++ {
		c *= base
	}
	seedCap = c
}

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrInvalidCode is returned by Decode for malformed or out-of-range codes.
var ErrInvalidCode = errors.New("puzzleid: invalid code")

// ID is the decoded form of an 8-character puzzle code.
type ID struct {
	Difficulty solver.Difficulty
	Seed       uint64
}

// Encode renders id as an 8-character code: one tier letter followed by
// seven base-36 digits encoding Seed mod 36^7.
func Encode(id ID) string {
	var sb strings.Builder
	sb.WriteByte(id.Difficulty.Letter())
	n := id.Seed % seedCap
	digits := make([]byte, seedDigits)
	for i := seedDigits - 1; i >= 0; i-- {
		digits[i] = alphabet[n%base]
		n /= base
	}
	sb.Write(digits)
	return sb.String()
}

// Decode parses an 8-character code back into an ID. Decoding is
// case-insensitive; any other length or invalid character fails with
// ErrInvalidCode.
func Decode(code string) (ID, error) {
	if len(code) != 1+seedDigits {
		return ID{}, ErrInvalidCode
	}
	d, ok := solver.DifficultyFromLetter(code[0])
	if !ok {
		return ID{}, ErrInvalidCode
	}
	var seed uint64
	for i := 1; i < len(code); i++ {
		v, ok := digitValue(code[i])
		if !ok {
			return ID{}, ErrInvalidCode
		}
		seed = seed*base + uint64(v)
	}
	return ID{Difficulty: d, Seed: seed}, nil
}

// Generate seeds a Generator with id.Seed and produces the puzzle for
// id.Difficulty. Equal (Difficulty, Seed) pairs always reproduce the
// same puzzle.
func (id ID) Generate() (generator.Puzzle, error) {
	cfg := generator.Preset(id.Difficulty, id.Seed)
	return generator.Generate(cfg)
}

func digitValue(ch byte) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 10, true
	case ch >= 'a' && ch <= 'z':
		return int(ch-'a') + 10, true
	default:
		return 0, false
	}
}
