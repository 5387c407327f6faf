package models

import "fmt"

// Result представляет исход партии, соответствует CHECK constraint в БД.
type Result string

const (
	ResultUnplayed Result = "UNPLAYED"
	ResultPlayer1  Result = "PLAYER1"
	ResultPlayer2  Result = "PLAYER2"
	ResultDraw     Result = "DRAW"
	ResultBye      Result = "BYE"
)

var resultValues = map[Result]struct{}{
	ResultUnplayed: {},
	ResultPlayer1:  {},
	ResultPlayer2:  {},
	ResultDraw:     {},
	ResultBye:      {},
}

// ParseResult validates a raw result value against the closed enum.
func ParseResult(raw string) (Result, error) {
	r := Result(raw)
	if _, ok := resultValues[r]; !ok {
		return "", fmt.Errorf("unknown result value %q", raw)
	}
	return r, nil
}

// Decided reports whether the result counts as resolved for round
// generation purposes. A bye is resolved by definition.
func (r Result) Decided() bool {
	return r != ResultUnplayed
}
