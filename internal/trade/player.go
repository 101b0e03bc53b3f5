package trade

import (
	"errors"
	"fmt"
)

type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "D/ST"
)

var Positions = []Position{QB, RB, WR, TE, K, DST}

var (
	ErrInvalidPercentile = errors.New("percentile must be within [0, 1]")
	ErrUnknownPosition   = errors.New("unknown position")
)

func ParsePosition(s string) (Position, error) {
	switch s {
	case "QB":
		return QB, nil
	case "RB":
		return RB, nil
	case "WR":
		return WR, nil
	case "TE":
		return TE, nil
	case "K":
		return K, nil
	case "D/ST", "DST", "DEF":
		return DST, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// Player is an immutable ranked player. Two players with the same name and
// position are the same player.
type Player struct {
	Name            string
	Position        Position
	Percentile      float64
	ProjectedPoints float64
	ProTeam         string
}

func NewPlayer(name string, pos Position, percentile float64) (Player, error) {
	if percentile < 0 || percentile > 1 || percentile != percentile {
		return Player{}, fmt.Errorf("%w: %s (%s) has %v", ErrInvalidPercentile, name, pos, percentile)
	}
	return Player{Name: name, Position: pos, Percentile: percentile}, nil
}

// WithProjection returns a copy of p carrying projected points.
func (p Player) WithProjection(points float64) Player {
	p.ProjectedPoints = points
	return p
}

type PlayerKey struct {
	Name     string
	Position Position
}

func (p Player) Key() PlayerKey {
	return PlayerKey{Name: p.Name, Position: p.Position}
}

func (p Player) Same(other Player) bool {
	return p.Key() == other.Key()
}

func (p Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Position)
}
