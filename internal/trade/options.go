package trade

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Slot string

const (
	SlotFlex  Slot = "FLEX"
	SlotBench Slot = "Bench"
)

// Known reports whether players can ever fill s: a roster position or FLEX.
func (s Slot) Known() bool {
	return s == SlotFlex || slices.Contains(Positions, Position(s))
}

// ParseSlot accepts FLEX or any spelling ParsePosition accepts.
func ParseSlot(s string) (Slot, error) {
	if strings.EqualFold(s, string(SlotFlex)) {
		return SlotFlex, nil
	}
	pos, err := ParsePosition(s)
	if err != nil {
		return "", err
	}
	return Slot(pos), nil
}

// SlotCapacities maps a starting slot to the number of players it holds.
// Bench is never listed; it takes the remainder.
type SlotCapacities map[Slot]int

func DefaultSlotCapacities() SlotCapacities {
	return SlotCapacities{
		Slot(QB):  1,
		Slot(RB):  2,
		Slot(WR):  2,
		Slot(TE):  1,
		Slot(DST): 1,
		Slot(K):   1,
		SlotFlex:  1,
	}
}

var FlexPositions = []Position{RB, WR, TE}

type EdgePolicy string

const (
	// EdgeTolerate lets the counterparty lose up to the edge.
	EdgeTolerate EdgePolicy = "tolerate"
	// EdgeBothGain requires the counterparty to gain at least the edge.
	EdgeBothGain EdgePolicy = "both-gain"
)

type SearchOptions struct {
	Temperature           float64
	ExplorationSize       int
	SubstituteProbability float64
	SwapProbability       float64
	SwapCount             int
	EmptySlotProbability  float64
	MaxIterations         int
	Seed                  int64
}

// Options is the immutable tuning for one engine run.
type Options struct {
	Slots               SlotCapacities
	MaxTradeSize        int
	MaxTradeEdge        float64
	EdgePolicy          EdgePolicy
	CheckFreeAgents     bool
	MaxRosterSize       int
	OpponentBenchWeight float64
	Search              SearchOptions
}

func DefaultOptions() Options {
	return Options{
		Slots:         DefaultSlotCapacities(),
		MaxTradeSize:  3,
		MaxTradeEdge:  0.05,
		EdgePolicy:    EdgeTolerate,
		MaxRosterSize: 16,
		Search: SearchOptions{
			Temperature:           1,
			ExplorationSize:       5,
			SubstituteProbability: 0.5,
			SwapProbability:       0.3,
			SwapCount:             1,
			EmptySlotProbability:  0.3,
		},
	}
}

func (o Options) Validate() error {
	var errs []error
	if o.MaxTradeSize < 2 {
		errs = append(errs, fmt.Errorf("max trade size must be at least 2, got %d", o.MaxTradeSize))
	}
	if o.MaxTradeEdge < 0 || o.MaxTradeEdge >= 1 {
		errs = append(errs, fmt.Errorf("max trade edge must be within [0, 1), got %v", o.MaxTradeEdge))
	}
	switch o.EdgePolicy {
	case EdgeTolerate, EdgeBothGain:
	default:
		errs = append(errs, fmt.Errorf("unknown edge policy %q", o.EdgePolicy))
	}
	if o.MaxRosterSize < 0 {
		errs = append(errs, fmt.Errorf("max roster size must not be negative, got %d", o.MaxRosterSize))
	}
	for slot, n := range o.Slots {
		if slot == SlotBench {
			errs = append(errs, errors.New("bench capacity is implicit and must not be configured"))
		} else if !slot.Known() {
			errs = append(errs, fmt.Errorf("unknown lineup slot %q", slot))
		}
		if n < 0 {
			errs = append(errs, fmt.Errorf("slot %s has negative capacity %d", slot, n))
		}
	}
	s := o.Search
	if s.ExplorationSize < 1 {
		errs = append(errs, fmt.Errorf("exploration size must be at least 1, got %d", s.ExplorationSize))
	}
	for name, p := range map[string]float64{
		"substitute": s.SubstituteProbability,
		"swap":       s.SwapProbability,
		"empty slot": s.EmptySlotProbability,
	} {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s probability must be within [0, 1], got %v", name, p))
		}
	}
	if s.Temperature < 0 {
		errs = append(errs, fmt.Errorf("temperature must not be negative, got %v", s.Temperature))
	}
	return errors.Join(errs...)
}
