package interp

import (
	"fmt"
	"iter"
	"math"
)

// SwitchEvent is a jump of a piecewise-constant control.
type SwitchEvent struct {
	Time float64
	From float64
	To   float64
}

// BangBang is a control that alternates between two constant levels.
type BangBang struct {
	name      string
	low, high float64
	runs      []Segment
	events    []SwitchEvent
	closed    bool
}

// DetectBangBang clusters the step's segment levels within levelTolerance.
// Exactly two clusters classify the control as bang-bang; adjacent segments
// in the same cluster merge, so the result alternates between the levels.
// A non-positive levelTolerance falls back to the step's switch tolerance.
// The point segment at t[0] carries no duration and takes no part, so the
// first run is open at t[0] when it is dropped.
func DetectBangBang(s *Step, levelTolerance float64) (*BangBang, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil step", ErrInvalidInput)
	}
	if levelTolerance <= 0 {
		levelTolerance = s.tolerance
	}

	type cluster struct {
		first float64
		sum   float64
		count int
	}
	segs := s.Segments()
	closedStart := true
	if len(segs) > 1 && segs[0].Start == segs[0].End {
		segs = segs[1:]
		closedStart = false
	}
	var clusters []cluster
	owner := make([]int, len(segs))
	for i, seg := range segs {
		k := -1
		for j := range clusters {
			if math.Abs(seg.Level-clusters[j].first) <= levelTolerance {
				k = j
				break
			}
		}
		if k < 0 {
			clusters = append(clusters, cluster{first: seg.Level})
			k = len(clusters) - 1
		}
		clusters[k].sum += seg.Level
		clusters[k].count++
		owner[i] = k
	}
	if len(clusters) != 2 {
		return nil, fmt.Errorf("%w: %s has %d distinct levels", ErrNotBangBang, s.name, len(clusters))
	}

	levels := [2]float64{
		clusters[0].sum / float64(clusters[0].count),
		clusters[1].sum / float64(clusters[1].count),
	}

	runs := make([]Segment, 0, len(segs))
	runOwner := make([]int, 0, len(segs))
	for i, seg := range segs {
		if n := len(runs); n > 0 && runOwner[n-1] == owner[i] {
			runs[n-1].End = seg.End
			continue
		}
		runs = append(runs, Segment{Start: seg.Start, End: seg.End, Level: levels[owner[i]]})
		runOwner = append(runOwner, owner[i])
	}

	events := make([]SwitchEvent, 0, len(runs)-1)
	for i := 1; i < len(runs); i++ {
		events = append(events, SwitchEvent{
			Time: runs[i-1].End,
			From: runs[i-1].Level,
			To:   runs[i].Level,
		})
	}

	return &BangBang{
		name:   s.name,
		low:    math.Min(levels[0], levels[1]),
		high:   math.Max(levels[0], levels[1]),
		runs:   runs,
		events: events,
		closed: closedStart,
	}, nil
}

func (b *BangBang) Name() string { return b.name }

func (b *BangBang) Low() float64 { return b.low }

func (b *BangBang) High() float64 { return b.high }

func (b *BangBang) Len() int { return len(b.events) }

// Events returns a copy of the ordered switch events.
func (b *BangBang) Events() []SwitchEvent {
	out := make([]SwitchEvent, len(b.events))
	copy(out, b.events)
	return out
}

// All yields the switch events in order. Every range over it starts again
// from the first event.
func (b *BangBang) All() iter.Seq[SwitchEvent] {
	return func(yield func(SwitchEvent) bool) {
		for _, e := range b.events {
			if !yield(e) {
				return
			}
		}
	}
}

func (b *BangBang) Switches() []float64 {
	out := make([]float64, len(b.events))
	for i, e := range b.events {
		out[i] = e.Time
	}
	return out
}

// Runs returns the alternating constant intervals.
func (b *BangBang) Runs() []Segment {
	out := make([]Segment, len(b.runs))
	copy(out, b.runs)
	return out
}

func (b *BangBang) LaTeX(name string) string {
	if name == "" {
		name = b.name
	}
	return renderCases(name, b.runs, b.closed)
}
