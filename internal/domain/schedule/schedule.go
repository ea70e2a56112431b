package schedule

import (
	"math"

	"resource-hub/internal/pkg/date"
)

// WindowDays is the forward-looking horizon used for utilization.
const WindowDays = 90

// Span is an inclusive date range.
type Span struct {
	Start date.Date
	End   date.Date
}

func NewSpan(start, end date.Date) Span {
	return Span{Start: start, End: end}
}

func (s Span) Valid() bool {
	return !s.Start.IsZero() && !s.End.IsZero() && !s.End.Before(s.Start)
}

// Days is the number of calendar days the span covers, inclusive of both ends.
func (s Span) Days() int {
	if !s.Valid() {
		return 0
	}
	return s.Start.DaysUntil(s.End) + 1
}

// Intersects reports inclusive-bounds interval overlap: the spans share at
// least one calendar day.
func (s Span) Intersects(o Span) bool {
	if !s.Valid() || !o.Valid() {
		return false
	}
	return !s.End.Before(o.Start) && !s.Start.After(o.End)
}

// OverlapDays counts the days of s that fall inside o, inclusive. Zero when
// the spans are disjoint.
func (s Span) OverlapDays(o Span) int {
	if !s.Intersects(o) {
		return 0
	}
	start := date.Max(s.Start, o.Start)
	end := date.Min(s.End, o.End)
	n := start.DaysUntil(end) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Window returns the utilization window [asOf, asOf+WindowDays].
func Window(asOf date.Date) Span {
	return Span{Start: asOf, End: asOf.AddDays(WindowDays)}
}

// AssignedDays sums, across all spans, the days each span overlaps the
// utilization window starting at asOf. Concurrent spans are counted
// additively: two assignments covering the same day contribute two days.
func AssignedDays(asOf date.Date, spans []Span) int {
	win := Window(asOf)
	total := 0
	for _, s := range spans {
		total += s.OverlapDays(win)
	}
	return total
}

// UtilizationPercent converts assigned days in the 90-day window into a
// percentage, rounded and capped at 100.
func UtilizationPercent(asOf date.Date, spans []Span) int {
	days := AssignedDays(asOf, spans)
	pct := math.Round(float64(days) / WindowDays * 100)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// HasConflict reports whether candidate intersects any of the spans. Callers
// pass only spans belonging to other projects; same-project duplication is
// prevented by the (project, personnel) uniqueness constraint instead.
func HasConflict(candidate Span, others []Span) bool {
	for _, s := range others {
		if candidate.Intersects(s) {
			return true
		}
	}
	return false
}
