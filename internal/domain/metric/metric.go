// Package metric defines the closed enumerations used by the analytics core:
// the tracked per-match metrics, their classification tiers, and the derived
// coaching verdict. Keeping these as typed constants lets the rule engine
// switch over them exhaustively.
package metric

import "fmt"

// Kind identifies one tracked per-match metric.
type Kind int

// The ten tracked metrics.
const (
	FirstServeIn Kind = iota
	FirstServePointsWon
	SecondServePointsWon
	UnforcedErrorsForehand
	UnforcedErrorsBackhand
	Winners
	BreakPointConversion
	BreakPointsSaved
	NetPointsWon
	LongRallyWinRate
)

var kindNames = [...]string{
	FirstServeIn:           "FIRST_SERVE_IN",
	FirstServePointsWon:    "FIRST_SERVE_POINTS_WON",
	SecondServePointsWon:   "SECOND_SERVE_POINTS_WON",
	UnforcedErrorsForehand: "UNFORCED_ERRORS_FOREHAND",
	UnforcedErrorsBackhand: "UNFORCED_ERRORS_BACKHAND",
	Winners:                "WINNERS",
	BreakPointConversion:   "BREAK_POINT_CONVERSION",
	BreakPointsSaved:       "BREAK_POINTS_SAVED",
	NetPointsWon:           "NET_POINTS_WON",
	LongRallyWinRate:       "LONG_RALLY_WIN_RATE",
}

// Kinds returns all metric kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// String returns the wire name of the metric.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a wire name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric kind: %q", s)
}

// MarshalText implements encoding.TextMarshaler so Kind can key JSON maps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Status is the classification tier assigned to a single metric value.
// Ordering matters: Critical < Warning < Good < Excellent.
type Status int

const (
	StatusCritical Status = iota
	StatusWarning
	StatusGood
	StatusExcellent
)

var statusNames = [...]string{
	StatusCritical:  "CRITICAL",
	StatusWarning:   "WARNING",
	StatusGood:      "GOOD",
	StatusExcellent: "EXCELLENT",
}

// String returns the wire name of the status.
func (s Status) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown metric status: %q", string(b))
}

// Score maps a status to the numeric value used by performance rankings.
func (s Status) Score() int {
	switch s {
	case StatusExcellent:
		return 3
	case StatusGood:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// CoachingStatus is the aggregate verdict derived from all classified
// metrics of a single analytics record.
type CoachingStatus int

const (
	OnTrack CoachingStatus = iota
	NeedsFocus
	AtRisk
)

var coachingNames = [...]string{
	OnTrack:    "ON_TRACK",
	NeedsFocus: "NEEDS_FOCUS",
	AtRisk:     "AT_RISK",
}

// String returns the wire name of the coaching status.
func (c CoachingStatus) String() string {
	if int(c) < 0 || int(c) >= len(coachingNames) {
		return fmt.Sprintf("CoachingStatus(%d)", int(c))
	}
	return coachingNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c CoachingStatus) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CoachingStatus) UnmarshalText(b []byte) error {
	for i, name := range coachingNames {
		if name == string(b) {
			*c = CoachingStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown coaching status: %q", string(b))
}
