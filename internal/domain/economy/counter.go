package economy

import "github.com/dustin/go-humanize"

// Counter is a saturating integer clamped to [NegInf, PosInf]. A counter
// sitting at PosInf ignores further additions and one at NegInf ignores
// further subtraction below zero magnitude; everything else clamps at the
// bounds. The bounds render as infinity.
type Counter int64

const (
	PosInf Counter = 9_999_999_999_999
	NegInf Counter = -PosInf
)

// Add returns c + d under the saturation rules. A counter at the ceiling is
// immovable by addition regardless of d's sign. Deltas large enough to
// overflow int64 saturate at the bound they were heading for.
func (c Counter) Add(d int64) Counter {
	if c >= PosInf {
		return c
	}
	if d > 0 && d >= int64(PosInf)-int64(c) {
		return PosInf
	}
	if d < 0 && d <= int64(NegInf)-int64(c) {
		return NegInf
	}
	return clamp(c + Counter(d))
}

// Sub returns c - d under the saturation rules. A counter at the ceiling
// ignores positive subtraction and one at the floor ignores negative
// subtraction. Deltas large enough to overflow int64 saturate at the bound
// they were heading for.
func (c Counter) Sub(d int64) Counter {
	if c >= PosInf && d > 0 {
		return c
	}
	if c <= NegInf && d < 0 {
		return c
	}
	if d > 0 && d >= int64(c)-int64(NegInf) {
		return NegInf
	}
	if d < 0 && d <= int64(c)-int64(PosInf) {
		return PosInf
	}
	return clamp(c - Counter(d))
}

// AtCeiling reports whether further gains would be no-ops.
func (c Counter) AtCeiling() bool { return c >= PosInf }

func (c Counter) Int64() int64 { return int64(c) }

// String renders the bounds as infinity and everything else as a grouped
// decimal.
func (c Counter) String() string {
	switch {
	case c >= PosInf:
		return "∞"
	case c <= NegInf:
		return "-∞"
	default:
		return humanize.Comma(int64(c))
	}
}

// ClampValue forces an arbitrary value into the counter range. Used by
// admin edits that set counters directly.
func ClampValue(v int64) Counter {
	return clamp(Counter(v))
}

func clamp(v Counter) Counter {
	if v > PosInf {
		return PosInf
	}
	if v < NegInf {
		return NegInf
	}
	return v
}
