package tables

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

// Range is the roll span a table entry answers to. Either end may be open.
//
//	"7"    exactly 7
//	"3-5"  3 through 5
//	"20+"  20 and up
//	"0-"   0 and below
type Range struct {
	Low  int
	High int
}

// ParseRange reads the range notations above. Negative bounds are allowed ("-2-0").
func ParseRange(s string) (Range, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if raw == "" {
		return Range{}, dnderr.InvalidArgument("empty table range")
	}

	switch {
	case strings.HasSuffix(raw, "+"):
		low, err := strconv.Atoi(strings.TrimSuffix(raw, "+"))
		if err != nil {
			return Range{}, dnderr.InvalidArgumentf("invalid open range %q", s)
		}
		return Range{Low: low, High: math.MaxInt}, nil

	case strings.HasSuffix(raw, "-") && len(raw) > 1:
		high, err := strconv.Atoi(strings.TrimSuffix(raw, "-"))
		if err != nil {
			return Range{}, dnderr.InvalidArgumentf("invalid open range %q", s)
		}
		return Range{Low: math.MinInt, High: high}, nil
	}

	// Skip a leading sign when looking for the separator so "-2-0" splits as -2 / 0
	if sep := strings.Index(raw[1:], "-"); sep >= 0 {
		sep++
		low, errLow := strconv.Atoi(raw[:sep])
		high, errHigh := strconv.Atoi(raw[sep+1:])
		if errLow != nil || errHigh != nil {
			return Range{}, dnderr.InvalidArgumentf("invalid range %q", s)
		}
		if low > high {
			return Range{}, dnderr.InvalidArgumentf("range %q runs backwards", s)
		}
		return Range{Low: low, High: high}, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return Range{}, dnderr.InvalidArgumentf("invalid range %q", s)
	}
	return Range{Low: v, High: v}, nil
}

// Contains reports whether v falls inside the range
func (r Range) Contains(v int) bool {
	return v >= r.Low && v <= r.High
}

func (r Range) String() string {
	switch {
	case r.Low == r.High:
		return strconv.Itoa(r.Low)
	case r.High == math.MaxInt:
		return fmt.Sprintf("%d+", r.Low)
	case r.Low == math.MinInt:
		return fmt.Sprintf("%d-", r.High)
	default:
		return fmt.Sprintf("%d-%d", r.Low, r.High)
	}
}

// UnmarshalYAML accepts both quoted and bare scalars ("3-5", 7)
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return dnderr.InvalidArgumentf("line %d: table range must be a scalar", node.Line)
	}
	parsed, err := ParseRange(node.Value)
	if err != nil {
		return dnderr.Wrapf(err, "line %d", node.Line)
	}
	*r = parsed
	return nil
}

// MarshalText renders the range in its source notation
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
