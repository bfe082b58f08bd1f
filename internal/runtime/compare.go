package runtime

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"rgehrsitz/gact/internal/entity"
	"rgehrsitz/gact/internal/rules"
)

type scalarKind int

const (
	scalarString scalarKind = iota
	scalarNumber
	scalarBool
)

type scalar struct {
	kind scalarKind
	str  string
	num  float64
	flag bool
}

// statScalar decodes a stat value. Missing, null and structured values have
// no scalar form.
func statScalar(stat entity.AdditionalStat) (scalar, bool) {
	if len(stat.Value) == 0 {
		return scalar{}, false
	}
	var v interface{}
	if err := json.Unmarshal(stat.Value, &v); err != nil {
		return scalar{}, false
	}
	switch v := v.(type) {
	case string:
		return scalar{kind: scalarString, str: v}, true
	case float64:
		return scalar{kind: scalarNumber, num: v}, true
	case bool:
		return scalar{kind: scalarBool, flag: v}, true
	}
	return scalar{}, false
}

func valueScalar(value rules.Value) scalar {
	if n, ok := value.Number(); ok {
		return scalar{kind: scalarNumber, num: n}
	}
	if b, ok := value.Bool(); ok {
		return scalar{kind: scalarBool, flag: b}
	}
	return scalar{kind: scalarString, str: value.Raw}
}

// looseEqual compares a stat with a selector value using loose equality:
// same kinds compare exactly, booleans count as 0 or 1, and a string met by a
// number is read as a number.
func looseEqual(stat entity.AdditionalStat, value rules.Value) bool {
	left, ok := statScalar(stat)
	if !ok {
		return false
	}
	return left.looseEquals(valueScalar(value))
}

func (a scalar) looseEquals(b scalar) bool {
	if a.kind == b.kind {
		switch a.kind {
		case scalarString:
			return a.str == b.str
		case scalarNumber:
			return a.num == b.num
		default:
			return a.flag == b.flag
		}
	}
	if a.kind == scalarBool {
		return a.asNumber().looseEquals(b)
	}
	if b.kind == scalarBool {
		return a.looseEquals(b.asNumber())
	}
	// one string, one number
	if a.kind == scalarString {
		return stringToNumber(a.str) == b.num
	}
	return a.num == stringToNumber(b.str)
}

func (a scalar) asNumber() scalar {
	n := 0.0
	if a.flag {
		n = 1
	}
	return scalar{kind: scalarNumber, num: n}
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// stringToNumber reads s as a numeric literal. Blank text is 0, anything that
// is not a number is NaN.
func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	switch t {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(t) > 2 && t[0] == '0' {
		base := 0
		switch t[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(t[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if !decimalLiteral.MatchString(t) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}
