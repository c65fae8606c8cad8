package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor units (1/100 of the currency unit).
// Sums are exact; rounding to two places only happens in String.
type Money int64

// String formats the amount with exactly two decimals, e.g. "10.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Sum adds amounts.
func Sum(ms ...Money) Money {
	var t Money
	for _, m := range ms {
		t += m
	}
	return t
}

// ParseMoney parses "10", "10.5", "10.50" or "10,50". Empty input is zero.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, fmt.Errorf("bad amount %q", s)
	}
	if !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("bad amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("bad amount %q: more than two decimals", s)
	}
	var units int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad amount %q", s)
		}
		if v > (math.MaxInt64-99)/100 {
			return 0, fmt.Errorf("bad amount %q: too large", s)
		}
		units = v
	}
	var cents int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		v, _ := strconv.ParseInt(frac, 10, 64)
		cents = v
	}
	m := Money(units*100 + cents)
	if neg {
		m = -m
	}
	return m, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
