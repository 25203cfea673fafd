package agent

import (
	"fmt"
	"math"
)

// Fixed-width fields: a sign letter, a 2-digit biased decimal exponent, a
// literal '.', and a 6-digit normalized mantissa (1 integer digit + 5
// fractional digits, scaled to an integer). timeStringExpBias centers the
// exponent range so exponents in [-timeStringExpBias, 99-timeStringExpBias]
// encode as two digits.
const (
	timeStringExpBias = 50
	mantissaScale     = 1e5 // 6 significant digits: d.ddddd
)

// TimeString encodes t as a fixed-width string such that lexicographic
// order of the result equals numeric order of t. Positive (including
// zero) values are prefixed 'P', negative values 'N' (which sorts before
// 'P' in ASCII); within each sign the exponent and mantissa fields are
// zero-padded decimal, and negative values additionally have both fields
// digit-inverted so that larger magnitude - numerically smaller - sorts
// first.
func TimeString(t float64) string {
	neg := t < 0
	mag := t
	if neg {
		mag = -t
	}

	var exp int
	var mantissa float64
	if mag == 0 {
		exp = -timeStringExpBias
		mantissa = 0
	} else {
		exp = int(math.Floor(math.Log10(mag)))
		mantissa = mag / math.Pow(10, float64(exp))
		if mantissa >= 10 {
			mantissa /= 10
			exp++
		}
		if mantissa < 1 {
			mantissa *= 10
			exp--
		}
	}

	biasedExp := exp + timeStringExpBias
	if biasedExp < 0 || biasedExp > 99 {
		panic(fmt.Sprintf("agent: time %.17g out of encodable exponent range", t))
	}

	mantissaDigits := int(math.Round(mantissa * mantissaScale))
	if mantissaDigits >= 1000000 {
		mantissaDigits = 999999
	}

	if neg {
		biasedExp = 99 - biasedExp
		mantissaDigits = 999999 - mantissaDigits
	}

	sign := byte('P')
	if neg {
		sign = 'N'
	}
	return fmt.Sprintf("%c%02d.%06d", sign, biasedExp, mantissaDigits)
}
