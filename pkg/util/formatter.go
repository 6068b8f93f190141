package util

import (
	"fmt"
	"math"
)

type prefix struct {
	scale  float64
	symbol string
}

var prefixes = []prefix{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "u"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// FormatValueFactor prints a value with an engineering prefix and three decimals.
func FormatValueFactor(value float64, unit string) string {
	if value == 0 {
		return fmt.Sprintf("%.3f %s", value, unit)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%v %s", value, unit)
	}

	absValue := math.Abs(value)
	for _, p := range prefixes {
		if absValue >= p.scale {
			return fmt.Sprintf("%.3f %s%s", value/p.scale, p.symbol, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", value, unit)
}

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e6:
		return fmt.Sprintf("%7.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%7.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%7.3f Hz ", freq)
	}
}

func FormatMagnitude(value float64) string {
	if value >= 1000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%8.2e", value) // "1.00e+03" or "5.43e-05"
	}
	return fmt.Sprintf("%8.3g", value) // "     732"
}

func FormatPhase(value float64) string {
	if math.Abs(value) < 0.05 {
		value = 0 // no "-0.0"
	}
	return fmt.Sprintf("%6.1f", value) // "  90.0"
}

// FormatPhasor prints name=|v|<angle in polar form.
func FormatPhasor(name string, magnitude, phase float64) string {
	return fmt.Sprintf("%s=%s<%sdeg", name, FormatMagnitude(magnitude), FormatPhase(phase))
}

// FormatRectangular prints a complex value as re+jim. Parts below 1e-12 of the
// larger one are printed as zero.
func FormatRectangular(value complex128, unit string) string {
	re, im := real(value), imag(value)
	floor := 1e-12 * math.Max(math.Abs(re), math.Abs(im))
	if math.Abs(re) < floor {
		re = 0
	}
	if math.Abs(im) < floor {
		im = 0
	}
	sign := "+"
	if im < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%.4g %sj%.4g %s", re, sign, math.Abs(im), unit)
}
