package formatter

import (
	"strconv"
	"strings"
)

// formatHex renders value in the formatter's configured hex style: case,
// prefix/suffix strings, and zero-padding to at least padding digits (spec
// section 6.2 properties HEX_UPPERCASE/HEX_PREFIX/HEX_SUFFIX/
// HEX_PADDING_*).
func (f *Formatter) formatHex(value uint64, padding uint8) string {
	digits := strconv.FormatUint(value, 16)
	if f.HexUppercase {
		digits = strings.ToUpper(digits)
	}
	if int(padding) > len(digits) {
		digits = strings.Repeat("0", int(padding)-len(digits)) + digits
	}
	return f.HexPrefix + digits + f.HexSuffix
}

// formatSigned renders a signed 64-bit value with a leading sign, the
// magnitude in the formatter's hex style.
func (f *Formatter) formatSigned(value int64, padding uint8) string {
	if value < 0 {
		return "-" + f.formatHex(uint64(-value), padding)
	}
	return "+" + f.formatHex(uint64(value), padding)
}

func applyCase(s string, upper bool) string {
	if upper {
		return strings.ToUpper(s)
	}
	return s
}
