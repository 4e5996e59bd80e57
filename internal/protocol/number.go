package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// maxHexLen is "0x" plus eight hex digits.
const maxHexLen = 10

// ErrInvalidNumber is returned for text that is not a valid integer literal.
var ErrInvalidNumber = errors.New("invalid number")

// IsHex32 reports whether s is 0x/0X followed only by hex digits and fits
// a 32-bit value by length.
func IsHex32(s string) bool {
	if len(s) > maxHexLen || len(s) < 2 {
		return false
	}
	if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	for i := 2; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// ParseCode parses an IR code. Hex literals per IsHex32 are read in base 16,
// everything else in base 10.
func ParseCode(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	digits, base := s, 10
	if IsHex32(s) {
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return uint32(v), nil
}

// ParseCount parses a decimal count and clamps it into 0..max. Values out
// of range are clamped, not rejected.
func ParseCount(s string, max int) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
		// Atoi saturates on overflow; let the clamp below handle it.
	}
	return Clamp(v, 0, max), nil
}

// Clamp constrains v into lo..hi.
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
