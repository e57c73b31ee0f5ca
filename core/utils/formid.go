package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFormID parses a form id written as hex with an optional 0x prefix,
// the way the game console prints them. Plain decimal is accepted with a
// leading "#".
func ParseFormID(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if dec, ok := strings.CutPrefix(s, "#"); ok {
		v, err := strconv.ParseUint(dec, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid form id %q: %w", s, err)
		}
		return uint32(v), nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid form id %q: %w", s, err)
	}
	return uint32(v), nil
}

// FormatFormID prints id as eight upper case hex digits.
func FormatFormID(id uint32) string {
	return fmt.Sprintf("%08X", id)
}
