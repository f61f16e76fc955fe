package nhtsa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformedErrorCode reports an ErrorCode value without a leading integer.
var ErrMalformedErrorCode = errors.New("malformed error code")

// ParseErrorCode splits the API's "<digits>[- <text>]" ErrorCode value into its
// leading integer and the remaining text. Values such as "1,11" yield code 1
// and text "11".
func ParseErrorCode(value string) (int, string, error) {
	trimmed := strings.TrimSpace(value)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedErrorCode, value)
	}
	code, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedErrorCode, value)
	}
	text := strings.TrimLeft(trimmed[end:], " \t-,;:")
	return code, strings.TrimSpace(text), nil
}

// hasDescription reports whether the text after the code says something more
// than another list of codes.
func hasDescription(text string) bool {
	return strings.ContainsFunc(text, unicode.IsLetter)
}

func isUpstreamTimeout(texts ...string) bool {
	for _, text := range texts {
		if strings.Contains(strings.ToLower(text), "connection timeout expired") {
			return true
		}
	}
	return false
}
