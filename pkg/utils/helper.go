package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrNotPositiveInt = errors.New("not a positive integer")

// ParsePositiveInt accepts a JSON number or a quoted number, as sent by
// browser forms, and requires the result to be a whole number >= 1.
// absent reports whether the field was missing or null.
func ParsePositiveInt(raw json.RawMessage) (value int, absent bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, true, nil
	}

	text := string(raw)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false, ErrNotPositiveInt
		}
		text = strings.TrimSpace(text)
	}

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil || n < 1 {
		return 0, false, ErrNotPositiveInt
	}
	return int(n), false, nil
}
