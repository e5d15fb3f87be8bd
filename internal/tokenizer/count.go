package tokenizer

import (
	"errors"
	"unicode/utf8"
)

var errNilCounter = errors.New("nil tokenizer counter")

// CountText estimates tokens for rendered text. Invalid UTF-8 is not counted.
func CountText(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	if text == "" || !utf8.ValidString(text) {
		return 0, nil
	}
	return counter.CountString(text)
}
