package entity

import (
	"strings"

	"github.com/samber/lo"
)

// CodeLength is the number of slots in a one-time code.
const CodeLength = 6

// CodeBuffer holds one decimal digit or nothing per slot.
//
// The array type keeps the length fixed; every writer goes through the
// methods below so a slot never stores more than one digit.
type CodeBuffer [CodeLength]string

// StripDigits drops every character that is not an ASCII decimal digit.
func StripDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
}

// ValidIndex reports whether index addresses a slot.
func ValidIndex(index int) bool {
	return index >= 0 && index < CodeLength
}

// Set stores digit at index. Anything but a single digit clears the slot.
func (b *CodeBuffer) Set(index int, digit string) {
	if len(digit) != 1 || digit[0] < '0' || digit[0] > '9' {
		digit = ""
	}
	b[index] = digit
}

// Clear empties the slot at index.
func (b *CodeBuffer) Clear(index int) {
	b[index] = ""
}

// IsEmpty reports whether the slot at index holds no digit.
func (b *CodeBuffer) IsEmpty(index int) bool {
	return b[index] == ""
}

// Fill writes digits left-to-right from slot 0 and returns how many were
// written. Only the first CodeLength digits are used; slots past the written
// count keep their previous value.
func (b *CodeBuffer) Fill(digits string) int {
	digits = StripDigits(digits)
	if len(digits) > CodeLength {
		digits = digits[:CodeLength]
	}

	for i := range len(digits) {
		b[i] = digits[i : i+1]
	}

	return len(digits)
}

// IsComplete reports whether every slot holds a digit.
func (b *CodeBuffer) IsComplete() bool {
	return lo.EveryBy(b[:], func(s string) bool { return s != "" })
}

// Slots returns a copy of the slot values.
func (b *CodeBuffer) Slots() []string {
	out := make([]string, CodeLength)
	copy(out, b[:])
	return out
}

// String joins the slots into a single code.
func (b *CodeBuffer) String() string {
	return strings.Join(b[:], "")
}
