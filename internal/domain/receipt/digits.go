package receipt

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// DigitSource supplies the random numbers used for presentation-only fields
type DigitSource interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// DigitSourceFunc adapts a function to DigitSource
type DigitSourceFunc func(n int) int

// IntN calls f(n)
func (f DigitSourceFunc) IntN(n int) int { return f(n) }

type randomDigits struct{}

func (randomDigits) IntN(n int) int { return rand.IntN(n) }

// RandomDigits returns the process-wide pseudo random source
func RandomDigits() DigitSource { return randomDigits{} }

const (
	accessKeyRandomDigits = 40
	accessKeyGroupSize    = 4
	protocolRange         = 100000
)

// AccessKey builds prefix followed by 40 random digits, grouped in blocks of 4
func AccessKey(src DigitSource, prefix string) string {
	var b strings.Builder
	b.Grow(len(prefix) + accessKeyRandomDigits)
	b.WriteString(prefix)
	for i := 0; i < accessKeyRandomDigits; i++ {
		b.WriteByte(byte('0' + src.IntN(10)))
	}
	return groupDigits(b.String(), accessKeyGroupSize)
}

// Protocol builds prefix followed by a random integer in [0, 100000)
func Protocol(src DigitSource, prefix string) string {
	return prefix + strconv.Itoa(src.IntN(protocolRange))
}

func groupDigits(s string, size int) string {
	var b strings.Builder
	for i := 0; i < len(s); i += size {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := min(i+size, len(s))
		b.WriteString(s[i:end])
	}
	return b.String()
}

// StripSpaces removes the grouping spaces of an access key
func StripSpaces(key string) string {
	return strings.ReplaceAll(key, " ", "")
}
