// Package idgen generates the public 10-digit account numbers.
package idgen

import (
	"crypto/rand"
	"errors"
	"io"
)

// Length is the number of digits in a public ID.
const Length = 10

const maxAttempts = 10

// ErrExhausted is returned when no acceptable candidate was drawn within the
// attempt budget.
var ErrExhausted = errors.New("idgen: attempts exhausted")

type Generator struct {
	rand     io.Reader
	attempts int
}

func New() *Generator {
	return &Generator{rand: rand.Reader, attempts: maxAttempts}
}

// Next draws digit strings until one passes the repeated-digit rule. The
// caller is responsible for checking uniqueness against the store.
func (g *Generator) Next() (string, error) {
	for i := 0; i < g.attempts; i++ {
		id, err := g.draw()
		if err != nil {
			return "", err
		}
		if !HasDigitRun(id) {
			return id, nil
		}
	}
	return "", ErrExhausted
}

func (g *Generator) draw() (string, error) {
	buf := make([]byte, Length)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = '0' + b%10
	}
	return string(buf), nil
}

// HasDigitRun reports whether s contains three or more identical
// consecutive characters.
func HasDigitRun(s string) bool {
	for i := 2; i < len(s); i++ {
		if s[i] == s[i-1] && s[i-1] == s[i-2] {
			return true
		}
	}
	return false
}
