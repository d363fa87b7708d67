package generator

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// alphabet is alphanumeric (a-z, A-Z, 0-9) - 62 characters, case-sensitive.
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultLength gives 62^6 (~56.8 billion) possible codes, which keeps
	// collisions rare at expected table sizes.
	DefaultLength = 6
)

// Generator produces random fixed-length alphanumeric short codes.
// It is stateless and safe for concurrent use.
type Generator struct {
	length int
}

// New creates a Generator producing codes of the given length.
// Non-positive lengths fall back to DefaultLength.
func New(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// NewCode generates a new random short code.
func (g *Generator) NewCode() (string, error) {
	return gonanoid.Generate(alphabet, g.length)
}
