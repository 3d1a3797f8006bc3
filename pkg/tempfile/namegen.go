package tempfile

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SuffixLength is the number of random characters appended to the prefix
const SuffixLength = 12

// suffixAlphabet keeps generated names safe for shells and gnuplot strings
const suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NameGenerator produces candidate file names for a prefix.
// Implementations must not touch the filesystem; uniqueness against the
// table and the disk is enforced by the Allocator.
type NameGenerator interface {
	Generate(prefix string) (string, error)
}

// RandomNames generates names with a cryptographically random suffix.
type RandomNames struct {
	Length int
}

// Generate returns prefix followed by a random suffix
func (r RandomNames) Generate(prefix string) (string, error) {
	size := r.Length
	if size <= 0 {
		size = SuffixLength
	}

	suffix, err := gonanoid.Generate(suffixAlphabet, size)
	if err != nil {
		return "", fmt.Errorf("failed to generate name suffix: %w", err)
	}
	return prefix + suffix, nil
}

// SequentialNames generates prefix0, prefix1, ... and is meant for tests
// that need predictable file names.
type SequentialNames struct {
	next int
}

// Generate returns the next name in the sequence
func (s *SequentialNames) Generate(prefix string) (string, error) {
	name := fmt.Sprintf("%s%d", prefix, s.next)
	s.next++
	return name, nil
}
