package code

import (
	"fmt"
	"strings"
)

// Generator produces codes for numeric indices. It shares the checksum
// algorithm with Validator, so codes minted offline verify online as
// long as both sides carry the same salt.
type Generator struct {
	salt string
}

func NewGenerator(salt string) *Generator {
	return &Generator{salt: salt}
}

// Generate builds the code for index under the given one-letter prefix.
func (g *Generator) Generate(index int, prefix string) (string, error) {
	if index < 0 || index > MaxIndex {
		return "", fmt.Errorf("index must be between 0 and %d inclusive, got %d", MaxIndex, index)
	}
	if !validPrefix(prefix) {
		return "", fmt.Errorf("prefix must be a single letter A-Z, got %q", prefix)
	}

	indexPart := fmt.Sprintf("%s%05d", strings.ToUpper(prefix), index)
	return indexPart + "-" + Checksum(indexPart, g.salt), nil
}

func validPrefix(prefix string) bool {
	if len(prefix) != 1 {
		return false
	}
	c := prefix[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
