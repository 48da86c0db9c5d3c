package gwgp

import (
	"fmt"
	"strings"
)

// MalformedCellError is returned when a price cell does not contain
// the value and change text nodes
type MalformedCellError struct {
	Segments int
}

func (e *MalformedCellError) Error() string {
	return fmt.Sprintf("price cell has %d text segments, expected at least 2", e.Segments)
}

// ParseCell converts text nodes of a price cell into a Price.
// The page renders the value as the first text node and the change indicator
// as the second one (inside its own styled element).
func ParseCell(segments []string) (Price, error) {
	if len(segments) < 2 {
		return Price{}, &MalformedCellError{Segments: len(segments)}
	}

	return NewPrice(
		strings.TrimSpace(segments[0]),
		strings.TrimSpace(segments[1]),
	), nil
}
