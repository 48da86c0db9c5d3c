package gwgp

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
)

// Parse loads raw markup into a tree.
// The html parser recovers from broken markup the same way browsers do,
// errors are only returned for failing reads.
func Parse(raw []byte) (*html.Node, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("could not parse document: %w", err)
	}

	return root, nil
}
