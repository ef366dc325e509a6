package pattern

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// GCare renders the pattern as a G-CARE query file. Tag ids are
// renumbered to a dense 0-based range in vertex declaration order, and
// edge endpoints are rewritten through the same renumbering.
func (p *Pattern) GCare() (string, error) {
	tagIDMap := make(map[int]int, len(p.Vertices))
	for i, v := range p.Vertices {
		tagIDMap[v.TagID] = i
	}

	var b strings.Builder
	b.WriteString("t # s 123\n")

	for _, v := range p.Vertices {
		fmt.Fprintf(&b, "v %d %d -1\n", tagIDMap[v.TagID], v.LabelID)
	}

	for _, e := range p.Edges {
		src, ok := tagIDMap[e.Src]
		if !ok {
			return "", fmt.Errorf("edge %d references unknown vertex tag %d", e.TagID, e.Src)
		}

		dst, ok := tagIDMap[e.Dst]
		if !ok {
			return "", fmt.Errorf("edge %d references unknown vertex tag %d", e.TagID, e.Dst)
		}

		fmt.Fprintf(&b, "e %d %d %d\n", src, dst, e.LabelID)
	}

	return b.String(), nil
}

func (p *Pattern) SaveGCare(fs afero.Fs, path string) error {
	text, err := p.GCare()
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fs, path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write query file: %w", err)
	}

	return nil
}
