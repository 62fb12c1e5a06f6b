package score

import (
	"fmt"
	"strings"
)

const (
	previewMax  = 9
	previewEdge = previewMax / 2
)

// String lists the items best first. Scorers with more than nine items
// show the top four, the median and the bottom four.
func (s *Scorer[K]) String() string {
	if s.Len() == 0 {
		return "Scorer()"
	}

	var parts []string
	if s.Len() <= previewMax {
		desc, _ := s.Descending()
		parts = appendItems(parts, desc)
	} else {
		top, _ := s.TopK(previewEdge)
		med, _ := s.Median()
		bottom, _ := s.TopK(-previewEdge)
		parts = appendItems(parts, top)
		parts = append(parts, "...")
		parts = appendItems(parts, []Item[K]{med})
		parts = append(parts, "..")
		parts = appendItems(parts, bottom)
	}
	return "Scorer({" + strings.Join(parts, ", ") + "})"
}

func appendItems[K comparable](parts []string, items []Item[K]) []string {
	for _, it := range items {
		parts = append(parts, it.String())
	}
	return parts
}

func (it Item[K]) String() string {
	return fmt.Sprintf("%v: %s", it.Key, it.Score)
}
