package analyze

import (
	"fmt"

	"github.com/hyperifyio/blogschema/internal/extract"
)

// Structure reports heading organization and link distribution.
type Structure struct {
	HeadingCounts          map[string]int `json:"heading_structure"`
	TotalHeadings          int            `json:"total_headings"`
	TotalLinks             int            `json:"total_links"`
	InternalLinks          int            `json:"internal_links"`
	ExternalLinks          int            `json:"external_links"`
	InternalRatio          float64        `json:"internal_ratio"`
	ExternalRatio          float64        `json:"external_ratio"`
	ProperHeadingHierarchy bool           `json:"has_proper_heading_hierarchy"`
}

func structureAnalysis(headings []extract.Heading, links []extract.Link) Structure {
	counts := map[string]int{}
	for _, h := range headings {
		counts[fmt.Sprintf("h%d", h.Level)]++
	}

	internal := 0
	for _, l := range links {
		if l.Internal {
			internal++
		}
	}
	external := len(links) - internal

	return Structure{
		HeadingCounts:          counts,
		TotalHeadings:          len(headings),
		TotalLinks:             len(links),
		InternalLinks:          internal,
		ExternalLinks:          external,
		InternalRatio:          round2(float64(internal) / float64(atLeast1(len(links)))),
		ExternalRatio:          round2(float64(external) / float64(atLeast1(len(links)))),
		ProperHeadingHierarchy: properHierarchy(headings),
	}
}

// properHierarchy verifies no heading increases by more than one level from
// the previous one. An empty list is trivially valid.
func properHierarchy(headings []extract.Heading) bool {
	prev := 0
	for _, h := range headings {
		if h.Level > prev+1 {
			return false
		}
		prev = h.Level
	}
	return true
}
