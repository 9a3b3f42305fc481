package service

import (
	"strings"
	"unicode"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

// SegmentMatcher maps a shopper's raw tag list onto the segment catalog.
type SegmentMatcher interface {
	// Match returns the best-matching segment or nil when nothing matches.
	// A nil result is not an error: downstream resolves to "no discount".
	Match(tags []string, segments []*catalog.Segment) *catalog.Segment
}

// matchStrategy is one step of the matching cascade.
type matchStrategy struct {
	name string
	fn   func(tag string, segment *catalog.Segment) bool
}

type segmentMatcher struct {
	logger     *logger.Logger
	strategies []matchStrategy
}

// NewSegmentMatcher creates a matcher with the default strategy cascade.
func NewSegmentMatcher(logger *logger.Logger) SegmentMatcher {
	return &segmentMatcher{
		logger:     logger,
		strategies: defaultMatchStrategies(),
	}
}

// defaultMatchStrategies returns the ordered cascade. Strategy 2 exists for
// historical plans whose target key stored a prefixed segment ID instead of a
// name; it stays until those rows are migrated. The uppercase and capitalized
// strategies are subsumed by the case-insensitive exact match but keep their
// slots so the cascade order is stable if exact ever tightens.
func defaultMatchStrategies() []matchStrategy {
	return []matchStrategy{
		{
			name: "exact",
			fn: func(tag string, segment *catalog.Segment) bool {
				return strings.EqualFold(tag, segment.Name)
			},
		},
		{
			name: "segment_gid",
			fn: func(tag string, segment *catalog.Segment) bool {
				return types.GID(types.GIDKindSegment, tag) == types.GID(types.GIDKindSegment, segment.ID)
			},
		},
		{
			name: "uppercase",
			fn: func(tag string, segment *catalog.Segment) bool {
				return strings.ToUpper(tag) == segment.Name
			},
		},
		{
			name: "capitalized",
			fn: func(tag string, segment *catalog.Segment) bool {
				return capitalize(tag) == segment.Name
			},
		},
		{
			name: "substring",
			fn: func(tag string, segment *catalog.Segment) bool {
				// Literal containment, both directions. Empty strings would
				// trivially be contained in anything, so guard them out.
				if tag == "" || segment.Name == "" {
					return false
				}
				return strings.Contains(segment.Name, tag) || strings.Contains(tag, segment.Name)
			},
		},
	}
}

// Match runs the cascade in order and stops at the first strategy that
// produces a match. The first tag in traversal order wins; this tie-break is
// arbitrary but deterministic and is pinned by tests.
func (m *segmentMatcher) Match(tags []string, segments []*catalog.Segment) *catalog.Segment {
	if len(tags) == 0 || len(segments) == 0 {
		return nil
	}

	for _, strategy := range m.strategies {
		for _, tag := range tags {
			for _, segment := range segments {
				if strategy.fn(tag, segment) {
					m.logger.Debugw("segment matched",
						"strategy", strategy.name,
						"tag", tag,
						"segment_id", segment.ID,
						"segment_name", segment.Name,
					)
					return segment
				}
			}
		}
	}

	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
