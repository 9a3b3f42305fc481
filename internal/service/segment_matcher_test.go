package service

import (
	"testing"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() SegmentMatcher {
	return NewSegmentMatcher(logger.GetLogger())
}

func TestSegmentMatcher_ExactMatchWins(t *testing.T) {
	matcher := newTestMatcher()
	segments := []*catalog.Segment{
		{ID: "1", Name: "Wholesale"},
		{ID: "2", Name: "VIP"},
	}

	got := matcher.Match([]string{"VIP"}, segments)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID)
}

func TestSegmentMatcher_CascadeOrder(t *testing.T) {
	matcher := newTestMatcher()

	// "gold" matches segment B exactly (case-insensitive) and segment A by
	// substring. The exact strategy runs first, so B must win even though A
	// comes first in catalog order.
	segments := []*catalog.Segment{
		{ID: "a", Name: "Gold Members Club"},
		{ID: "b", Name: "Gold"},
	}

	got := matcher.Match([]string{"gold"}, segments)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestSegmentMatcher_ExactMatchIgnoresCase(t *testing.T) {
	matcher := newTestMatcher()
	segments := []*catalog.Segment{
		{ID: "g", Name: "Gold"},
		{ID: "v", Name: "VIP"},
	}

	// Within one strategy the first tag wins: "gold" already matches "Gold"
	// case-insensitively, so the later exact-case "VIP" tag never gets a turn.
	got := matcher.Match([]string{"gold", "VIP"}, segments)
	require.NotNil(t, got)
	assert.Equal(t, "g", got.ID)
}

func TestSegmentMatcher_ShortCircuitsAcrossStrategies(t *testing.T) {
	calls := make(map[string]int)
	counting := func(name string, hit bool) matchStrategy {
		return matchStrategy{
			name: name,
			fn: func(tag string, segment *catalog.Segment) bool {
				calls[name]++
				return hit
			},
		}
	}

	m := &segmentMatcher{
		logger: logger.GetLogger(),
		strategies: []matchStrategy{
			counting("first", true),
			counting("second", true),
		},
	}

	got := m.Match([]string{"vip"}, []*catalog.Segment{{ID: "1", Name: "VIP"}})
	require.NotNil(t, got)
	assert.Equal(t, 1, calls["first"])
	assert.Zero(t, calls["second"])
}

func TestSegmentMatcher_SegmentIDTag(t *testing.T) {
	matcher := newTestMatcher()
	segments := []*catalog.Segment{
		{ID: "gid://shopify/Segment/42", Name: "Resellers"},
	}

	got := matcher.Match([]string{"42"}, segments)
	require.NotNil(t, got)
	assert.Equal(t, "Resellers", got.Name)
}

func TestSegmentMatcher_UppercaseAndCapitalized(t *testing.T) {
	matcher := newTestMatcher()

	got := matcher.Match([]string{"vip"}, []*catalog.Segment{{ID: "1", Name: "VIP"}})
	require.NotNil(t, got)

	got = matcher.Match([]string{"wholesale"}, []*catalog.Segment{{ID: "2", Name: "Wholesale"}})
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID)
}

func TestSegmentMatcher_SubstringBothDirections(t *testing.T) {
	matcher := newTestMatcher()

	got := matcher.Match([]string{"Premium"}, []*catalog.Segment{{ID: "1", Name: "Premium Buyers"}})
	require.NotNil(t, got)

	got = matcher.Match([]string{"Premium Buyers Europe"}, []*catalog.Segment{{ID: "1", Name: "Premium Buyers"}})
	require.NotNil(t, got)
}

func TestSegmentMatcher_SubstringIsCaseSensitive(t *testing.T) {
	matcher := newTestMatcher()

	// Containment is literal: a lower-cased fragment of a mixed-case name is
	// not a match.
	assert.Nil(t, matcher.Match([]string{"premium"}, []*catalog.Segment{{ID: "1", Name: "Premium Buyers"}}))
}

func TestSegmentMatcher_FirstTagWins(t *testing.T) {
	matcher := newTestMatcher()
	segments := []*catalog.Segment{
		{ID: "1", Name: "Silver"},
		{ID: "2", Name: "Gold"},
	}

	got := matcher.Match([]string{"Gold", "Silver"}, segments)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID)
}

func TestSegmentMatcher_NoMatch(t *testing.T) {
	matcher := newTestMatcher()
	segments := []*catalog.Segment{
		{ID: "1", Name: "Wholesale"},
	}

	assert.Nil(t, matcher.Match([]string{"retail"}, segments))
	assert.Nil(t, matcher.Match(nil, segments))
	assert.Nil(t, matcher.Match([]string{"wholesale"}, nil))
}

func TestSegmentMatcher_EmptyTagNeverSubstringMatches(t *testing.T) {
	matcher := newTestMatcher()
	segments := []*catalog.Segment{
		{ID: "1", Name: "Wholesale"},
	}

	assert.Nil(t, matcher.Match([]string{""}, segments))
}
