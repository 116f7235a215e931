package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchParams_Query(t *testing.T) {
	sfw := true
	p := SearchParams{Q: "naruto", Page: 2, Limit: 20, MinScore: 7.5, SFW: &sfw, OrderBy: "score", Sort: "desc"}

	assert.Equal(t, "limit=20&min_score=7.5&order_by=score&page=2&q=naruto&sfw=true&sort=desc", p.Query().Encode())
	assert.Empty(t, SearchParams{}.Query())
}

func TestSearchParams_Merge(t *testing.T) {
	base := SearchParams{Page: 3, Limit: DefaultPageLimit, Type: "tv"}
	merged := base.Merge(SearchParams{Limit: 5, Genres: "1,2"})

	assert.Equal(t, 3, merged.Page)
	assert.Equal(t, 5, merged.Limit)
	assert.Equal(t, "tv", merged.Type)
	assert.Equal(t, "1,2", merged.Genres)
	assert.Equal(t, DefaultPageLimit, base.Limit)
}
