package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendmatch/internal/embedding"
	"spendmatch/internal/taxonomy"
)

func testStore(t *testing.T) *embedding.Store {
	t.Helper()
	store, err := embedding.NewStore(
		map[string]int{"한식": 1, "중식": 2, "양식": 3, "여행": 4},
		[][]float64{
			{0, 0},
			{1, 0},
			{0, 1},
			{1, 0}, // same direction as 한식, forces a score tie
			{-1, 0},
		},
	)
	require.NoError(t, err)
	return store
}

func TestScoreSpansFullPoolWithMissingAsZero(t *testing.T) {
	store := testStore(t)
	pool := []string{"한식", "중식", "미지의키워드", "여행"}

	scores := Score([]float64{1, 0}, pool, store, true)

	require.Len(t, scores, len(pool))
	byName := make(map[string]float64)
	for _, s := range scores {
		byName[s.Name] = s.Score
	}
	assert.Equal(t, 0.0, byName["미지의키워드"])
	assert.InDelta(t, 1.0, byName["한식"], 1e-12)
	assert.InDelta(t, -1.0, byName["여행"], 1e-12)
}

func TestScoreOmitsMissingWhenFlagUnset(t *testing.T) {
	store := testStore(t)
	pool := []string{"한식", "미지의키워드"}

	scores := Score([]float64{1, 0}, pool, store, false)

	require.Len(t, scores, 1)
	assert.Equal(t, "한식", scores[0].Name)
}

func TestScoreSortsByScoreThenName(t *testing.T) {
	store := testStore(t)
	// 한식 and 양식 share an embedding direction: tied scores must
	// order lexicographically.
	scores := Score([]float64{1, 0}, []string{"한식", "양식", "중식"}, store, true)

	require.Len(t, scores, 3)
	assert.Equal(t, "양식", scores[0].Name)
	assert.Equal(t, "한식", scores[1].Name)
	assert.Equal(t, "중식", scores[2].Name)
}

func TestScoreZeroProfileVectorScoresAllZero(t *testing.T) {
	store := testStore(t)

	scores := Score([]float64{0, 0}, []string{"한식", "중식"}, store, true)

	for _, s := range scores {
		assert.Equal(t, 0.0, s.Score)
	}
}

func TestScoreGroups(t *testing.T) {
	store := testStore(t)
	tables := taxonomy.New(nil, nil, []taxonomy.Group{
		{Name: "음식", Members: []string{"한식", "중식", "양식"}},
		{Name: "생활서비스", Members: []string{"여행", "미지의서비스"}},
	})

	groups := ScoreGroups([]float64{1, 0}, tables, store, true)

	require.Len(t, groups, 2)
	require.Len(t, groups["음식"], 3)
	assert.Equal(t, "양식", groups["음식"][0].Name)

	require.Len(t, groups["생활서비스"], 2)
	assert.Equal(t, 0.0, groups["생활서비스"][0].Score)

	omitted := ScoreGroups([]float64{1, 0}, tables, store, false)
	assert.Len(t, omitted["생활서비스"], 1)
}
