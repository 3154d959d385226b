package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendmatch/internal/domain"
	"spendmatch/internal/embedding"
	"spendmatch/internal/taxonomy"
	"spendmatch/internal/vecmath"
)

func testStore(t *testing.T) *embedding.Store {
	t.Helper()
	store, err := embedding.NewStore(
		map[string]int{
			"한식":        1,
			"중식":        2,
			"카페/디저트":    3,
			"인테리어/가정용품": 4,
		},
		[][]float64{
			{0, 0, 0},
			{1, 2, 2},
			{0, 1, 0},
			{1, 0, 0},
			{0, 0, 1},
		},
	)
	require.NoError(t, err)
	return store
}

func TestBuildSingleCategoryCollapsesToEmbedding(t *testing.T) {
	builder := NewBuilder(testStore(t), taxonomy.Default())

	u := builder.Build([]domain.Transaction{
		{Category: "한식", PaymentTime: "2026-08-30 12:00:00", Amount: 15000},
	})

	// With one category every signal normalizes to a constant, so the
	// profile is exactly the normalized category embedding.
	want := vecmath.Normalize([]float64{1, 2, 2})
	require.Len(t, u, 3)
	for i := range want {
		assert.InDelta(t, want[i], u[i], 1e-12)
	}
}

func TestBuildReturnsUnitOrZeroVector(t *testing.T) {
	builder := NewBuilder(testStore(t), taxonomy.Default())

	u := builder.Build([]domain.Transaction{
		{Category: "한식", PaymentTime: "2026-08-01 09:00:00", Amount: 12000},
		{Category: "한식", PaymentTime: "2026-08-10 09:00:00", Amount: 8000},
		{Category: "중식", PaymentTime: "2026-08-20 19:30:00", Amount: 22000},
		{Category: "카페/디저트", PaymentTime: "2026-08-29 15:00:00", Amount: 6500},
	})

	assert.InDelta(t, 1.0, vecmath.Norm(u), 1e-9)
}

func TestBuildEmptyInputYieldsZeroVector(t *testing.T) {
	builder := NewBuilder(testStore(t), taxonomy.Default())

	u := builder.Build(nil)

	require.Len(t, u, 3)
	assert.True(t, vecmath.IsZero(u))
}

func TestBuildUnknownCategoriesYieldZeroVector(t *testing.T) {
	builder := NewBuilder(testStore(t), taxonomy.Default())

	u := builder.Build([]domain.Transaction{
		{Category: "없는카테고리", PaymentTime: "2026-08-01 09:00:00", Amount: 10000},
	})

	assert.True(t, vecmath.IsZero(u))
}

func TestBuildFoldsAliasesBeforeAggregation(t *testing.T) {
	builder := NewBuilder(testStore(t), taxonomy.Default())

	aliased := builder.Build([]domain.Transaction{
		{Category: "가전제품", PaymentTime: "2026-08-01 09:00:00", Amount: 50000},
		{Category: "인테리어", PaymentTime: "2026-08-15 09:00:00", Amount: 30000},
		{Category: "한식", PaymentTime: "2026-08-20 09:00:00", Amount: 15000},
	})
	canonical := builder.Build([]domain.Transaction{
		{Category: "인테리어/가정용품", PaymentTime: "2026-08-01 09:00:00", Amount: 50000},
		{Category: "인테리어/가정용품", PaymentTime: "2026-08-15 09:00:00", Amount: 30000},
		{Category: "한식", PaymentTime: "2026-08-20 09:00:00", Amount: 15000},
	})

	assert.Equal(t, canonical, aliased)
}

func TestBuildIsDeterministic(t *testing.T) {
	builder := NewBuilder(testStore(t), taxonomy.Default())
	txs := []domain.Transaction{
		{Category: "한식", PaymentTime: "2026-06-01 09:00:00", Amount: 12000},
		{Category: "중식", PaymentTime: "2026-07-10 12:00:00", Amount: 9000},
		{Category: "카페/디저트", PaymentTime: "2026-08-29 15:00:00", Amount: 6500},
		{Category: "인테리어/가정용품", PaymentTime: "2026-08-30 10:00:00", Amount: 70000},
	}

	first := builder.Build(txs)
	second := builder.Build(txs)

	assert.Equal(t, first, second)
}

func TestBuildSkipsUnparseableTimestamps(t *testing.T) {
	builder := NewBuilder(testStore(t), taxonomy.Default())

	u := builder.Build([]domain.Transaction{
		{Category: "한식", PaymentTime: "yesterday-ish", Amount: 12000},
		{Category: "중식", PaymentTime: "2026-08-20 19:30:00", Amount: 22000},
	})

	want := vecmath.Normalize([]float64{0, 1, 0})
	for i := range want {
		assert.InDelta(t, want[i], u[i], 1e-12)
	}
}

func TestParseTimeLayouts(t *testing.T) {
	for _, s := range []string{
		"2026-08-30 12:00:00",
		"2026-08-30T12:00:00",
		"2026-08-30T12:00:00Z",
		"2026-08-30",
	} {
		_, ok := ParseTime(s)
		assert.True(t, ok, "failed to parse %s", s)
	}
	_, ok := ParseTime("30/08/2026")
	assert.False(t, ok)
}
