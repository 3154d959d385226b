package generate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendmatch/internal/profile"
)

func TestGeneratePayloadShape(t *testing.T) {
	end := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	gen := NewSeededGenerator(42)

	payload, err := gen.GeneratePayload("1993-04-12", "남자", 0, 2, end, 7)

	require.NoError(t, err)
	assert.Equal(t, 7, payload.User.UserID)
	assert.Equal(t, "1993-04-12", payload.User.Birthdate)
	assert.Equal(t, 33, payload.User.Age)
	require.NotNil(t, payload.Period)
	assert.Equal(t, 2, payload.Period.Months)
	assert.Equal(t, 2*MonthlyPayments, payload.Count)
	assert.Len(t, payload.Payments, payload.Count)
}

func TestGeneratedPaymentsAreWellFormed(t *testing.T) {
	end := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	gen := NewSeededGenerator(1)

	payload, err := gen.GeneratePayload("", "여자", 29, 3, end, 1)
	require.NoError(t, err)

	ids := make(map[string]struct{})
	earliest := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	prev := ""
	for _, p := range payload.Payments {
		assert.Positive(t, p.Amount)
		assert.Zero(t, p.Amount%100, "amounts round to 100 KRW")
		assert.NotEmpty(t, p.Group)
		assert.NotEmpty(t, p.Category)

		require.Len(t, p.PaymentID, 8)
		_, dup := ids[p.PaymentID]
		assert.False(t, dup, "duplicate payment id %s", p.PaymentID)
		ids[p.PaymentID] = struct{}{}

		ts, ok := profile.ParseTime(p.PaymentTime)
		require.True(t, ok, "unparseable payment time %s", p.PaymentTime)
		assert.False(t, ts.Before(earliest), "payment before window: %s", p.PaymentTime)
		assert.False(t, ts.After(end.Add(24*time.Hour)), "payment after window: %s", p.PaymentTime)

		assert.GreaterOrEqual(t, p.PaymentTime, prev, "payments must be time-sorted")
		prev = p.PaymentTime
	}
}

func TestGeneratePayloadRequiresBirthdateOrAge(t *testing.T) {
	gen := NewSeededGenerator(1)

	_, err := gen.GeneratePayload("", "남자", 0, 6, time.Now(), 1)
	assert.Error(t, err)
}

func TestGeneratePayloadCompactBirthdate(t *testing.T) {
	gen := NewSeededGenerator(1)

	payload, err := gen.GeneratePayload("19960214", "남자", 0, 1, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 1)

	require.NoError(t, err)
	assert.Equal(t, "1996-02-14", payload.User.Birthdate)
	assert.Equal(t, 30, payload.User.Age)
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	end := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	a, err := NewSeededGenerator(99).GeneratePayload("1990-01-01", "여자", 0, 1, end, 1)
	require.NoError(t, err)
	b, err := NewSeededGenerator(99).GeneratePayload("1990-01-01", "여자", 0, 1, end, 1)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGeneratedCategoriesExistInAmountTable(t *testing.T) {
	end := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	payload, err := NewSeededGenerator(7).GeneratePayload("1995-06-01", "남자", 0, 2, end, 1)
	require.NoError(t, err)

	for _, p := range payload.Payments {
		band, ok := baseAmounts[p.Group][p.Category]
		require.True(t, ok, "unknown category %s/%s", p.Group, p.Category)
		assert.GreaterOrEqual(t, p.Amount, band.min-band.min%100)
	}
}
