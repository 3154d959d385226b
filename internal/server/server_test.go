package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendmatch/internal/candidates"
	"spendmatch/internal/domain"
	"spendmatch/internal/embedding"
	"spendmatch/internal/match"
	"spendmatch/internal/service"
	"spendmatch/internal/taxonomy"
)

func testServer(t *testing.T, store *candidates.Store) *Server {
	t.Helper()
	emb, err := embedding.NewStore(
		map[string]int{"한식": 1, "중식": 2, "여행": 3},
		[][]float64{
			{0, 0},
			{1, 0},
			{0, 1},
			{-1, 0},
		},
	)
	require.NoError(t, err)
	tables := taxonomy.New(nil,
		[]taxonomy.Archetype{
			{Name: "음식", Members: []string{"한식", "중식"}},
			{Name: "여행가형", Members: []string{"여행"}},
		},
		[]taxonomy.Group{
			{Name: "음식", Members: []string{"한식", "중식"}},
		},
	)
	analyzer := service.NewAnalyzer(emb, tables, 0.7, true)
	if store == nil {
		store = candidates.NewStore()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(analyzer, match.DefaultOptions(), store, "음식", logger)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echoContentType, echoJSONMime)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSONMime    = "application/json"
)

func TestHealthz(t *testing.T) {
	rec := do(t, testServer(t, nil), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t, nil)
	do(t, s, http.MethodGet, "/healthz", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "spendmatch_http_requests_total")
}

func TestPaymentsValidation(t *testing.T) {
	s := testServer(t, nil)

	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/ai-api/v1/payments?user_id=1&birthdate=1995-01-01", "").Code,
		"gender is required")
	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/ai-api/v1/payments?gender=여자&birthdate=1995-01-01", "").Code,
		"user_id is required")
	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/ai-api/v1/payments?gender=여자&user_id=1", "").Code,
		"birthdate or age is required")
	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/ai-api/v1/payments?gender=여자&user_id=1&age=25&months=0", "").Code,
		"months must be positive")
}

func TestPaymentsGeneratesHistory(t *testing.T) {
	s := testServer(t, nil)

	rec := do(t, s, http.MethodPost, "/ai-api/v1/payments?gender=남자&user_id=5&birthdate=1993-04-12&months=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var payload domain.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 5, payload.User.UserID)
	assert.Equal(t, 60, payload.Count)
	require.Len(t, payload.Payments, 60)
	for _, p := range payload.Payments {
		assert.Zero(t, p.UserID, "per-payment user ids are stripped")
		assert.Positive(t, p.Amount)
	}
}

func TestProfileCosine(t *testing.T) {
	s := testServer(t, nil)
	body := `{
		"user": {"user_id": 42},
		"payments": [
			{"payment_time": "2026-08-01 12:30:00", "subcategory": "한식", "payment_amount": 12000},
			{"payment_time": "2026-08-03 19:05:00", "subcategory": "한식", "payment_amount": 9000}
		]
	}`

	rec := do(t, s, http.MethodPost, "/ai-api/v1/profile/cosine", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var pref service.Preferred
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pref))
	// Food archetype is dropped from main_type; its detail lands in foods.
	require.Len(t, pref.MainType, 1)
	assert.Equal(t, "여행가형", pref.MainType[0].Name)
	require.NotEmpty(t, pref.Foods)
	assert.Equal(t, "한식", pref.Foods[0].Name)
}

func TestProfileCosineMalformedBody(t *testing.T) {
	rec := do(t, testServer(t, nil), http.MethodPost, "/ai-api/v1/profile/cosine", `{"payments": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchUsersInlineCandidates(t *testing.T) {
	s := testServer(t, nil)
	body := `{
		"ref": {"user_id": 1, "keywords": [{"name": "한식", "score": 1}]},
		"candidates": [
			{"user_id": 2, "keywords": [{"name": "한식", "score": 1}]},
			{"user_id": 3, "keywords": [{"name": "여행", "score": 1}]}
		]
	}`

	rec := do(t, s, http.MethodPost, "/ai-api/v1/match/users", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].UserID)
	assert.Equal(t, 1, results[0].Rank)
}

func TestMatchUsersFallsBackToStore(t *testing.T) {
	store := candidates.NewStore()
	store.Replace([]domain.Profile{
		{UserID: 2, Keywords: []domain.KeywordScore{{Name: "한식", Score: 1}}},
		{UserID: 3, Keywords: []domain.KeywordScore{{Name: "한식", Score: 0.5}}},
	})
	s := testServer(t, store)
	body := `{"ref": {"user_id": 1, "keywords": [{"name": "한식", "score": 1}]}}`

	rec := do(t, s, http.MethodPost, "/ai-api/v1/match/users", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results, 2)
}

func TestMatchUsersHonorsExcludeIDs(t *testing.T) {
	s := testServer(t, nil)
	body := `{
		"ref": {"user_id": 1, "keywords": [{"name": "한식", "score": 1}]},
		"candidates": [
			{"user_id": 2, "keywords": [{"name": "한식", "score": 1}]},
			{"user_id": 3, "keywords": [{"name": "한식", "score": 1}]}
		],
		"exclude_ids": [2]
	}`

	rec := do(t, s, http.MethodPost, "/ai-api/v1/match/users", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].UserID)
}

func TestMatchUsersValidation(t *testing.T) {
	s := testServer(t, nil)

	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/ai-api/v1/match/users", `{"candidates": []}`).Code,
		"ref is required")
	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/ai-api/v1/match/users",
			`{"ref": {"user_id": 1, "keywords": [{"name": "한식", "score": 1}]}}`).Code,
		"no candidates anywhere")
}
