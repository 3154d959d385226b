// Package profile builds a person's behavioral vector from their
// categorized payment history.
package profile

import (
	"math"
	"sort"
	"time"

	"spendmatch/internal/domain"
	"spendmatch/internal/embedding"
	"spendmatch/internal/taxonomy"
	"spendmatch/internal/vecmath"
)

// Signal weights for combining per-category engagement into one weight.
// Fixed policy constants of the system.
const (
	WeightAmount  = 0.45
	WeightCount   = 0.35
	WeightRecency = 0.20

	// HalfLifeDays is the recency decay half-life.
	HalfLifeDays = 45.0
)

// Builder aggregates transactions into a unit profile vector using the
// category embedding store. Pure: no state survives a Build call.
type Builder struct {
	store  *embedding.Store
	tables *taxonomy.Tables
}

// NewBuilder creates a Builder over the given store and tables.
func NewBuilder(store *embedding.Store, tables *taxonomy.Tables) *Builder {
	return &Builder{store: store, tables: tables}
}

type categoryStats struct {
	count   int
	amount  float64
	recency float64
}

// Build derives the profile vector for one person's transactions.
// Categories without a resolvable embedding contribute nothing. The
// result is L2-normalized; when no transaction resolves to an
// embedding (or the input is empty) the zero vector is returned so
// callers can treat it as insufficient data.
func (b *Builder) Build(transactions []domain.Transaction) []float64 {
	type parsed struct {
		category string
		ts       time.Time
		amount   float64
	}
	records := make([]parsed, 0, len(transactions))
	var newest time.Time
	for _, tx := range transactions {
		ts, ok := ParseTime(tx.PaymentTime)
		if !ok {
			continue
		}
		records = append(records, parsed{
			category: b.tables.Canonical(tx.Category),
			ts:       ts,
			amount:   float64(tx.Amount),
		})
		if ts.After(newest) {
			newest = ts
		}
	}
	if len(records) == 0 {
		return make([]float64, b.store.Dim())
	}

	// Recency is anchored on the newest transaction across the whole
	// history, not per category.
	lambda := math.Ln2 / HalfLifeDays
	stats := make(map[string]*categoryStats)
	for _, r := range records {
		st := stats[r.category]
		if st == nil {
			st = &categoryStats{}
			stats[r.category] = st
		}
		st.count++
		st.amount += r.amount
		days := math.Floor(newest.Sub(r.ts).Hours() / 24)
		if days < 0 {
			days = 0
		}
		if decay := math.Exp(-lambda * days); decay > st.recency {
			st.recency = decay
		}
	}

	categories := make([]string, 0, len(stats))
	for c := range stats {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	counts := make([]float64, len(categories))
	amounts := make([]float64, len(categories))
	recencies := make([]float64, len(categories))
	for i, c := range categories {
		st := stats[c]
		counts[i] = float64(st.count)
		amounts[i] = math.Log1p(st.amount)
		recencies[i] = st.recency
	}
	countN := minMaxNormalize(counts)
	amountN := minMaxNormalize(amounts)
	recencyN := maxNormalize(recencies)

	sum := make([]float64, b.store.Dim())
	weightSum := 0.0
	for i, c := range categories {
		vec, ok := b.store.VectorByName(c)
		if !ok {
			continue
		}
		w := WeightAmount*amountN[i] + WeightCount*countN[i] + WeightRecency*recencyN[i]
		for d := range sum {
			sum[d] += vec[d] * w
		}
		weightSum += w
	}
	if weightSum == 0 {
		return make([]float64, b.store.Dim())
	}
	for d := range sum {
		sum[d] /= weightSum
	}
	return vecmath.Normalize(sum)
}

// minMaxNormalize scales values into [0,1]. When every value is equal
// the result is a constant 1.0, which keeps single-category histories
// well defined instead of dividing by zero.
func minMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// maxNormalize divides values by their maximum.
func maxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	hi := 0.0
	for _, v := range values {
		if v > hi {
			hi = v
		}
	}
	if hi <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / hi
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses the ISO-8601 timestamp shapes the payment feed
// produces.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
