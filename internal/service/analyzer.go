// Package service wires the embedding store, taxonomy tables and the
// inference components into the operations the CLI, HTTP and TUI
// surfaces call.
package service

import (
	"math"
	"time"

	"spendmatch/internal/archetype"
	"spendmatch/internal/domain"
	"spendmatch/internal/embedding"
	"spendmatch/internal/keyword"
	"spendmatch/internal/match"
	"spendmatch/internal/profile"
	"spendmatch/internal/taxonomy"
)

// Analyzer derives full profiles from payment payloads. Prototypes and
// the keyword pool are built once per store and reused; everything else
// is pure per-call computation, so one Analyzer serves concurrent
// callers without locking.
type Analyzer struct {
	store                *embedding.Store
	tables               *taxonomy.Tables
	builder              *profile.Builder
	prototypes           []archetype.Prototype
	pool                 []string
	tau                  float64
	includeMissingAsZero bool
}

// NewAnalyzer builds an Analyzer over the given store and tables.
func NewAnalyzer(store *embedding.Store, tables *taxonomy.Tables, tau float64, includeMissingAsZero bool) *Analyzer {
	if tau <= 0 {
		tau = archetype.DefaultTemperature
	}
	return &Analyzer{
		store:                store,
		tables:               tables,
		builder:              profile.NewBuilder(store, tables),
		prototypes:           archetype.BuildPrototypes(store, tables),
		pool:                 tables.Pool(store.Names()),
		tau:                  tau,
		includeMissingAsZero: includeMissingAsZero,
	}
}

// Analyze computes the archetype distribution, the full keyword
// affinity list and the per-group detail for one person. A payload
// with no usable transactions yields the zero-vector profile (all
// scores 0) rather than an error.
func (a *Analyzer) Analyze(payload domain.Payload) (domain.Profile, error) {
	u := a.builder.Build(payload.Payments)
	return domain.Profile{
		UserID:   payload.User.UserID,
		Summary:  summarize(payload.Payments),
		Types:    archetype.Classify(u, a.prototypes, a.tau),
		Keywords: keyword.Score(u, a.pool, a.store, a.includeMissingAsZero),
		Groups:   keyword.ScoreGroups(u, a.tables, a.store, a.includeMissingAsZero),
	}, nil
}

// Vocabulary returns the full keyword pool the analyzer scores over.
func (a *Analyzer) Vocabulary() []string {
	out := make([]string, len(a.pool))
	copy(out, a.pool)
	return out
}

func summarize(transactions []domain.Transaction) domain.Summary {
	s := domain.Summary{Transactions: len(transactions)}
	var start, end time.Time
	for _, tx := range transactions {
		ts, ok := profile.ParseTime(tx.PaymentTime)
		if !ok {
			continue
		}
		if start.IsZero() || ts.Before(start) {
			start = ts
		}
		if ts.After(end) {
			end = ts
		}
	}
	const layout = "2006-01-02 15:04:05"
	if !start.IsZero() {
		s.Start = start.Format(layout)
		s.End = end.Format(layout)
	}
	return s
}

// TypeProb is one archetype probability in the preferred rendering.
type TypeProb struct {
	Name string  `json:"name"`
	Prob float64 `json:"prob"`
}

// Preferred is the condensed response shape the mobile clients expect:
// archetype probabilities without the food pseudo-archetype, the full
// keyword list, and one focus group's detail.
type Preferred struct {
	MainType []TypeProb            `json:"main_type"`
	Keyword  []domain.KeywordScore `json:"keyword"`
	Foods    []domain.KeywordScore `json:"foods"`
}

// PreferredShape renders a profile for presentation: the focus-group
// section is emitted as "foods", the food archetype is dropped and the
// remaining probabilities renormalized, and values round to 2 decimals.
func PreferredShape(p domain.Profile, focusGroup string) Preferred {
	types := make([]TypeProb, 0, len(p.Types))
	sum := 0.0
	for _, t := range p.Types {
		if t.Name == "음식" {
			continue
		}
		types = append(types, TypeProb{Name: t.Name, Prob: t.Prob})
		sum += t.Prob
	}
	if sum == 0 {
		sum = 1.0
	}
	for i := range types {
		types[i].Prob = round2(types[i].Prob / sum)
	}

	keywords := make([]domain.KeywordScore, len(p.Keywords))
	for i, k := range p.Keywords {
		keywords[i] = domain.KeywordScore{Name: k.Name, Score: round2(k.Score)}
	}

	focus := p.Groups[focusGroup]
	foods := make([]domain.KeywordScore, len(focus))
	for i, k := range focus {
		foods[i] = domain.KeywordScore{Name: k.Name, Score: round2(k.Score)}
	}
	return Preferred{MainType: types, Keyword: keywords, Foods: foods}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Matcher ranks candidate profiles against a reference with fixed
// match options.
type Matcher struct {
	opts match.Options
}

// NewMatcher creates a Matcher with the given options.
func NewMatcher(opts match.Options) *Matcher { return &Matcher{opts: opts} }

// Match runs the one-to-many ranking.
func (m *Matcher) Match(ref domain.Profile, cands []domain.Profile) ([]domain.MatchResult, error) {
	return match.OneToMany(ref, cands, m.opts), nil
}
