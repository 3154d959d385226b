// Package keyword scores a profile vector against the category
// keyword vocabulary and against each top-level category group.
package keyword

import (
	"sort"

	"spendmatch/internal/domain"
	"spendmatch/internal/embedding"
	"spendmatch/internal/taxonomy"
	"spendmatch/internal/vecmath"
)

// Score computes cosine affinity of u against every term in pool.
// Terms with no resolvable embedding are emitted with score 0 when
// includeMissingAsZero is set, otherwise omitted. Output is sorted by
// descending score with ascending name as the tie-break; the
// lexicographic tie-break keeps output ordering reproducible.
func Score(u []float64, pool []string, store *embedding.Store, includeMissingAsZero bool) []domain.KeywordScore {
	out := make([]domain.KeywordScore, 0, len(pool))
	for _, term := range pool {
		vec, ok := store.VectorByName(term)
		if !ok {
			if includeMissingAsZero {
				out = append(out, domain.KeywordScore{Name: term, Score: 0.0})
			}
			continue
		}
		out = append(out, domain.KeywordScore{Name: term, Score: vecmath.Cosine(u, vec)})
	}
	sortScores(out)
	return out
}

// ScoreGroups scores u against each top-level group's member
// categories, independently sorted the same way as Score.
func ScoreGroups(u []float64, tables *taxonomy.Tables, store *embedding.Store, includeMissingAsZero bool) map[string][]domain.KeywordScore {
	out := make(map[string][]domain.KeywordScore, len(tables.Groups()))
	for _, g := range tables.Groups() {
		items := make([]domain.KeywordScore, 0, len(g.Members))
		for _, member := range g.Members {
			name := tables.Canonical(member)
			vec, ok := store.VectorByName(name)
			if !ok {
				if includeMissingAsZero {
					items = append(items, domain.KeywordScore{Name: name, Score: 0.0})
				}
				continue
			}
			items = append(items, domain.KeywordScore{Name: name, Score: vecmath.Cosine(u, vec)})
		}
		sortScores(items)
		out[g.Name] = items
	}
	return out
}

func sortScores(scores []domain.KeywordScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Name < scores[j].Name
	})
}
