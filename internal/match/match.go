// Package match computes pairwise compatibility between profiles and
// ranks a reference profile against a candidate population.
package match

import (
	"math"
	"sort"

	"spendmatch/internal/domain"
	"spendmatch/internal/vecmath"
)

// Options control score composition for a one-to-many match.
type Options struct {
	// KeywordWeight and TypeWeight blend keyword and archetype
	// similarity into the composite score.
	KeywordWeight float64
	TypeWeight    float64
	// Beta discounts keyword similarity by the shared-dislike cosine.
	Beta float64
	// ExcludeIDs are candidate ids to leave out of the ranking.
	ExcludeIDs []int
}

// DefaultOptions returns the standard 0.7/0.3 blend with beta 0.5.
func DefaultOptions() Options {
	return Options{KeywordWeight: 0.7, TypeWeight: 0.3, Beta: 0.5}
}

// OneToMany scores every candidate against ref and returns them sorted
// by descending score (ascending user id on ties) with a dense rank
// 1..N. The reference's own id, excluded ids, and candidates without a
// user id are skipped. An empty candidate list yields an empty result.
func OneToMany(ref domain.Profile, candidates []domain.Profile, opts Options) []domain.MatchResult {
	if opts.KeywordWeight == 0 && opts.TypeWeight == 0 {
		opts = Options{KeywordWeight: 0.7, TypeWeight: 0.3, Beta: opts.Beta, ExcludeIDs: opts.ExcludeIDs}
	}
	excluded := make(map[int]struct{}, len(opts.ExcludeIDs))
	for _, id := range opts.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	// Every profile is projected into shared dimension spaces so the
	// vectors being compared are consistent no matter which subset of
	// keywords or archetypes each profile reported.
	kwDims, typeDims := sharedDims(ref, candidates)
	refPos, refNeg := keywordVectors(ref, kwDims)
	refType := typeVector(ref, typeDims)

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, cand := range candidates {
		if cand.UserID == 0 || cand.UserID == ref.UserID {
			continue
		}
		if _, skip := excluded[cand.UserID]; skip {
			continue
		}
		candPos, candNeg := keywordVectors(cand, kwDims)
		candType := typeVector(cand, typeDims)

		kwSim := keywordSimilarity(refPos, refNeg, candPos, candNeg, opts.Beta)
		typeSim := vecmath.Cosine(refType, candType)
		if typeSim < 0 {
			// Probabilities cannot legitimately produce a negative
			// cosine; guard floating-point underflow anyway.
			typeSim = 0
		}
		score := vecmath.Clamp01(opts.KeywordWeight*kwSim + opts.TypeWeight*typeSim)
		results = append(results, domain.MatchResult{
			UserID:  cand.UserID,
			Score:   score,
			Percent: int(math.Round(score * 100)),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].UserID < results[j].UserID
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// keywordSimilarity blends preference and anti-preference alignment:
// shared positive interests drive affinity, shared dislikes discount
// it rather than counting as an independent positive signal.
func keywordSimilarity(refPos, refNeg, candPos, candNeg []float64, beta float64) float64 {
	posSim := vecmath.Cosine(refPos, candPos)
	negSim := vecmath.Cosine(refNeg, candNeg)
	return vecmath.Clamp01(posSim * (1.0 - beta*negSim))
}

func sharedDims(ref domain.Profile, candidates []domain.Profile) (kwDims, typeDims []string) {
	kwSet := make(map[string]struct{})
	typeSet := make(map[string]struct{})
	collect := func(p domain.Profile) {
		for _, k := range p.Keywords {
			kwSet[k.Name] = struct{}{}
		}
		for _, t := range p.Types {
			typeSet[t.Name] = struct{}{}
		}
	}
	collect(ref)
	for _, c := range candidates {
		collect(c)
	}
	kwDims = sortedKeys(kwSet)
	typeDims = sortedKeys(typeSet)
	return kwDims, typeDims
}

// keywordVectors splits a profile's keyword scores over dims into the
// positive component and the sign-flipped negative component. A score
// of exactly zero lands in neither.
func keywordVectors(p domain.Profile, dims []string) (pos, neg []float64) {
	scores := make(map[string]float64, len(p.Keywords))
	for _, k := range p.Keywords {
		scores[k.Name] = k.Score
	}
	pos = make([]float64, len(dims))
	neg = make([]float64, len(dims))
	for i, name := range dims {
		s := scores[name]
		switch {
		case s > 0:
			pos[i] = s
		case s < 0:
			neg[i] = -s
		}
	}
	return pos, neg
}

func typeVector(p domain.Profile, dims []string) []float64 {
	probs := make(map[string]float64, len(p.Types))
	for _, t := range p.Types {
		probs[t.Name] = t.Prob
	}
	v := make([]float64, len(dims))
	for i, name := range dims {
		v[i] = probs[name]
	}
	return v
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
