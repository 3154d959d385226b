// Package archetype builds prototype vectors for the fixed archetype
// set and classifies profile vectors against them.
package archetype

import (
	"math"
	"sort"

	"spendmatch/internal/domain"
	"spendmatch/internal/embedding"
	"spendmatch/internal/taxonomy"
	"spendmatch/internal/vecmath"
)

// DefaultTemperature is the softmax temperature used when classifying.
const DefaultTemperature = 0.7

// Prototype is one archetype's averaged member embedding. An archetype
// whose members all lack embeddings carries the zero vector.
type Prototype struct {
	Name   string
	Vector []float64
}

// BuildPrototypes averages the member-category embeddings of each
// archetype and L2-normalizes the result. Deterministic for a fixed
// store and table, so the result may be cached for the store lifetime.
func BuildPrototypes(store *embedding.Store, tables *taxonomy.Tables) []Prototype {
	archetypes := tables.Archetypes()
	out := make([]Prototype, 0, len(archetypes))
	for _, a := range archetypes {
		sum := make([]float64, store.Dim())
		n := 0
		for _, member := range a.Members {
			vec, ok := store.VectorByName(tables.Canonical(member))
			if !ok {
				continue
			}
			for d := range sum {
				sum[d] += vec[d]
			}
			n++
		}
		if n > 0 {
			for d := range sum {
				sum[d] /= float64(n)
			}
			sum = vecmath.Normalize(sum)
		}
		out = append(out, Prototype{Name: a.Name, Vector: sum})
	}
	return out
}

// Classify scores a profile vector against every prototype and turns
// the cosine similarities into a probability distribution via a
// temperature-scaled, max-subtracted softmax. The result is sorted by
// descending probability (stable over the prototype order). An empty
// prototype set yields an empty result.
func Classify(u []float64, prototypes []Prototype, tau float64) []domain.TypeScore {
	if len(prototypes) == 0 {
		return nil
	}
	if tau <= 0 {
		tau = DefaultTemperature
	}
	sims := make([]float64, len(prototypes))
	maxSim := math.Inf(-1)
	for i, p := range prototypes {
		sims[i] = vecmath.Cosine(u, p.Vector)
		if sims[i] > maxSim {
			maxSim = sims[i]
		}
	}
	exps := make([]float64, len(sims))
	sum := 0.0
	for i, s := range sims {
		exps[i] = math.Exp((s - maxSim) / tau)
		sum += exps[i]
	}
	out := make([]domain.TypeScore, len(prototypes))
	for i, p := range prototypes {
		out[i] = domain.TypeScore{Name: p.Name, Prob: exps[i] / sum, Sim: sims[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Prob > out[j].Prob })
	return out
}
