// Package generate produces synthetic payment histories for demo and
// cold-start users, sampled from gendered spending personas.
package generate

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"spendmatch/internal/domain"
)

// MonthlyPayments is how many payments each generated month carries.
const MonthlyPayments = 30

// Generator samples synthetic payment histories. Not safe for
// concurrent use; create one per request or guard externally.
type Generator struct {
	rng     *rand.Rand
	usedIDs map[string]struct{}
}

// NewGenerator creates a generator seeded from the clock.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator creates a deterministic generator for tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		usedIDs: make(map[string]struct{}),
	}
}

// GeneratePayload builds the full analyze payload for one synthetic
// user: identity block, generation period and sorted payments.
// Either birthdate (YYYY-MM-DD, also accepting / separators and the
// compact YYYYMMDD form) or a positive age must be provided.
func (g *Generator) GeneratePayload(birthdate, gender string, age, months int, endDate time.Time, userID int) (domain.Payload, error) {
	if endDate.IsZero() {
		endDate = time.Now()
	}
	if months <= 0 {
		months = 6
	}
	if birthdate == "" {
		if age <= 0 {
			return domain.Payload{}, fmt.Errorf("generate: birthdate or age required")
		}
		birthdate = birthdateFromAge(age, endDate)
	}
	bdt, err := parseBirthdate(birthdate)
	if err != nil {
		return domain.Payload{}, err
	}
	age = calcAge(bdt, endDate)

	payments := g.generateForUser(gender, months, endDate, userID)
	return domain.Payload{
		User: domain.User{
			UserID:    userID,
			Birthdate: bdt.Format("2006-01-02"),
			Gender:    gender,
			Age:       age,
		},
		Period:   &domain.Period{Months: months, EndDate: endDate.Format("2006-01-02")},
		Count:    len(payments),
		Payments: payments,
	}, nil
}

func (g *Generator) generateForUser(gender string, months int, endDate time.Time, userID int) []domain.Transaction {
	p := g.selectPersona(gender)
	var out []domain.Transaction
	for m := 0; m < months; m++ {
		month := int(endDate.Month()) - m
		year := endDate.Year()
		for month <= 0 {
			month += 12
			year--
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, endDate.Location())
		end := start.AddDate(0, 1, -1)
		if m == 0 && endDate.Before(end) {
			end = endDate
		}
		out = append(out, g.generateMonth(p, start, end, MonthlyPayments, userID)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentTime < out[j].PaymentTime })
	return out
}

// selectPersona picks one persona for the gender, blending in a second
// one 20% of the time to avoid an overly clean population.
func (g *Generator) selectPersona(gender string) persona {
	pool := femalePersonas
	if gender == "남자" || strings.EqualFold(gender, "male") {
		pool = malePersonas
	}
	names := make([]string, 0, len(pool))
	for n := range pool {
		names = append(names, n)
	}
	sort.Strings(names)
	first := names[g.rng.Intn(len(names))]
	p := pool[first]
	if g.rng.Float64() < 0.2 && len(names) > 1 {
		second := first
		for second == first {
			second = names[g.rng.Intn(len(names))]
		}
		p = mixPersonas(p, pool[second], 0.7+g.rng.Float64()*0.2)
	}
	return p
}

func mixPersonas(p1, p2 persona, w1 float64) persona {
	out := persona{
		budget:     p1.budget*w1 + p2.budget*(1-w1),
		categories: make(map[string]categoryPlan),
	}
	groups := make(map[string]struct{})
	for c := range p1.categories {
		groups[c] = struct{}{}
	}
	for c := range p2.categories {
		groups[c] = struct{}{}
	}
	for c := range groups {
		plan1, ok1 := p1.categories[c]
		plan2, ok2 := p2.categories[c]
		switch {
		case ok1 && ok2:
			prefs := make(map[string]float64)
			total := 0.0
			for s, w := range plan1.prefs {
				prefs[s] += w * w1
			}
			for s, w := range plan2.prefs {
				prefs[s] += w * (1 - w1)
			}
			for _, w := range prefs {
				total += w
			}
			if total > 0 {
				for s := range prefs {
					prefs[s] /= total
				}
			}
			out.categories[c] = categoryPlan{
				freq:  int(float64(plan1.freq)*w1 + float64(plan2.freq)*(1-w1)),
				prefs: prefs,
			}
		case ok1:
			out.categories[c] = plan1
		default:
			out.categories[c] = plan2
		}
	}
	return out
}

func (g *Generator) generateMonth(p persona, start, end time.Time, count, userID int) []domain.Transaction {
	groups := make([]string, 0, len(p.categories))
	totalFreq := 0
	for c, plan := range p.categories {
		if _, ok := baseAmounts[c]; !ok {
			continue
		}
		groups = append(groups, c)
		totalFreq += plan.freq
	}
	if len(groups) == 0 || totalFreq == 0 {
		return nil
	}
	sort.Strings(groups)

	assigned := make(map[string]int, len(groups))
	used := 0
	for _, c := range groups {
		n := count * p.categories[c].freq / totalFreq
		if n < 1 {
			n = 1
		}
		assigned[c] = n
		used += n
	}
	// Hand leftovers to the highest-share groups first; when the min-1
	// bumps overshoot, take the excess back from them too.
	byShare := append([]string(nil), groups...)
	sort.Slice(byShare, func(i, j int) bool {
		fi, fj := p.categories[byShare[i]].freq, p.categories[byShare[j]].freq
		if fi != fj {
			return fi > fj
		}
		return byShare[i] < byShare[j]
	})
	for i := 0; used < count; i = (i + 1) % len(byShare) {
		assigned[byShare[i]]++
		used++
	}
	for i := 0; used > count; i = (i + 1) % len(byShare) {
		if assigned[byShare[i]] > 1 {
			assigned[byShare[i]]--
			used--
		}
	}

	var records []domain.Transaction
	for _, group := range groups {
		subs, weights := validSubcategories(group, p.categories[group].prefs)
		if len(subs) == 0 {
			continue
		}
		for i := 0; i < assigned[group]; i++ {
			sub := subs[g.weightedIndex(weights)]
			ts := g.randomTime(start, end, group)
			records = append(records, domain.Transaction{
				UserID:      userID,
				PaymentTime: ts.Format("2006-01-02 15:04:05"),
				Group:       group,
				Category:    sub,
				PaymentID:   g.uniqueID(),
				Amount:      g.amount(group, sub, p.budget),
			})
		}
	}
	return records
}

func validSubcategories(group string, prefs map[string]float64) ([]string, []float64) {
	base := baseAmounts[group]
	subs := make([]string, 0, len(prefs))
	for s := range prefs {
		if _, ok := base[s]; ok {
			subs = append(subs, s)
		}
	}
	sort.Strings(subs)
	weights := make([]float64, len(subs))
	for i, s := range subs {
		weights[i] = prefs[s]
	}
	return subs, weights
}

// amount samples a gaussian around the budget-scaled average, clamped
// to the budget-adjusted band and rounded to 100 KRW.
func (g *Generator) amount(group, sub string, budget float64) int64 {
	base, ok := baseAmounts[group][sub]
	if !ok {
		return 10000
	}
	lo := float64(base.min)
	if scaled := float64(base.min) * budget * 0.8; scaled > lo {
		lo = scaled
	}
	hi := float64(base.max)
	if scaled := float64(base.max) * budget * 1.2; scaled < hi {
		hi = scaled
	}
	avg := float64(base.avg) * budget
	std := (hi - lo) / 6
	if std < 1 {
		std = 1
	}
	val := g.rng.NormFloat64()*std + avg
	if val < lo {
		val = lo
	}
	if val > hi {
		val = hi
	}
	return int64(val/100+0.5) * 100
}

func (g *Generator) randomTime(start, end time.Time, group string) time.Time {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	day := start.AddDate(0, 0, g.rng.Intn(days))
	hw, ok := hourWeights[group]
	if !ok {
		hw = defaultHourWeights
	}
	hour := g.weightedIndex(hw)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, g.rng.Intn(60), g.rng.Intn(60), 0, day.Location())
}

func (g *Generator) weightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := g.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// uniqueID draws uuids from the generator's own rng so seeded runs
// reproduce payment ids too.
func (g *Generator) uniqueID() string {
	for {
		u, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			u = uuid.New()
		}
		id := strings.ToUpper(u.String()[:8])
		if _, ok := g.usedIDs[id]; !ok {
			g.usedIDs[id] = struct{}{}
			return id
		}
	}
}

func birthdateFromAge(age int, ref time.Time) string {
	day := ref.Day()
	if day > 28 {
		day = 28
	}
	return fmt.Sprintf("%04d-%02d-%02d", ref.Year()-age, ref.Month(), day)
}

func parseBirthdate(s string) (time.Time, error) {
	s = strings.ReplaceAll(s, "/", "-")
	if !strings.Contains(s, "-") && len(s) == 8 {
		s = s[:4] + "-" + s[4:6] + "-" + s[6:]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("generate: bad birthdate %q: %w", s, err)
	}
	return t, nil
}

func calcAge(birthdate, ref time.Time) int {
	age := ref.Year() - birthdate.Year()
	if ref.Month() < birthdate.Month() ||
		(ref.Month() == birthdate.Month() && ref.Day() < birthdate.Day()) {
		age--
	}
	return age
}
