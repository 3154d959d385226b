// Package taxonomy holds the static category tables: alias folding,
// archetype membership and the top-level category grouping. The tables
// are immutable after construction and are passed explicitly into the
// components that need them.
package taxonomy

import "sort"

// Archetype names one behavioral archetype and the categories that define it.
type Archetype struct {
	Name    string
	Members []string
}

// Group names one top-level category group and its member categories.
type Group struct {
	Name    string
	Members []string
}

// Tables bundles the alias map, the archetype table and the group table.
type Tables struct {
	aliases    map[string]string
	archetypes []Archetype
	groups     []Group
}

// New builds tables from explicit data. Nil maps/slices are allowed.
func New(aliases map[string]string, archetypes []Archetype, groups []Group) *Tables {
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &Tables{aliases: aliases, archetypes: archetypes, groups: groups}
}

// Default returns the built-in category tables.
func Default() *Tables {
	return &Tables{
		aliases: map[string]string{
			"인테리어":    "인테리어/가정용품",
			"가정용품":    "인테리어/가정용품",
			"가전제품":    "인테리어/가정용품",
			"음식배달서비스": "인터넷쇼핑",
		},
		archetypes: []Archetype{
			{Name: "핫플형", Members: []string{"경기관람", "전시장", "공연관람", "미용서비스", "교통서비스", "의복/의류", "패션잡화", "화장품소매", "취미/오락"}},
			{Name: "쇼핑형", Members: []string{"인터넷쇼핑", "인테리어", "의복/의류", "종합소매점", "패션잡화"}},
			{Name: "예술가형", Members: []string{"전시장", "공연관람", "인테리어", "의복/의류", "악기/공예", "예체능계학원"}},
			{Name: "뷰티형", Members: []string{"미용서비스", "사우나", "의복/의류", "패션잡화", "화장품소매", "예체능계학원"}},
			{Name: "여행가형", Members: []string{"차량관리/서비스", "교통서비스", "여행", "휴게시설", "숙박", "취미/오락", "외국어학원"}},
			{Name: "자기계발형", Members: []string{"유학대행", "악기/공예", "서적/도서", "사무/교육용품", "요가/단전/마사지", "일반스포츠", "예체능계학원", "외국어학원", "입시학원", "기술/직업교육학원", "독서실"}},
			{Name: "스포츠형", Members: []string{"경기관람", "의복/의류", "건강/기호식품", "요가/단전/마사지", "일반스포츠"}},
			{Name: "집돌이형", Members: []string{"인터넷쇼핑", "인테리어/가정용품", "인테리어", "가정용품", "음/식료품소매", "종합소매점", "가전제품", "음식배달서비스"}},
			{Name: "음식", Members: []string{"한식", "중식", "양식", "일식", "카페/디저트", "베이커리"}},
		},
		groups: []Group{
			{Name: "공연/전시", Members: []string{"경기관람", "전시장", "공연관람"}},
			{Name: "미디어/통신", Members: []string{"인터넷쇼핑", "기타결제"}},
			{Name: "생활서비스", Members: []string{"미용서비스", "차량관리/서비스", "교통서비스", "여행", "유학대행", "사우나", "휴게시설"}},
			{Name: "소매/유통", Members: []string{"인테리어/가정용품", "스포츠/레져용품", "음/식료품소매", "의복/의류", "종합소매점", "악기/공예", "패션잡화", "건강/기호식품", "서적/도서", "화장품소매", "사무/교육용품"}},
			{Name: "여가/오락", Members: []string{"요가/단전/마사지", "일반스포츠", "숙박", "취미/오락"}},
			{Name: "음식", Members: []string{"한식", "양식", "일식", "중식", "베이커리", "카페/디저트"}},
			{Name: "학문/교육", Members: []string{"예체능계학원", "외국어학원", "입시학원", "기술/직업교육학원", "독서실"}},
		},
	}
}

// Canonical folds a raw category label to its canonical name.
// Unmapped names are returned unchanged.
func (t *Tables) Canonical(name string) string {
	if c, ok := t.aliases[name]; ok {
		return c
	}
	return name
}

// Archetypes returns the archetype table in its fixed order.
func (t *Tables) Archetypes() []Archetype { return t.archetypes }

// Groups returns the top-level group table in its fixed order.
func (t *Tables) Groups() []Group { return t.groups }

// Pool builds the keyword vocabulary: the union of the given store
// names, every archetype member and every group member, canonicalized
// and sorted. This is the complete scoring surface, independent of any
// one person's transaction history.
func (t *Tables) Pool(storeNames []string) []string {
	seen := make(map[string]struct{})
	for _, n := range storeNames {
		seen[t.Canonical(n)] = struct{}{}
	}
	for _, a := range t.archetypes {
		for _, m := range a.Members {
			seen[t.Canonical(m)] = struct{}{}
		}
	}
	for _, g := range t.groups {
		for _, m := range g.Members {
			seen[t.Canonical(m)] = struct{}{}
		}
	}
	pool := make([]string, 0, len(seen))
	for n := range seen {
		pool = append(pool, n)
	}
	sort.Strings(pool)
	return pool
}
