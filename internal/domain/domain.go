package domain

// Transaction is one payment event from a person's history.
type Transaction struct {
	UserID      int    `json:"user_id,omitempty"`
	PaymentTime string `json:"payment_time"`
	Group       string `json:"category,omitempty"`
	Category    string `json:"subcategory"`
	PaymentID   string `json:"payment_id,omitempty"`
	Amount      int64  `json:"payment_amount"`
}

// User carries the identity fields attached to an analyze payload.
type User struct {
	UserID    int    `json:"user_id,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Age       int    `json:"age,omitempty"`
}

// Period describes the generation window of a payload.
type Period struct {
	Months  int    `json:"months"`
	EndDate string `json:"end_date"`
}

// Payload is the analyze input: one person plus their payment history.
type Payload struct {
	User     User          `json:"user"`
	Period   *Period       `json:"period,omitempty"`
	Count    int           `json:"count,omitempty"`
	Payments []Transaction `json:"payments"`
}

// TypeScore is one archetype with its classification probability
// and the raw cosine similarity the probability was derived from.
type TypeScore struct {
	Name string  `json:"name"`
	Prob float64 `json:"prob"`
	Sim  float64 `json:"sim"`
}

// KeywordScore is one vocabulary term with its cosine affinity.
type KeywordScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Summary describes the transaction window a profile was built from.
type Summary struct {
	Transactions int    `json:"transactions"`
	Start        string `json:"start"`
	End          string `json:"end"`
}

// Profile is the full inference result for one person.
// Types and Keywords are complete (never truncated); Groups holds the
// same keyword scoring restricted to each top-level category group.
type Profile struct {
	UserID   int                       `json:"user_id"`
	Summary  Summary                   `json:"summary"`
	Types    []TypeScore               `json:"types"`
	Keywords []KeywordScore            `json:"keywords"`
	Groups   map[string][]KeywordScore `json:"groups"`
}

// MatchResult is one ranked candidate from a one-to-many match.
type MatchResult struct {
	UserID  int     `json:"user_id"`
	Score   float64 `json:"score"`
	Percent int     `json:"matching_percent"`
	Rank    int     `json:"matching_rank"`
}

// Analyzer derives a Profile from a payload of transactions.
type Analyzer interface {
	Analyze(payload Payload) (Profile, error)
}

// Matcher ranks candidate profiles against a reference profile.
type Matcher interface {
	Match(ref Profile, candidates []Profile) ([]MatchResult, error)
}
