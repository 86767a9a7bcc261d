package entity

// Record is a win-loss-draw tally as shown on the upstream profile.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Bout is a single row of a boxer's fight history.
type Bout struct {
	Date       string `json:"date"`
	Opponent   string `json:"opponent"`
	OpponentID string `json:"opponent_id"`
	Result     string `json:"result"`
}

// BoxerProfile is the normalized form of an upstream boxer page.
// Record is not cross-checked against len(Bouts).
type BoxerProfile struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Nickname     string            `json:"nickname"`
	Record       Record            `json:"record"`
	KOs          int               `json:"kos"`
	PersonalInfo map[string]string `json:"personal_info"`
	Bouts        []Bout            `json:"bouts"`
}

// SearchResult is one row of an upstream boxer search. Record is the
// free-text summary from the results table, not a structured Record.
type SearchResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Record    string `json:"record"`
	LastFight string `json:"last_fight"`
}

// RatingEntry is one ranked boxer inside a division.
type RatingEntry struct {
	Rank   int     `json:"rank"`
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Record string  `json:"record"`
}

// RatingsResponse holds a division's ratings in upstream document order.
// Division is the name the caller asked for, not the upstream code.
type RatingsResponse struct {
	Division string        `json:"division"`
	Ratings  []RatingEntry `json:"ratings"`
}
