package client

type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

type Bout struct {
	Date       string `json:"date"`
	Opponent   string `json:"opponent"`
	OpponentID string `json:"opponent_id"`
	Result     string `json:"result"`
}

type BoxerProfile struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Nickname     string            `json:"nickname"`
	Record       Record            `json:"record"`
	KOs          int               `json:"kos"`
	PersonalInfo map[string]string `json:"personal_info"`
	Bouts        []Bout            `json:"bouts"`
}

type SearchResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Record    string `json:"record"`
	LastFight string `json:"last_fight"`
}

type RatingEntry struct {
	Rank   int     `json:"rank"`
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Record string  `json:"record"`
}

type RatingsResponse struct {
	Division string        `json:"division"`
	Ratings  []RatingEntry `json:"ratings"`
}

type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
