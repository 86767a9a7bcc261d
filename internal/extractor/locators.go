package extractor

// The locators below are the only place that knows the upstream document
// shape. Column indexes are zero-based positions of <td> cells in a row.

// boxerLinkMarker identifies anchors pointing at a boxer profile.
const boxerLinkMarker = "/proboxer/"

type profileLocator struct {
	Regions       string // any match means the page is a profile
	Name          string
	Nickname      string
	WinBadge      string
	LossBadge     string
	DrawBadge     string
	KOBadge       string
	InfoTable     string
	InfoRows      string
	BoutRows      string
	BoutDateCol   int
	BoutResultCol int
}

var profileShape = profileLocator{
	Regions:       ".boxerTitle, .profileWLD, .dataTable",
	Name:          ".boxerTitle h1",
	Nickname:      ".boxerTitle span.nickname",
	WinBadge:      ".profileWLD .bgW",
	LossBadge:     ".profileWLD .bgL",
	DrawBadge:     ".profileWLD .bgD",
	KOBadge:       ".profileWLD .textWon",
	InfoTable:     ".dataTable:not(.fighterTable)",
	InfoRows:      "tr",
	BoutRows:      ".dataTable.fighterTable tbody tr",
	BoutDateCol:   0,
	BoutResultCol: 6,
}

type searchLocator struct {
	Rows         string
	RecordCol    int
	LastFightCol int
}

var searchShape = searchLocator{
	Rows:         ".dataTable tbody tr",
	RecordCol:    3,
	LastFightCol: 4,
}

type ratingsLocator struct {
	Rows      string
	RankCol   int
	PointsCol int
	RecordCol int
}

var ratingsShape = ratingsLocator{
	Rows:      ".dataTable tbody tr",
	RankCol:   0,
	PointsCol: 3,
	RecordCol: 5,
}
