package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/boxrec-service/internal/entity"
)

var (
	recordRe   = regexp.MustCompile(`(\d+)-(\d+)-(\d+)`)
	badgeNumRe = regexp.MustCompile(`^\d+`)
	koRe       = regexp.MustCompile(`(\d+)KOs`)
)

// ExtractProfile parses a boxer profile page. boxerID is copied into the
// result unchanged.
func ExtractProfile(markup, boxerID string) (*entity.BoxerProfile, error) {
	doc, err := parseHTML(markup)
	if err != nil {
		return nil, err
	}
	if doc.Find(profileShape.Regions).Length() == 0 {
		return nil, fmt.Errorf("%w: no profile regions found", entity.ErrMalformedDocument)
	}

	name, nickname := profileTitle(doc)
	return &entity.BoxerProfile{
		ID:           boxerID,
		Name:         name,
		Nickname:     nickname,
		Record:       profileRecord(doc),
		KOs:          profileKOs(doc),
		PersonalInfo: profilePersonalInfo(doc),
		Bouts:        profileBouts(doc),
	}, nil
}

func profileTitle(doc *goquery.Document) (name, nickname string) {
	name = cleanText(doc.Find(profileShape.Name).First().Text())
	nickname = cleanText(doc.Find(profileShape.Nickname).First().Text())
	nickname = strings.TrimSpace(strings.Trim(nickname, "\"'“”"))
	return name, nickname
}

// profileRecord reads the win, loss and draw badges in that order. Each
// badge contributes its leading digits ("6W" -> "6") and the parts are
// joined as "W-L-D". A single badge that already reads "6-0-1" is accepted
// too. Anything else yields 0-0-0.
func profileRecord(doc *goquery.Document) entity.Record {
	var digits, raw []string
	for _, sel := range []string{profileShape.WinBadge, profileShape.LossBadge, profileShape.DrawBadge} {
		text := cleanText(doc.Find(sel).First().Text())
		raw = append(raw, text)
		if n := badgeNumRe.FindString(text); n != "" {
			digits = append(digits, n)
		}
	}

	m := recordRe.FindStringSubmatch(strings.Join(digits, "-"))
	if m == nil || len(digits) != 3 {
		m = recordRe.FindStringSubmatch(strings.Join(raw, ""))
	}
	if m == nil {
		return entity.Record{}
	}
	wins, _ := strconv.Atoi(m[1])
	losses, _ := strconv.Atoi(m[2])
	draws, _ := strconv.Atoi(m[3])
	return entity.Record{Wins: wins, Losses: losses, Draws: draws}
}

func profileKOs(doc *goquery.Document) int {
	m := koRe.FindStringSubmatch(doc.Find(profileShape.KOBadge).Text())
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func profilePersonalInfo(doc *goquery.Document) map[string]string {
	info := make(map[string]string)
	table := doc.Find(profileShape.InfoTable).First()
	table.Find(profileShape.InfoRows).Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("th, td")
		key := infoKey(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if key == "" || value == "" {
			return
		}
		info[key] = value
	})
	return info
}

// infoKey lower-cases s and replaces whitespace runs with underscores.
func infoKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

func profileBouts(doc *goquery.Document) []entity.Bout {
	bouts := []entity.Bout{}
	doc.Find(profileShape.BoutRows).Each(func(_ int, row *goquery.Selection) {
		date := cellText(row, profileShape.BoutDateCol)
		opponent, opponentID := boxerLink(row)
		if date == "" || opponent == "" {
			return
		}
		bouts = append(bouts, entity.Bout{
			Date:       date,
			Opponent:   opponent,
			OpponentID: opponentID,
			Result:     cellText(row, profileShape.BoutResultCol),
		})
	})
	return bouts
}
