// Package extractor turns upstream HTML pages into entity values.
//
// Extraction is pure: no network access and no state between calls. A
// field that cannot be located or parsed falls back to its zero value;
// only markup that is not an HTML page of the expected family fails with
// entity.ErrMalformedDocument.
package extractor

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/boxrec-service/internal/entity"
)

var (
	leadingIntRe   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloatRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
)

// parseHTML loads markup and rejects content that carries no HTML elements
// at all (plain text, JSON, empty bodies).
func parseHTML(markup string) (*goquery.Document, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, fmt.Errorf("%w: empty document", entity.ErrMalformedDocument)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedDocument, err)
	}
	if doc.Find("body *").Length() == 0 {
		return nil, fmt.Errorf("%w: no html elements", entity.ErrMalformedDocument)
	}
	return doc, nil
}

// cleanText trims s and collapses inner runs of whitespace to one space.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cellText(row *goquery.Selection, col int) string {
	return cleanText(row.Find("td").Eq(col).Text())
}

// boxerLink returns the name and id carried by the row's first anchor whose
// target contains boxerLinkMarker. Both are empty when there is none.
func boxerLink(row *goquery.Selection) (name, id string) {
	a := row.Find(`td a[href*="` + boxerLinkMarker + `"]`).First()
	if a.Length() == 0 {
		return "", ""
	}
	href, _ := a.Attr("href")
	return cleanText(a.Text()), lastPathSegment(href)
}

func lastPathSegment(href string) string {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return strings.TrimSpace(p)
}

// leadingInt parses the integer prefix of s ("12." -> 12). It returns 0
// when s does not start with a number.
func leadingInt(s string) int {
	m := leadingIntRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// leadingFloat parses the numeric prefix of s, ignoring thousands separators.
func leadingFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	m := leadingFloatRe.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}
