package boxrec

import (
	"net/url"
	"sort"
	"strings"
)

// divisionCodes maps a division name to the code the ratings page expects.
var divisionCodes = map[string]string{
	"heavyweight":        "4",
	"cruiserweight":      "3",
	"lightheavyweight":   "12",
	"supermiddleweight":  "15",
	"middleweight":       "13",
	"superwelterweight":  "16",
	"welterweight":       "17",
	"superlightweight":   "14",
	"lightweight":        "11",
	"superfeatherweight": "S",
	"featherweight":      "8",
	"superbantamweight":  "E",
	"bantamweight":       "7",
	"superflyweight":     "D",
	"flyweight":          "9",
	"lightflyweight":     "10",
	"minimumweight":      "M",
}

// DivisionCode resolves a division name case-insensitively. Unknown names
// are returned unchanged so callers can pass raw upstream codes.
func DivisionCode(division string) string {
	if code, ok := divisionCodes[strings.ToLower(division)]; ok {
		return code
	}
	return division
}

// Divisions returns the known division names in alphabetical order.
func Divisions() []string {
	names := make([]string, 0, len(divisionCodes))
	for name := range divisionCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfilePath is the resource path of a boxer profile page.
func ProfilePath(boxerID string) string {
	return "/en/proboxer/" + url.PathEscape(boxerID)
}

// SearchPath is the resource path of a first-name search restricted to
// professional boxers.
func SearchPath(query string) string {
	return "/en/search?p%5Bfirst_name%5D=" + url.QueryEscape(query) +
		"&p%5Blast_name%5D=&p%5Brole%5D=proboxer&p%5Bstatus%5D=&p%5Bcountry%5D=" +
		"&p%5Bdivision%5D=&p%5Bsex%5D=&p%5Bstance%5D=&p%5Bresidence%5D=&p%5Bbirthplace%5D="
}

// RatingsPath is the resource path of a division ratings page.
func RatingsPath(divisionCode string) string {
	return "/en/ratings?division=" + url.QueryEscape(divisionCode)
}
