package extractor

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/user/boxrec-service/internal/entity"
)

// ExtractSearchResults parses a boxer search results page. Rows without
// both a boxer name and id are skipped; an empty table is a valid result.
func ExtractSearchResults(markup string) ([]entity.SearchResult, error) {
	doc, err := parseHTML(markup)
	if err != nil {
		return nil, err
	}

	results := []entity.SearchResult{}
	doc.Find(searchShape.Rows).Each(func(_ int, row *goquery.Selection) {
		name, id := boxerLink(row)
		if name == "" || id == "" {
			return
		}
		results = append(results, entity.SearchResult{
			ID:        id,
			Name:      name,
			Record:    cellText(row, searchShape.RecordCol),
			LastFight: cellText(row, searchShape.LastFightCol),
		})
	})
	return results, nil
}
