package extractor

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/user/boxrec-service/internal/entity"
)

// ExtractRatings parses a division ratings page. The returned Division is
// always the division argument; entries keep document order.
func ExtractRatings(markup, division string) (*entity.RatingsResponse, error) {
	doc, err := parseHTML(markup)
	if err != nil {
		return nil, err
	}

	ratings := []entity.RatingEntry{}
	doc.Find(ratingsShape.Rows).Each(func(_ int, row *goquery.Selection) {
		name, id := boxerLink(row)
		if name == "" || id == "" {
			return
		}
		ratings = append(ratings, entity.RatingEntry{
			Rank:   leadingInt(cellText(row, ratingsShape.RankCol)),
			ID:     id,
			Name:   name,
			Points: leadingFloat(cellText(row, ratingsShape.PointsCol)),
			Record: cellText(row, ratingsShape.RecordCol),
		})
	})
	return &entity.RatingsResponse{Division: division, Ratings: ratings}, nil
}
