package models

import (
	"net/url"
	"strconv"
)

// DefaultPageLimit is the page size used when none is given.
const DefaultPageLimit = 20

// SearchParams are the filters accepted by GET /anime. Zero values are omitted.
type SearchParams struct {
	Q             string  `json:"q,omitempty" query:"q"`
	Page          int     `json:"page,omitempty" query:"page"`
	Limit         int     `json:"limit,omitempty" query:"limit"`
	Type          string  `json:"type,omitempty" query:"type"`
	Score         float64 `json:"score,omitempty" query:"score"`
	MinScore      float64 `json:"min_score,omitempty" query:"min_score"`
	MaxScore      float64 `json:"max_score,omitempty" query:"max_score"`
	Status        string  `json:"status,omitempty" query:"status"`
	Rating        string  `json:"rating,omitempty" query:"rating"`
	SFW           *bool   `json:"sfw,omitempty" query:"sfw"`
	Genres        string  `json:"genres,omitempty" query:"genres"`
	GenresExclude string  `json:"genres_exclude,omitempty" query:"genres_exclude"`
	OrderBy       string  `json:"order_by,omitempty" query:"order_by"`
	Sort          string  `json:"sort,omitempty" query:"sort"`
	Letter        string  `json:"letter,omitempty" query:"letter"`
	Producers     string  `json:"producers,omitempty" query:"producers"`
	StartDate     string  `json:"start_date,omitempty" query:"start_date"`
	EndDate       string  `json:"end_date,omitempty" query:"end_date"`
}

// Query encodes the non-zero parameters.
func (p SearchParams) Query() url.Values {
	v := url.Values{}
	setString := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	setInt := func(key string, value int) {
		if value > 0 {
			v.Set(key, strconv.Itoa(value))
		}
	}
	setFloat := func(key string, value float64) {
		if value > 0 {
			v.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		}
	}

	setString("q", p.Q)
	setInt("page", p.Page)
	setInt("limit", p.Limit)
	setString("type", p.Type)
	setFloat("score", p.Score)
	setFloat("min_score", p.MinScore)
	setFloat("max_score", p.MaxScore)
	setString("status", p.Status)
	setString("rating", p.Rating)
	if p.SFW != nil {
		v.Set("sfw", strconv.FormatBool(*p.SFW))
	}
	setString("genres", p.Genres)
	setString("genres_exclude", p.GenresExclude)
	setString("order_by", p.OrderBy)
	setString("sort", p.Sort)
	setString("letter", p.Letter)
	setString("producers", p.Producers)
	setString("start_date", p.StartDate)
	setString("end_date", p.EndDate)
	return v
}

// Merge returns p with every non-zero field of override applied.
func (p SearchParams) Merge(o SearchParams) SearchParams {
	if o.Q != "" {
		p.Q = o.Q
	}
	if o.Page > 0 {
		p.Page = o.Page
	}
	if o.Limit > 0 {
		p.Limit = o.Limit
	}
	if o.Type != "" {
		p.Type = o.Type
	}
	if o.Score > 0 {
		p.Score = o.Score
	}
	if o.MinScore > 0 {
		p.MinScore = o.MinScore
	}
	if o.MaxScore > 0 {
		p.MaxScore = o.MaxScore
	}
	if o.Status != "" {
		p.Status = o.Status
	}
	if o.Rating != "" {
		p.Rating = o.Rating
	}
	if o.SFW != nil {
		p.SFW = o.SFW
	}
	if o.Genres != "" {
		p.Genres = o.Genres
	}
	if o.GenresExclude != "" {
		p.GenresExclude = o.GenresExclude
	}
	if o.OrderBy != "" {
		p.OrderBy = o.OrderBy
	}
	if o.Sort != "" {
		p.Sort = o.Sort
	}
	if o.Letter != "" {
		p.Letter = o.Letter
	}
	if o.Producers != "" {
		p.Producers = o.Producers
	}
	if o.StartDate != "" {
		p.StartDate = o.StartDate
	}
	if o.EndDate != "" {
		p.EndDate = o.EndDate
	}
	return p
}
