package models

type RecommendationUser struct {
	URL      string `json:"url"`
	Username string `json:"username"`
}

// AnimeRecommendation links an anime to related entries.
type AnimeRecommendation struct {
	MalID   string             `json:"mal_id"`
	Entry   []Anime            `json:"entry"`
	Content string             `json:"content"`
	User    RecommendationUser `json:"user"`
}
