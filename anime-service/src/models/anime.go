package models

// ImageSet holds the URLs for one image format.
type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty"`
}

// Images groups the available image formats.
type Images struct {
	JPG  ImageSet  `json:"jpg"`
	WebP *ImageSet `json:"webp,omitempty"`
}

// Producer is a producer, licensor or studio entry.
type Producer struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Genre is a genre, theme or demographic entry.
type Genre struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type Broadcast struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	String   string `json:"string"`
}

type Trailer struct {
	YoutubeID string `json:"youtube_id,omitempty"`
	URL       string `json:"url,omitempty"`
	EmbedURL  string `json:"embed_url,omitempty"`
}

// Anime is a catalog entry as returned by the Jikan API.
type Anime struct {
	MalID          int        `json:"mal_id"`
	Title          string     `json:"title"`
	Images         Images     `json:"images"`
	Type           string     `json:"type"`
	Source         string     `json:"source"`
	Episodes       *int       `json:"episodes"`
	Status         string     `json:"status"`
	Airing         bool       `json:"airing"`
	Duration       string     `json:"duration"`
	Rating         string     `json:"rating"`
	Score          float64    `json:"score"`
	ScoredBy       int        `json:"scored_by"`
	Rank           int        `json:"rank"`
	Popularity     int        `json:"popularity"`
	Members        int        `json:"members"`
	Favorites      int        `json:"favorites"`
	Synopsis       string     `json:"synopsis"`
	Season         string     `json:"season"`
	Year           int        `json:"year"`
	Broadcast      Broadcast  `json:"broadcast"`
	Producers      []Producer `json:"producers"`
	Licensors      []Producer `json:"licensors"`
	Studios        []Producer `json:"studios"`
	Genres         []Genre    `json:"genres"`
	ExplicitGenres []Genre    `json:"explicit_genres"`
	Themes         []Genre    `json:"themes"`
	Demographics   []Genre    `json:"demographics"`
	Trailer        *Trailer   `json:"trailer,omitempty"`
}

// AnimeDetailResponse is the envelope of GET /anime/{id}.
type AnimeDetailResponse struct {
	Data Anime `json:"data"`
}
