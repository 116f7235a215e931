package models

type ScoreBucket struct {
	Score      int     `json:"score"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// AnimeStats are the watch-status counters of an anime.
type AnimeStats struct {
	Watching    int           `json:"watching"`
	Completed   int           `json:"completed"`
	OnHold      int           `json:"on_hold"`
	Dropped     int           `json:"dropped"`
	PlanToWatch int           `json:"plan_to_watch"`
	Total       int           `json:"total"`
	Scores      []ScoreBucket `json:"scores"`
}

// AnimeStatsResponse is the envelope of GET /anime/{id}/statistics.
type AnimeStatsResponse struct {
	Data AnimeStats `json:"data"`
}

// AnimeDetailBundle combines the detail view's three calls.
type AnimeDetailBundle struct {
	Anime      Anime            `json:"anime"`
	Characters []AnimeCharacter `json:"characters"`
	Stats      AnimeStats       `json:"stats"`
}
