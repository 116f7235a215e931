package models

type CharacterImages struct {
	JPG  ImageSet  `json:"jpg"`
	WebP *ImageSet `json:"webp,omitempty"`
}

type Person struct {
	MalID  int             `json:"mal_id"`
	Name   string          `json:"name"`
	URL    string          `json:"url"`
	Images CharacterImages `json:"images"`
}

type VoiceActor struct {
	Person   Person `json:"person"`
	Language string `json:"language"`
}

// CharacterEntry is the character itself inside a cast listing.
type CharacterEntry struct {
	MalID  int             `json:"mal_id"`
	URL    string          `json:"url"`
	Images CharacterImages `json:"images"`
	Name   string          `json:"name"`
}

// AnimeCharacter is one cast member of an anime.
type AnimeCharacter struct {
	Character   CharacterEntry `json:"character"`
	Role        string         `json:"role"`
	VoiceActors []VoiceActor   `json:"voice_actors"`
}

// AnimeCharactersResponse is the envelope of GET /anime/{id}/characters.
type AnimeCharactersResponse struct {
	Data []AnimeCharacter `json:"data"`
}
