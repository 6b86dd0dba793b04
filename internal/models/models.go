package models

import "time"

// Card is a denormalized snapshot of one Scryfall card. Cards are immutable
// once stored; ratings never mutate them.
type Card struct {
	ID         int64      `json:"id"`
	ScryfallID string     `json:"scryfall_id"`
	Name       string     `json:"name"`
	ImageURL   string     `json:"image_url"`
	Artist     string     `json:"artist"`
	SetName    string     `json:"set_name"`
	SetCode    string     `json:"set_code"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text"`
	ManaCost   string     `json:"mana_cost"`
	Rarity     string     `json:"rarity"`
	CardFaces  []CardFace `json:"card_faces,omitempty"`
	Keywords   []string   `json:"keywords,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CardFace is one face of a double-faced card.
type CardFace struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// CardFilter narrows card store queries.
type CardFilter struct {
	SetCode string
}

// Rating is one user decision about one card. Skips are never persisted,
// so Liked is a plain bool. AllFormats implies Liked.
type Rating struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	Liked      bool      `json:"liked"`
	AllFormats bool      `json:"all_formats"`
	CreatedAt  time.Time `json:"created_at"`
}

// AggregatedCard is one row of the derived aggregated_ratings view.
type AggregatedCard struct {
	CardID          int64  `json:"card_id"`
	ScryfallID      string `json:"scryfall_id"`
	Name            string `json:"name"`
	ImageURL        string `json:"image_url"`
	SetCode         string `json:"set_code"`
	LikesCount      int    `json:"likes_count"`
	DislikesCount   int    `json:"dislikes_count"`
	AllFormatsCount int    `json:"all_formats_count"`
}

// TopCards groups the three top-N slices of the aggregated view.
type TopCards struct {
	MostLiked      []AggregatedCard `json:"most_liked"`
	MostDisliked   []AggregatedCard `json:"most_disliked"`
	MostAllFormats []AggregatedCard `json:"most_all_formats"`
}

// Set is cached metadata about one release set.
type Set struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	IconSVGURI string    `json:"icon_svg_uri,omitempty"`
	ReleasedAt time.Time `json:"released_at"`
	CardCount  int       `json:"card_count"`
	CreatedAt  time.Time `json:"created_at"`
}
