package scryfall

// Card is the wire shape of one Scryfall card object, reduced to the
// fields this service consumes.
type Card struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
	Artist     string     `json:"artist,omitempty"`
	SetName    string     `json:"set_name"`
	SetCode    string     `json:"set"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text,omitempty"`
	ManaCost   string     `json:"mana_cost,omitempty"`
	Rarity     string     `json:"rarity"`
	CardFaces  []CardFace `json:"card_faces,omitempty"`
	Keywords   []string   `json:"keywords,omitempty"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name      string     `json:"name"`
	ImageURIs *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains card image URLs in various sizes.
type ImageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
	PNG    string `json:"png"`
}

// Best returns the preferred image URL, falling back through sizes.
func (u *ImageURIs) Best() string {
	if u == nil {
		return ""
	}
	if u.Normal != "" {
		return u.Normal
	}
	if u.Large != "" {
		return u.Large
	}
	return u.PNG
}

// Set is one entry of the Scryfall set catalog.
type Set struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	IconSVGURI string `json:"icon_svg_uri,omitempty"`
	ReleasedAt string `json:"released_at,omitempty"`
	CardCount  int    `json:"card_count"`
}

type setList struct {
	Data []Set `json:"data"`
}
