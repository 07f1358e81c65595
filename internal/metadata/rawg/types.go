package rawg

// Named is a RAWG entity carrying an id, display name and slug.
// Genres, platforms, developers and publishers all share this shape.
type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Requirements holds platform system requirements, when RAWG has them.
type Requirements struct {
	Minimum     string `json:"minimum,omitempty"`
	Recommended string `json:"recommended,omitempty"`
}

// Platform is one platform entry on a game.
type Platform struct {
	Platform     Named         `json:"platform"`
	Requirements *Requirements `json:"requirements,omitempty"`
}

// Clip is a short gameplay clip.
type Clip struct {
	Clip  string `json:"clip"`
	Video string `json:"video"`
}

// GameDetails is the full detail record for a game.
type GameDetails struct {
	ID                        int        `json:"id"`
	Name                      string     `json:"name"`
	Slug                      string     `json:"slug"`
	Description               string     `json:"description"`
	DescriptionRaw            string     `json:"description_raw"`
	BackgroundImage           string     `json:"background_image"`
	BackgroundImageAdditional string     `json:"background_image_additional"`
	Rating                    float64    `json:"rating"`
	RatingsCount              int        `json:"ratings_count"`
	Metacritic                *int       `json:"metacritic"`
	Released                  string     `json:"released"`
	Website                   string     `json:"website"`
	RedditURL                 string     `json:"reddit_url"`
	Platforms                 []Platform `json:"platforms"`
	Genres                    []Named    `json:"genres"`
	Developers                []Named    `json:"developers"`
	Publishers                []Named    `json:"publishers"`
	Clip                      *Clip      `json:"clip"`
}

// Screenshot is one in-game screenshot.
type Screenshot struct {
	ID     int    `json:"id"`
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MovieData holds the available renditions of a movie.
type MovieData struct {
	Small string `json:"480"`
	Max   string `json:"max"`
}

// Movie is a trailer or gameplay video hosted by RAWG.
type Movie struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Preview string    `json:"preview"`
	Data    MovieData `json:"data"`
}

// Internal search response types.

type searchResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type listResponse[T any] struct {
	Results []T `json:"results"`
}
