package swapi

// Character is one person record from the people listing or search endpoints.
// Sub-resources are referenced by absolute URL.
type Character struct {
	Name      string   `json:"name"`
	Homeworld string   `json:"homeworld"`
	Starships []string `json:"starships"`
	Species   []string `json:"species"`
	URL       string   `json:"url,omitempty"`
}

// Page is a people listing or search response.
type Page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []Character `json:"results"`
}

// Starship holds the starship fields holonet displays.
type Starship struct {
	Name          string `json:"name"`
	CargoCapacity string `json:"cargo_capacity"`
	StarshipClass string `json:"starship_class"`
}

// Planet holds the homeworld fields holonet displays.
type Planet struct {
	Name       string `json:"name"`
	Population string `json:"population"`
	Climate    string `json:"climate"`
}

// Species holds the species fields holonet displays.
type Species struct {
	Name            string `json:"name"`
	Language        string `json:"language"`
	AverageLifespan string `json:"average_lifespan"`
}
