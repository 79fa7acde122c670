/**
 * @description
 * Response types for the SerpAPI Google Hotels engine.
 * Only the fields the dashboard consumes are mapped.
 */

package serpapi

// searchResponse is the top-level envelope of a google_hotels search.
type searchResponse struct {
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	Error      string     `json:"error"`
	Properties []Property `json:"properties"`
}

// Property is one hotel result.
type Property struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Link          string   `json:"link"`
	OverallRating float64  `json:"overall_rating"`
	Reviews       int      `json:"reviews"`
	Amenities     []string `json:"amenities"`
	Deal          string   `json:"deal"`

	RatePerNight   *Rate `json:"rate_per_night"`
	GPSCoordinates *GPS  `json:"gps_coordinates"`
}

// Rate carries per-night pricing, both as display text and extracted number.
type Rate struct {
	Lowest          string  `json:"lowest"`
	ExtractedLowest float64 `json:"extracted_lowest"`
}

// GPS carries property coordinates.
type GPS struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
