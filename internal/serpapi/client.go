/**
 * @description
 * HTTP Client for the SerpAPI Google Hotels engine.
 * Fetches live hotel listings and shapes them into a raw dataset table
 * compatible with the cleaning pipeline's accepted input.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - backend/internal/config
 * - backend/internal/dataset
 *
 * @notes
 * - Network/API errors ARE returned to the caller: fail-soft belongs to the
 *   cleaning pipeline, not the fetch client.
 */

package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/staylens/backend/internal/config"
	"github.com/staylens/backend/internal/dataset"
)

const (
	DefaultTimeout = 30 * time.Second

	// Defaults applied to API results that carry no such field, matching the
	// dashboard's assumptions for live data.
	defaultRoomType     = "Entire Place"
	defaultAvailability = 180
	defaultMinimumNight = 1
	defaultHostListings = 1
)

// amenityFlags maps output flag columns to the substrings that indicate them.
var amenityFlags = []struct {
	column  string
	needles []string
}{
	{"wifi", []string{"wi-fi", "wifi"}},
	{"pool", []string{"pool"}},
	{"spa", []string{"spa"}},
	{"gym", []string{"gym", "fitness"}},
	{"parking", []string{"parking"}},
	{"breakfast", []string{"breakfast"}},
	{"restaurant", []string{"restaurant"}},
}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	fallbackLat float64
	fallbackLon float64
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.SerpAPI.BaseURL,
		APIKey:  cfg.SerpAPI.APIKey,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		fallbackLat: cfg.Dataset.FallbackLat,
		fallbackLon: cfg.Dataset.FallbackLon,
	}
}

// SearchParams holds the query parameters of one hotel search.
type SearchParams struct {
	Location   string
	CheckIn    string // YYYY-MM-DD
	CheckOut   string // YYYY-MM-DD
	Adults     int
	Currency   string
	MaxResults int
}

// Validate checks the API key with a cheap plain search call.
func (c *Client) Validate(ctx context.Context) error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("engine", "google")
	q.Set("q", "test")
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("serpapi key validation failed: status %d", resp.StatusCode)
	}
	return nil
}

// FetchHotels runs one google_hotels search and returns the results as a raw
// table carrying at least the pipeline's canonical input columns.
func (c *Client) FetchHotels(ctx context.Context, params SearchParams) (*dataset.Table, error) {
	if strings.TrimSpace(params.Location) == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("engine", "google_hotels")
	q.Set("q", params.Location)
	q.Set("check_in_date", params.CheckIn)
	q.Set("check_out_date", params.CheckOut)
	if params.Adults > 0 {
		q.Set("adults", strconv.Itoa(params.Adults))
	}
	if params.Currency != "" {
		q.Set("currency", params.Currency)
	}
	q.Set("gl", "us")
	q.Set("hl", "en")
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error: status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", payload.Error)
	}

	properties := payload.Properties
	if params.MaxResults > 0 && len(properties) > params.MaxResults {
		properties = properties[:params.MaxResults]
	}

	return c.buildTable(properties, params), nil
}

// resultColumns is the fixed shape of a fetched raw table.
var resultColumns = []string{
	"hotel_name", "price_per_night", "overall_rating", "reviews_count",
	"hotel_type", "location", "latitude", "longitude", "link",
	"all_amenities", "total_amenities_count",
	"wifi", "pool", "spa", "gym", "parking", "breakfast", "restaurant",
	"deal_description", "room_type", "availability", "minimum_nights",
	"host_listings_count",
	"fetch_date", "search_location", "search_checkin", "search_checkout",
}

func (c *Client) buildTable(properties []Property, params SearchParams) *dataset.Table {
	t := dataset.NewTable(resultColumns)
	fetchedAt := time.Now().Format("2006-01-02 15:04:05")

	for i, prop := range properties {
		name := prop.Name
		if name == "" {
			name = fmt.Sprintf("Hotel %d", i+1)
		}
		hotelType := prop.Type
		if hotelType == "" {
			hotelType = "Hotel"
		}
		location := prop.Description
		if location == "" {
			location = params.Location
		}

		lat, lon := c.fallbackLat, c.fallbackLon
		if prop.GPSCoordinates != nil {
			lat, lon = prop.GPSCoordinates.Latitude, prop.GPSCoordinates.Longitude
		}

		cells := []dataset.Value{
			dataset.String(name),
			extractPrice(prop.RatePerNight),
			dataset.Number(prop.OverallRating),
			dataset.Number(float64(prop.Reviews)),
			dataset.String(hotelType),
			dataset.String(location),
			dataset.Number(lat),
			dataset.Number(lon),
			dataset.String(prop.Link),
			dataset.String(strings.Join(prop.Amenities, ", ")),
			dataset.Number(float64(len(prop.Amenities))),
		}
		for _, flag := range amenityFlags {
			cells = append(cells, amenityFlag(prop.Amenities, flag.needles))
		}
		cells = append(cells,
			dataset.String(prop.Deal),
			dataset.String(defaultRoomType),
			dataset.Number(defaultAvailability),
			dataset.Number(defaultMinimumNight),
			dataset.Number(defaultHostListings),
			dataset.String(fetchedAt),
			dataset.String(params.Location),
			dataset.String(params.CheckIn),
			dataset.String(params.CheckOut),
		)
		t.AppendRow(cells)
	}
	return t
}

// extractPrice prefers the API's extracted number, falling back to parsing
// the display string; a price it cannot recover becomes the missing marker
// for the pipeline to default.
func extractPrice(rate *Rate) dataset.Value {
	if rate == nil {
		return dataset.Missing()
	}
	if rate.ExtractedLowest > 0 {
		return dataset.Number(rate.ExtractedLowest)
	}
	if rate.Lowest != "" {
		return dataset.String(rate.Lowest)
	}
	return dataset.Missing()
}

func amenityFlag(amenities []string, needles []string) dataset.Value {
	for _, a := range amenities {
		lower := strings.ToLower(a)
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				return dataset.Number(1)
			}
		}
	}
	return dataset.Number(0)
}
