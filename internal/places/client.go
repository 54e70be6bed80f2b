package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jengzang/placewalk-go/internal/models"
)

// ErrNotFound reports that the lookup service has no record for a placeId
var ErrNotFound = errors.New("place not found")

// Lookup resolves a placeId to its details. Implemented by the HTTP client
// below and by test fakes.
type Lookup interface {
	Details(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}

// detailFields is every field requested from the details endpoint
var detailFields = []string{
	"address_component", "adr_address", "business_status", "formatted_address",
	"geometry", "icon", "name", "photo", "place_id", "plus_code", "type",
	"url", "utc_offset", "vicinity", "formatted_phone_number",
	"international_phone_number", "opening_hours", "website",
	"price_level", "rating", "review", "user_ratings_total",
}

const defaultEndpoint = "https://maps.googleapis.com/maps/api/place/details/json"

// Client fetches place details over HTTP
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a details client. endpoint may be empty for the default.
func NewClient(apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type detailsResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Result       *rawDetails `json:"result"`
}

type rawDetails struct {
	PlaceID          string    `json:"place_id"`
	Name             *string   `json:"name"`
	FormattedAddress *string   `json:"formatted_address"`
	Geometry         *geometry `json:"geometry"`
	Types            []string  `json:"types"`
	Rating           *float64  `json:"rating"`
	UserRatingsTotal *int      `json:"user_ratings_total"`
	PriceLevel       *int      `json:"price_level"`
	BusinessStatus   *string   `json:"business_status"`
	OpeningHours     *struct {
		Periods []rawPeriod `json:"periods"`
	} `json:"opening_hours"`
	UTCOffset *int        `json:"utc_offset"`
	Reviews   []rawReview `json:"reviews"`
}

type geometry struct {
	Location *models.LatLng `json:"location"`
}

type rawPeriod struct {
	Open  *rawDayTime `json:"open"`
	Close *rawDayTime `json:"close"`
}

type rawDayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

type rawReview struct {
	Rating                  *float64 `json:"rating"`
	Time                    *int64   `json:"time"`
	RelativeTimeDescription *string  `json:"relative_time_description"`
}

// Details fetches the full detail record for one placeId
func (c *Client) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", strings.Join(detailFields, ","))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build details request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("details request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read details response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("details request returned HTTP %d", resp.StatusCode)
	}

	var dr detailsResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("failed to decode details response: %w", err)
	}

	switch dr.Status {
	case "OK":
	case "NOT_FOUND", "ZERO_RESULTS":
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("details request rejected: %s %s", dr.Status, dr.ErrorMessage)
	}
	if dr.Result == nil {
		return nil, fmt.Errorf("details response has no result")
	}

	return normalizeDetails(dr.Result), nil
}

// normalizeDetails maps the wire shape to the internal model, trimming reviews
// to the two most recent.
func normalizeDetails(raw *rawDetails) *models.PlaceDetails {
	d := &models.PlaceDetails{
		PlaceID:          raw.PlaceID,
		Name:             raw.Name,
		FormattedAddress: raw.FormattedAddress,
		Types:            raw.Types,
		Rating:           raw.Rating,
		UserRatingsTotal: raw.UserRatingsTotal,
		PriceLevel:       raw.PriceLevel,
		BusinessStatus:   raw.BusinessStatus,
		UTCOffset:        raw.UTCOffset,
	}

	if raw.Geometry != nil {
		d.Location = raw.Geometry.Location
	}

	if raw.OpeningHours != nil {
		for _, p := range raw.OpeningHours.Periods {
			period := models.OpeningPeriod{}
			if p.Open != nil {
				period.Open = &models.DayTime{Day: p.Open.Day, Time: p.Open.Time}
			}
			if p.Close != nil {
				period.Close = &models.DayTime{Day: p.Close.Day, Time: p.Close.Time}
			}
			d.OpeningPeriods = append(d.OpeningPeriods, period)
		}
	}

	if len(raw.Reviews) > 0 {
		reviews := append([]rawReview(nil), raw.Reviews...)
		sort.SliceStable(reviews, func(i, j int) bool {
			ti, tj := int64(0), int64(0)
			if reviews[i].Time != nil {
				ti = *reviews[i].Time
			}
			if reviews[j].Time != nil {
				tj = *reviews[j].Time
			}
			return ti > tj
		})
		if len(reviews) > 2 {
			reviews = reviews[:2]
		}
		for _, r := range reviews {
			d.Reviews = append(d.Reviews, models.Review{
				Rating:                  r.Rating,
				Time:                    r.Time,
				RelativeTimeDescription: r.RelativeTimeDescription,
			})
		}
	}

	return d
}
