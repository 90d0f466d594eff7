package fred

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/util"
)

// Client implements a SeriesSource backed by the FRED observations endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a new FRED SeriesSource.
func New(apiKey, baseURL string, timeout time.Duration) drepo.SeriesSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type fredResponse struct {
	Observations []fredObservation `json:"observations"`
}

// Observations fetches one series over an inclusive date range. Rows whose
// value is a non-numeric placeholder (FRED uses ".") are dropped, never
// coerced to zero. All failures wrap models.ErrRetrieval.
func (c *Client) Observations(ctx context.Context, id string, start, end time.Time) (models.TimeSeries, error) {
	if end.IsZero() {
		end = util.Today()
	}

	var resp fredResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"series_id":         {id},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {util.FormatDate(start)},
			"observation_end":   {util.FormatDate(end)},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrRetrieval, id, err)
	}

	obs := make([]models.Observation, 0, len(resp.Observations))
	for _, o := range resp.Observations {
		date, ok := util.ParseDate(o.Date)
		if !ok {
			return nil, fmt.Errorf("%w: %s: bad date %q", models.ErrRetrieval, id, o.Date)
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue // missing value marker
		}
		obs = append(obs, models.Observation{Date: date, Value: v})
	}

	return models.NewTimeSeries(obs), nil
}
