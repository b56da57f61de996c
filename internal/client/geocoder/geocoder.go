// Package geocoder resolves addresses to coordinates and back through the
// OpenCage REST API.
package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/paulmach/orb"
)

// UnknownLocation is the formatted address of a reverse lookup with no match.
const UnknownLocation = "Unknown location"

const DefaultLimit = 10

var (
	ErrNoKey       = errors.New("geocoder key is not configured")
	ErrUnavailable = errors.New("geocoder unavailable")
)

type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]models.Place, error)
	Reverse(ctx context.Context, p orb.Point) (models.Place, error)
}

type OpenCage struct {
	endpoint string
	key      string
	http     *http.Client
	log      logging.Logger
}

func NewOpenCage(endpoint, key string, timeout time.Duration, log logging.Logger) *OpenCage {
	if log == nil {
		log = logging.Nop()
	}
	return &OpenCage{endpoint: endpoint, key: key, http: &http.Client{Timeout: timeout}, log: log}
}

type result struct {
	Formatted string `json:"formatted"`
	Geometry  struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"geometry"`
	Components struct {
		Postcode string `json:"postcode"`
	} `json:"components"`
}

type response struct {
	Results []result `json:"results"`
	Status  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

// Search returns up to limit candidates for a free-text query. A blank query
// yields nothing without a remote call.
func (g *OpenCage) Search(ctx context.Context, query string, limit int) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	resp, err := g.lookup(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, r.place())
	}
	return out, nil
}

// Reverse returns the best address for a coordinate.
func (g *OpenCage) Reverse(ctx context.Context, p orb.Point) (models.Place, error) {
	q := models.FormatCoord(p.Lat()) + "," + models.FormatCoord(p.Lon())
	resp, err := g.lookup(ctx, q, 1)
	if err != nil {
		return models.Place{}, err
	}
	if len(resp.Results) == 0 {
		return models.Place{Formatted: UnknownLocation, Location: p}, nil
	}
	return resp.Results[0].place(), nil
}

func (r result) place() models.Place {
	return models.Place{
		Formatted: r.Formatted,
		Location:  orb.Point{r.Geometry.Lng, r.Geometry.Lat},
		Postcode:  r.Components.Postcode,
	}
}

func (g *OpenCage) lookup(ctx context.Context, q string, limit int) (response, error) {
	var out response
	if g.key == "" {
		return out, ErrNoKey
	}

	u, err := url.Parse(g.endpoint)
	if err != nil {
		return out, err
	}
	params := u.Query()
	params.Set("key", g.key)
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("no_annotations", "1")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return out, err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return out, err
		}
		return out, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_ = json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		g.log.Warn(ctx, "geocoder request failed", "status", resp.StatusCode, "message", out.Status.Message)
		msg := out.Status.Message
		if msg == "" {
			msg = resp.Status
		}
		return out, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
	return out, nil
}

var _ Geocoder = (*OpenCage)(nil)
