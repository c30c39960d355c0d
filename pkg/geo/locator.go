package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultIPLocatorURL is the ip-api.com lookup for the caller's address.
const DefaultIPLocatorURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// Position is a latitude/longitude pair in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the caller's current position.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// StaticLocator always answers the same position.
type StaticLocator Position

func (s StaticLocator) Locate(context.Context) (Position, error) {
	return Position(s), nil
}

// IPLocator estimates the position from the public IP address.
type IPLocator struct {
	url  string
	http *http.Client
}

// NewIPLocator returns a locator querying u, or DefaultIPLocatorURL when empty.
func NewIPLocator(u string, hc *http.Client) *IPLocator {
	if u == "" {
		u = DefaultIPLocatorURL
	}
	if hc == nil {
		hc = &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &IPLocator{url: u, http: hc}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l *IPLocator) Locate(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return Position{}, err
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("locate: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("locate: status %d", resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, fmt.Errorf("locate: decode: %w", err)
	}
	if body.Status != "success" {
		return Position{}, fmt.Errorf("locate: %s", body.Message)
	}
	return Position{Latitude: body.Lat, Longitude: body.Lon}, nil
}
