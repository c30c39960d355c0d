// Package geo provides the reference data the registration flow needs:
// Brazilian provinces (UFs), their cities, and the caller's current position.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultIBGEBaseURL is the public IBGE localities API.
const DefaultIBGEBaseURL = "https://servicodados.ibge.gov.br/api/v1/localidades"

const (
	defaultExpiration = 24 * time.Hour
	cleanupInterval   = time.Hour
	provincesKey      = "provinces"
)

// ErrUnknownProvince is returned for an empty or malformed UF.
var ErrUnknownProvince = errors.New("unknown province")

// Directory lists provinces and the cities of a province.
type Directory interface {
	Provinces(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, uf string) ([]string, error)
}

// IBGE reads localities from the IBGE API and keeps them in memory.
// Locality data changes rarely, so entries live for a day.
type IBGE struct {
	base  string
	http  *http.Client
	cache *gocache.Cache
}

// IBGEOption customizes an IBGE directory.
type IBGEOption func(*IBGE)

// WithBaseURL points the directory at another localities endpoint.
func WithBaseURL(base string) IBGEOption {
	return func(g *IBGE) { g.base = strings.TrimRight(base, "/") }
}

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(hc *http.Client) IBGEOption {
	return func(g *IBGE) { g.http = hc }
}

// NewIBGE returns a cached IBGE directory.
func NewIBGE(opts ...IBGEOption) *IBGE {
	g := &IBGE{
		base: DefaultIBGEBaseURL,
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type ibgeProvince struct {
	Sigla string `json:"sigla"`
}

type ibgeCity struct {
	Nome string `json:"nome"`
}

// Provinces returns every UF abbreviation in alphabetical order.
func (g *IBGE) Provinces(ctx context.Context) ([]string, error) {
	if v, ok := g.cached(provincesKey); ok {
		return v, nil
	}

	var rows []ibgeProvince
	if err := g.getJSON(ctx, g.base+"/estados", &rows); err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}

	ufs := make([]string, len(rows))
	for i, r := range rows {
		ufs[i] = r.Sigla
	}
	sort.Strings(ufs)

	g.cache.SetDefault(provincesKey, ufs)
	return ufs, nil
}

// Cities returns the city names of uf in the order IBGE lists them.
func (g *IBGE) Cities(ctx context.Context, uf string) ([]string, error) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if len(uf) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvince, uf)
	}

	key := "cities:" + uf
	if v, ok := g.cached(key); ok {
		return v, nil
	}

	var rows []ibgeCity
	if err := g.getJSON(ctx, g.base+"/estados/"+url.PathEscape(uf)+"/municipios", &rows); err != nil {
		return nil, fmt.Errorf("list cities of %s: %w", uf, err)
	}

	cities := make([]string, len(rows))
	for i, r := range rows {
		cities[i] = r.Nome
	}

	g.cache.SetDefault(key, cities)
	return cities, nil
}

func (g *IBGE) cached(key string) ([]string, bool) {
	v, found := g.cache.Get(key)
	if !found {
		return nil, false
	}
	out, ok := v.([]string)
	return out, ok
}

func (g *IBGE) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ibge: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
