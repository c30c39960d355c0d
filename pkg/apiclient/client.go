// Package apiclient is the HTTP client for the Ecoleta API used by the CLI
// and the registration flow.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ecoleta/ecoleta/pkg/httpx"
	itemSerializers "github.com/ecoleta/ecoleta/services/item/application/serializers"
	pointSerializers "github.com/ecoleta/ecoleta/services/point/application/serializers"
)

// PhotoField is the multipart file field carrying the point photo.
const PhotoField = "image"

const defaultTimeout = 30 * time.Second

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("not found")

// Item and Point mirror the server's JSON bodies.
type (
	Item  = itemSerializers.ItemResponse
	Point = pointSerializers.PointResponse
)

// ValidationError carries the field violations of a 400 response.
type ValidationError struct {
	Violations []httpx.Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StatusError is any other non-2xx response.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Photo is an optional upload attached to a registration.
type Photo struct {
	Filename string
	Content  io.Reader
}

// Registration is the body of POST /points. Items is the comma-joined id list.
type Registration struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	Items     string
	Photo     *Photo
}

// PointFilter narrows GET /points. Zero fields are not sent.
type PointFilter struct {
	City  string
	UF    string
	Items string
}

// Client talks to one Ecoleta API base URL.
type Client struct {
	base string
	http *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for base, e.g. "http://localhost:3333".
func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListItems fetches the full item catalog.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.getJSON(ctx, "/items", nil, &items); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ListPoints fetches the points matching f.
func (c *Client) ListPoints(ctx context.Context, f PointFilter) ([]Point, error) {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.UF != "" {
		q.Set("uf", f.UF)
	}
	if f.Items != "" {
		q.Set("items", f.Items)
	}
	var points []Point
	if err := c.getJSON(ctx, "/points", q, &points); err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	return points, nil
}

// GetPoint fetches one point. A missing id yields ErrNotFound.
func (c *Client) GetPoint(ctx context.Context, id int64) (*Point, error) {
	var p Point
	if err := c.getJSON(ctx, "/points/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, fmt.Errorf("get point %d: %w", id, err)
	}
	return &p, nil
}

// RegisterPoint submits reg as one multipart request. A 400 is returned as
// *ValidationError.
func (c *Client) RegisterPoint(ctx context.Context, reg Registration) (*Point, error) {
	body, contentType, err := encodeRegistration(reg)
	if err != nil {
		return nil, fmt.Errorf("encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/points", body)
	if err != nil {
		return nil, fmt.Errorf("register point: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	var p Point
	if err := c.do(req, http.StatusCreated, &p); err != nil {
		return nil, fmt.Errorf("register point: %w", err)
	}
	return &p, nil
}

func encodeRegistration(reg Registration) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"name", reg.Name},
		{"email", reg.Email},
		{"whatsapp", reg.Whatsapp},
		{"uf", reg.UF},
		{"city", reg.City},
		{"latitude", strconv.FormatFloat(reg.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(reg.Longitude, 'f', -1, 64)},
		{"items", reg.Items},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if reg.Photo != nil {
		part, err := mw.CreateFormFile(PhotoField, reg.Photo.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, reg.Photo.Content); err != nil {
			return nil, "", fmt.Errorf("copy photo: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, http.StatusOK, dst)
}

func (c *Client) do(req *http.Request, want int, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == want {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return decodeError(resp)
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		var body httpx.ValidationErrorResponse
		if err := json.Unmarshal(data, &body); err == nil && len(body.Violations) > 0 {
			return &ValidationError{Violations: body.Violations}
		}
	}

	var body httpx.ErrorResponse
	_ = json.Unmarshal(data, &body)
	return &StatusError{Status: resp.StatusCode, Message: body.Error}
}
