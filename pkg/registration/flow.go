// Package registration drives the client side of registering a collection
// point: it loads reference data, captures form input and submits it.
package registration

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ecoleta/ecoleta/pkg/apiclient"
	"github.com/ecoleta/ecoleta/pkg/geo"
	"github.com/ecoleta/ecoleta/pkg/httpx"
	"github.com/ecoleta/ecoleta/pkg/logger"
)

// State is the position of a Flow in its lifecycle.
type State int

const (
	// StateLoadingReferenceData is the state of a flow not yet started.
	StateLoadingReferenceData State = iota
	StateEditing
	StateSubmitting
	StateSubmitted
	StateSubmissionFailed
)

func (s State) String() string {
	switch s {
	case StateLoadingReferenceData:
		return "loading-reference-data"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateSubmissionFailed:
		return "submission-failed"
	default:
		return "unknown"
	}
}

// GenericFailureNotice is shown for any submission failure that is not a
// field validation error.
const GenericFailureNotice = "Could not register the collection point. Please try again."

var (
	// ErrSubmitting is returned for edits and submits while a submit is in flight.
	ErrSubmitting = errors.New("registration: submission in progress")
	// ErrSubmitted is returned once the flow has reached its terminal state.
	ErrSubmitted = errors.New("registration: already submitted")
)

// API is the subset of the Ecoleta API the flow calls.
type API interface {
	ListItems(ctx context.Context) ([]apiclient.Item, error)
	RegisterPoint(ctx context.Context, reg apiclient.Registration) (*apiclient.Point, error)
}

// Snapshot is a consistent copy of the flow's state for rendering.
type Snapshot struct {
	State            State
	// Loading is true while any initial reference load is still running.
	Loading          bool
	Items            []apiclient.Item
	Provinces        []string
	Cities           []string
	InitialPosition  geo.Position
	SelectedPosition geo.Position
	Name             string
	Email            string
	Whatsapp         string
	UF               string
	City             string
	SelectedItems    []int64
	HasPhoto         bool
	Violations       []httpx.Violation
	Notice           string
	Point            *apiclient.Point
}

// Flow is the registration state machine. It is safe for concurrent use.
type Flow struct {
	api         API
	places      geo.Directory
	locator     geo.Locator
	log         logger.Logger
	onSubmitted func(*apiclient.Point)

	mu    sync.Mutex
	state State
	// pending counts initial loads that have not finished yet.
	pending int
	loadErr error
	// inflight counts background goroutines Wait blocks on; idle is
	// broadcast whenever it drops.
	inflight int
	idle     *sync.Cond

	items     []apiclient.Item
	provinces []string
	cities    []string
	initial   geo.Position
	selected  geo.Position

	name, email, whatsapp string
	uf, city              string
	itemIDs               []int64
	photo                 *apiclient.Photo

	cityGen    uint64
	cityCancel context.CancelFunc

	violations []httpx.Violation
	notice     string
	point      *apiclient.Point
}

// Option customizes a Flow.
type Option func(*Flow)

// OnSubmitted registers the callback run once after a successful submit.
func OnSubmitted(fn func(*apiclient.Point)) Option {
	return func(f *Flow) { f.onSubmitted = fn }
}

// New returns a flow in the loading-reference-data state. Call Start to
// begin the reference loads.
func New(api API, places geo.Directory, locator geo.Locator, log logger.Logger, opts ...Option) *Flow {
	f := &Flow{
		api:     api,
		places:  places,
		locator: locator,
		log:     log,
		state:   StateLoadingReferenceData,
	}
	f.idle = sync.NewCond(&f.mu)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start mounts the form: the flow enters editing at once and the item
// catalog, province and position loads run concurrently in the background.
// Each load fills its own part of the snapshot as it lands. Wait blocks
// until they are done.
func (f *Flow) Start(ctx context.Context) {
	f.mu.Lock()
	if f.state == StateLoadingReferenceData {
		f.state = StateEditing
	}
	f.pending = 3
	f.inflight++
	f.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		defer f.loadDone()
		items, err := f.api.ListItems(ctx)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		f.mu.Lock()
		f.items = items
		f.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		defer f.loadDone()
		ufs, err := f.places.Provinces(ctx)
		if err != nil {
			return fmt.Errorf("load provinces: %w", err)
		}
		f.mu.Lock()
		f.provinces = ufs
		f.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		defer f.loadDone()
		pos, err := f.locator.Locate(ctx)
		if err != nil {
			return fmt.Errorf("locate: %w", err)
		}
		f.mu.Lock()
		f.initial = pos
		f.mu.Unlock()
		return nil
	})

	go func() {
		err := g.Wait()
		if err != nil {
			f.log.WarnContext(ctx, "reference data load failed", "error", err)
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if err != nil {
			f.loadErr = err
		}
		f.finished()
	}()
}

func (f *Flow) loadDone() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending--
}

// finished retires one background goroutine. Callers hold f.mu.
func (f *Flow) finished() {
	f.inflight--
	f.idle.Broadcast()
}

// Wait blocks until the initial loads and any in-flight city load have
// finished, and returns the first initial load error. It may overlap with
// SelectProvince; a load started meanwhile is waited for as well.
func (f *Flow) Wait() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.inflight > 0 {
		f.idle.Wait()
	}
	return f.loadErr
}

// edit runs fn under the lock when the flow accepts input. An edit after a
// failed submission returns the flow to editing.
func (f *Flow) edit(fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateSubmitting:
		return ErrSubmitting
	case StateSubmitted:
		return ErrSubmitted
	case StateSubmissionFailed:
		f.state = StateEditing
	}
	fn()
	return nil
}

func (f *Flow) SetName(v string) error     { return f.edit(func() { f.name = v }) }
func (f *Flow) SetEmail(v string) error    { return f.edit(func() { f.email = v }) }
func (f *Flow) SetWhatsapp(v string) error { return f.edit(func() { f.whatsapp = v }) }
func (f *Flow) SelectCity(v string) error  { return f.edit(func() { f.city = v }) }

// SelectPosition sets the point's coordinates.
func (f *Flow) SelectPosition(pos geo.Position) error {
	return f.edit(func() { f.selected = pos })
}

// AttachPhoto sets the optional photo; nil removes it.
func (f *Flow) AttachPhoto(p *apiclient.Photo) error {
	return f.edit(func() { f.photo = p })
}

// ToggleItem adds id to the selection, or removes it when already selected.
func (f *Flow) ToggleItem(id int64) error {
	return f.edit(func() {
		if i := slices.Index(f.itemIDs, id); i >= 0 {
			f.itemIDs = slices.Delete(f.itemIDs, i, i+1)
			return
		}
		f.itemIDs = append(f.itemIDs, id)
	})
}

// SelectProvince sets the UF, clears the city list and selected city, and
// loads the province's cities in the background. A previous city load is
// cancelled and its result, if it still arrives, is discarded.
func (f *Flow) SelectProvince(ctx context.Context, uf string) error {
	var (
		gen     uint64
		loadCtx context.Context
	)
	err := f.edit(func() {
		if f.cityCancel != nil {
			f.cityCancel()
		}
		f.uf = uf
		f.city = ""
		f.cities = nil
		f.cityGen++
		gen = f.cityGen
		loadCtx, f.cityCancel = context.WithCancel(ctx)
		f.inflight++
	})
	if err != nil {
		return err
	}

	go func() {
		cities, err := f.places.Cities(loadCtx, uf)

		f.mu.Lock()
		defer f.mu.Unlock()
		defer f.finished()
		if gen != f.cityGen {
			f.log.DebugContext(ctx, "discarding stale city list", "uf", uf)
			return
		}
		if err != nil {
			f.log.WarnContext(ctx, "city load failed", "uf", uf, "error", err)
			return
		}
		f.cities = cities
	}()
	return nil
}

// Submit sends the captured form as one request. On success the flow is
// terminal and the OnSubmitted callback runs. On failure the flow moves to
// submission-failed: field violations from the API are kept verbatim, any
// other error becomes GenericFailureNotice.
func (f *Flow) Submit(ctx context.Context) (*apiclient.Point, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmitting
	case StateSubmitted:
		f.mu.Unlock()
		return nil, ErrSubmitted
	}
	f.state = StateSubmitting
	f.violations = nil
	f.notice = ""
	reg := f.registration()
	f.mu.Unlock()

	point, err := f.api.RegisterPoint(ctx, reg)

	f.mu.Lock()
	if err != nil {
		f.state = StateSubmissionFailed
		var ve *apiclient.ValidationError
		if errors.As(err, &ve) {
			f.violations = ve.Violations
		} else {
			f.notice = GenericFailureNotice
		}
		f.mu.Unlock()
		f.log.WarnContext(ctx, "point registration failed", "error", err)
		return nil, err
	}
	f.state = StateSubmitted
	f.point = point
	if f.cityCancel != nil {
		f.cityCancel()
	}
	f.mu.Unlock()

	f.log.InfoContext(ctx, "point registered", "point_id", point.ID)
	if f.onSubmitted != nil {
		f.onSubmitted(point)
	}
	return point, nil
}

// registration builds the request body. Callers hold f.mu.
func (f *Flow) registration() apiclient.Registration {
	return apiclient.Registration{
		Name:      f.name,
		Email:     f.email,
		Whatsapp:  f.whatsapp,
		Latitude:  f.selected.Latitude,
		Longitude: f.selected.Longitude,
		City:      f.city,
		UF:        f.uf,
		Items:     JoinItems(f.itemIDs),
		Photo:     f.photo,
	}
}

// JoinItems renders ids as the comma-separated list the API expects.
func JoinItems(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Snapshot returns a copy of everything a view needs.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:            f.state,
		Loading:          f.pending > 0,
		Items:            slices.Clone(f.items),
		Provinces:        slices.Clone(f.provinces),
		Cities:           slices.Clone(f.cities),
		InitialPosition:  f.initial,
		SelectedPosition: f.selected,
		Name:             f.name,
		Email:            f.email,
		Whatsapp:         f.whatsapp,
		UF:               f.uf,
		City:             f.city,
		SelectedItems:    slices.Clone(f.itemIDs),
		HasPhoto:         f.photo != nil,
		Violations:       slices.Clone(f.violations),
		Notice:           f.notice,
		Point:            f.point,
	}
}
