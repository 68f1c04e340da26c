package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"estatehub/client/internal/api"
	"estatehub/client/internal/models"
)

// PropertyState is the property domain's data plus lifecycle flags.
type PropertyState struct {
	Properties      []models.Property
	Current         *models.Property
	Featured        []models.Property
	Nearby          []models.Property
	Page            int
	Pages           int
	TotalProperties int
	Lifecycle
}

// applyPage replaces the collection and pagination counters wholesale from a
// list response. Applying the same payload twice yields the same state.
func (st *PropertyState) applyPage(page *models.PropertyPage) {
	st.Properties = page.Properties
	st.Page = page.Page
	st.Pages = page.Pages
	st.TotalProperties = page.TotalProperties
}

// applyCurrent replaces the single-item view wholesale.
func (st *PropertyState) applyCurrent(prop *models.Property) {
	st.Current = prop
}

// applyCreated prepends the new listing, most-recent-first. Pagination
// counters are left alone; they describe the last fetched page.
func (st *PropertyState) applyCreated(prop *models.Property) {
	st.Properties = append([]models.Property{*prop}, st.Properties...)
}

// applyUpdated replaces the current item and, when the updated listing is
// present in the collection, the matching element in place.
func (st *PropertyState) applyUpdated(prop *models.Property) {
	st.Current = prop
	for i := range st.Properties {
		if st.Properties[i].ID == prop.ID {
			st.Properties[i] = *prop
		}
	}
}

// applyDeleted removes the deleted listing from the collection, preserving
// the order of the rest. Current is left alone; a view showing the deleted
// item clears it explicitly via ResetCurrent.
func (st *PropertyState) applyDeleted(id string) {
	kept := st.Properties[:0]
	for _, p := range st.Properties {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	st.Properties = kept
}

// PropertyStore holds the property catalog state and dispatches the listing
// operations.
type PropertyStore struct {
	mu        sync.Mutex
	state     PropertyState
	api       *api.Client
	logger    *logrus.Logger
	listeners *listenerRegistry
}

// NewPropertyStore creates an empty property store.
func NewPropertyStore(client *api.Client, logger *logrus.Logger) *PropertyStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &PropertyStore{
		api:       client,
		logger:    logger,
		listeners: newListenerRegistry(),
		state:     PropertyState{Page: 1, Pages: 1},
	}
}

// Snapshot returns a copy of the current property state.
func (s *PropertyStore) Snapshot() PropertyState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Properties = append([]models.Property(nil), s.state.Properties...)
	out.Featured = append([]models.Property(nil), s.state.Featured...)
	out.Nearby = append([]models.Property(nil), s.state.Nearby...)
	if s.state.Current != nil {
		current := *s.state.Current
		out.Current = &current
	}
	return out
}

// Subscribe registers a callback invoked after every state transition and
// returns an unsubscribe function.
func (s *PropertyStore) Subscribe(fn func()) func() {
	return s.listeners.add(fn)
}

// Reset clears the lifecycle flags and message, leaving all data untouched.
func (s *PropertyStore) Reset() {
	s.mu.Lock()
	s.state.Lifecycle.clear()
	s.mu.Unlock()
	s.listeners.fire()
}

// ResetCurrent clears the single-item view, as when leaving a detail page.
func (s *PropertyStore) ResetCurrent() {
	s.mu.Lock()
	s.state.Current = nil
	s.mu.Unlock()
	s.listeners.fire()
}

// GetProperties fetches one page of listings matching the filter state and
// replaces the collection and pagination counters.
func (s *PropertyStore) GetProperties(ctx context.Context, filters models.FilterState) error {
	s.applyPending()

	page, err := s.api.GetProperties(ctx, filters)
	if err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.applyPage(page) })
	return nil
}

// GetProperty fetches a single listing into the current view.
func (s *PropertyStore) GetProperty(ctx context.Context, id string) error {
	s.applyPending()

	prop, err := s.api.GetProperty(ctx, id)
	if err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.applyCurrent(prop) })
	return nil
}

// GetFeatured fetches the featured listings.
func (s *PropertyStore) GetFeatured(ctx context.Context) error {
	s.applyPending()

	props, err := s.api.GetFeatured(ctx)
	if err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.Featured = props })
	return nil
}

// GetNearby fetches listings within radius kilometers of a point.
func (s *PropertyStore) GetNearby(ctx context.Context, lat, lng, radius float64) error {
	s.applyPending()

	props, err := s.api.GetNearby(ctx, lat, lng, radius)
	if err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.Nearby = props })
	return nil
}

// Create creates a listing owned by the current session and prepends it to
// the collection.
func (s *PropertyStore) Create(ctx context.Context, req api.PropertyRequest) error {
	s.applyPending()

	prop, err := s.api.CreateProperty(ctx, req)
	if err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.applyCreated(prop) })
	return nil
}

// Update updates a listing, refreshing both the current view and the
// matching collection element.
func (s *PropertyStore) Update(ctx context.Context, id string, req api.PropertyRequest) error {
	s.applyPending()

	prop, err := s.api.UpdateProperty(ctx, id, req)
	if err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.applyUpdated(prop) })
	return nil
}

// Delete removes a listing from the backend and prunes it from the
// collection.
func (s *PropertyStore) Delete(ctx context.Context, id string) error {
	s.applyPending()

	if err := s.api.DeleteProperty(ctx, id); err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.applyDeleted(id) })
	return nil
}

// GetUserProperties fetches the current session's own listings into the
// collection. The response is a plain array; pagination counters are left
// alone.
func (s *PropertyStore) GetUserProperties(ctx context.Context) error {
	s.applyPending()

	props, err := s.api.GetUserProperties(ctx)
	if err != nil {
		s.reject(err)
		return err
	}

	s.fulfill(func(st *PropertyState) { st.Properties = props })
	return nil
}

func (s *PropertyStore) applyPending() {
	s.mu.Lock()
	s.state.Lifecycle.pending()
	s.mu.Unlock()
	s.listeners.fire()
}

func (s *PropertyStore) fulfill(merge func(*PropertyState)) {
	s.mu.Lock()
	merge(&s.state)
	s.state.Lifecycle.fulfilled()
	s.mu.Unlock()
	s.listeners.fire()
}

// reject records the failure; existing data stays as it was so a view can
// keep rendering the last good state alongside the error message.
func (s *PropertyStore) reject(err error) {
	s.mu.Lock()
	s.state.Lifecycle.rejected(err.Error())
	s.mu.Unlock()
	s.listeners.fire()
}
