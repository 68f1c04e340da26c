package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/client/internal/api"
	"estatehub/client/internal/models"
)

func propertiesWithIDs(ids ...string) []models.Property {
	props := make([]models.Property, len(ids))
	for i, id := range ids {
		props[i] = models.Property{ID: id}
	}
	return props
}

func TestPropertyState_ApplyPageIsIdempotent(t *testing.T) {
	page := &models.PropertyPage{
		Properties:      propertiesWithIDs("1", "2"),
		Page:            2,
		Pages:           5,
		TotalProperties: 27,
	}

	var st PropertyState
	st.applyPage(page)
	first := st
	st.applyPage(page)

	assert.Equal(t, first.Properties, st.Properties)
	assert.Equal(t, 2, st.Page)
	assert.Equal(t, 5, st.Pages)
	assert.Equal(t, 27, st.TotalProperties)
}

func TestPropertyState_ApplyCreatedPrepends(t *testing.T) {
	st := PropertyState{Properties: propertiesWithIDs("1", "2"), TotalProperties: 2}

	st.applyCreated(&models.Property{ID: "3"})

	require.Len(t, st.Properties, 3)
	assert.Equal(t, "3", st.Properties[0].ID)
	assert.Equal(t, "1", st.Properties[1].ID)
	assert.Equal(t, "2", st.Properties[2].ID)
	// Pagination counters describe the last fetched page, not the local list.
	assert.Equal(t, 2, st.TotalProperties)
}

func TestPropertyState_ApplyUpdatedReplacesInPlace(t *testing.T) {
	st := PropertyState{Properties: propertiesWithIDs("1", "2", "3")}

	updated := &models.Property{ID: "2", Title: "Renovated flat"}
	st.applyUpdated(updated)

	assert.Equal(t, updated, st.Current)
	require.Len(t, st.Properties, 3)
	assert.Equal(t, "1", st.Properties[0].ID)
	assert.Equal(t, "Renovated flat", st.Properties[1].Title)
	assert.Equal(t, "3", st.Properties[2].ID)
}

func TestPropertyState_ApplyUpdatedWhenAbsentFromCollection(t *testing.T) {
	st := PropertyState{Properties: propertiesWithIDs("1")}

	updated := &models.Property{ID: "9"}
	st.applyUpdated(updated)

	assert.Equal(t, updated, st.Current)
	assert.Equal(t, propertiesWithIDs("1"), st.Properties)
}

func TestPropertyState_ApplyDeletedRemovesExactlyOne(t *testing.T) {
	st := PropertyState{
		Properties: propertiesWithIDs("1", "2", "3", "4"),
		Current:    &models.Property{ID: "2"},
	}

	st.applyDeleted("2")

	require.Len(t, st.Properties, 3)
	assert.Equal(t, "1", st.Properties[0].ID)
	assert.Equal(t, "3", st.Properties[1].ID)
	assert.Equal(t, "4", st.Properties[2].ID)
	// Current is untouched; the detail view clears it itself.
	assert.NotNil(t, st.Current)
}

func TestPropertyState_ApplyDeletedUnknownID(t *testing.T) {
	st := PropertyState{Properties: propertiesWithIDs("1", "2")}
	st.applyDeleted("99")
	assert.Equal(t, propertiesWithIDs("1", "2"), st.Properties)
}

func newPropertyTestStore(t *testing.T, handler http.Handler) *PropertyStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(server.URL, nil, logrus.New())
	return NewPropertyStore(client, logrus.New())
}

func TestPropertyStore_GetPropertiesLifecycle(t *testing.T) {
	store := newPropertyTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties", r.URL.Path)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("city"))
		json.NewEncoder(w).Encode(models.PropertyPage{
			Properties:      propertiesWithIDs("1"),
			Page:            1,
			Pages:           1,
			TotalProperties: 1,
		})
	}))

	var phases []Lifecycle
	unsubscribe := store.Subscribe(func() {
		phases = append(phases, store.Snapshot().Lifecycle)
	})
	defer unsubscribe()

	err := store.GetProperties(context.Background(), models.FilterState{City: "Mumbai", Page: 1})
	require.NoError(t, err)

	require.Len(t, phases, 2)
	assert.True(t, phases[0].IsLoading)
	assert.False(t, phases[0].IsError)
	assert.False(t, phases[0].IsSuccess)
	assert.False(t, phases[1].IsLoading)
	assert.True(t, phases[1].IsSuccess)
	assert.False(t, phases[1].IsError)

	snap := store.Snapshot()
	assert.Len(t, snap.Properties, 1)
	assert.Equal(t, 1, snap.TotalProperties)
}

func TestPropertyStore_RejectedKeepsData(t *testing.T) {
	fail := false
	store := newPropertyTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "database unavailable"})
			return
		}
		json.NewEncoder(w).Encode(models.PropertyPage{
			Properties: propertiesWithIDs("1", "2"), Page: 1, Pages: 1, TotalProperties: 2,
		})
	}))

	require.NoError(t, store.GetProperties(context.Background(), models.FilterState{}))

	fail = true
	err := store.GetProperties(context.Background(), models.FilterState{})
	require.Error(t, err)

	snap := store.Snapshot()
	assert.True(t, snap.IsError)
	assert.Equal(t, "database unavailable", snap.Message)
	// A failed fetch never clears the data already on screen.
	assert.Len(t, snap.Properties, 2)
}

func TestPropertyStore_EmptyListIsSuccess(t *testing.T) {
	store := newPropertyTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PropertyPage{Properties: []models.Property{}, Page: 1, Pages: 1})
	}))

	require.NoError(t, store.GetProperties(context.Background(), models.FilterState{City: "Nowhere"}))

	snap := store.Snapshot()
	assert.True(t, snap.IsSuccess)
	assert.False(t, snap.IsError)
	assert.Empty(t, snap.Properties)
}

func TestPropertyStore_Reset(t *testing.T) {
	store := newPropertyTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Property not found"})
	}))

	_ = store.GetProperty(context.Background(), "missing")
	require.True(t, store.Snapshot().IsError)

	store.Reset()
	snap := store.Snapshot()
	assert.False(t, snap.IsError)
	assert.False(t, snap.IsSuccess)
	assert.False(t, snap.IsLoading)
	assert.Empty(t, snap.Message)
}

func TestPropertyStore_ResetCurrent(t *testing.T) {
	store := newPropertyTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Property{ID: "1", Title: "Sea view"})
	}))

	require.NoError(t, store.GetProperty(context.Background(), "1"))
	require.NotNil(t, store.Snapshot().Current)

	store.ResetCurrent()
	assert.Nil(t, store.Snapshot().Current)
}

func TestPropertyStore_SnapshotIsACopy(t *testing.T) {
	store := newPropertyTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PropertyPage{
			Properties: propertiesWithIDs("1"), Page: 1, Pages: 1, TotalProperties: 1,
		})
	}))
	require.NoError(t, store.GetProperties(context.Background(), models.FilterState{}))

	snap := store.Snapshot()
	snap.Properties[0].ID = "mutated"

	assert.Equal(t, "1", store.Snapshot().Properties[0].ID)
}
