// Package api is the typed HTTP client for the listing backend. Every
// operation issues exactly one request and decodes the response into the
// model types, so malformed payloads surface as errors instead of leaking
// undefined fields into the stores.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"estatehub/client/internal/models"
	"estatehub/client/internal/query"
)

// Client talks to the listing backend. The http.Client is expected to carry
// the credential-gate transport; the api package itself never touches
// authentication.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient creates a Client for the given base URL ("http://host:port",
// no trailing slash required).
func NewClient(baseURL string, httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.New()
	}
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

// RegisterRequest is the body of POST /api/users.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=buyer agent"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest is the body of PUT /api/users/profile. Zero-valued fields
// are omitted so the backend treats the update as partial.
type ProfileRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// PropertyRequest is the body of property create/update calls.
type PropertyRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Type        string   `json:"type" validate:"required,propertytype"`
	Status      string   `json:"status" validate:"required,propertystatus"`
	Price       float64  `json:"price" validate:"gte=0"`
	Area        float64  `json:"area" validate:"gte=0"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0"`
	Furnishing  string   `json:"furnishing,omitempty"`
	Street      string   `json:"street" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state"`
	Zip         string   `json:"zip"`
	Images      []string `json:"images,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	IsFeatured  bool     `json:"isFeatured"`
}

// DeleteResponse is the acknowledgement of DELETE /api/properties/:id.
type DeleteResponse struct {
	ID string `json:"_id"`
}

// Register creates a new account and returns the session payload.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.Session, error) {
	var sess models.Session
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Login authenticates and returns the session payload.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*models.Session, error) {
	var sess models.Session
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// UpdateProfile partially updates the authenticated user's profile and
// returns the refreshed session payload.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileRequest) (*models.Session, error) {
	var sess models.Session
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// AddFavorite adds a property to the authenticated user's favorites and
// returns the updated favorites set.
func (c *Client) AddFavorite(ctx context.Context, propertyID string) ([]string, error) {
	body := map[string]string{"propertyId": propertyID}
	var resp models.FavoritesResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/favorites", body, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// RemoveFavorite removes a property from the favorites and returns the
// updated favorites set.
func (c *Client) RemoveFavorite(ctx context.Context, propertyID string) ([]string, error) {
	var resp models.FavoritesResponse
	if err := c.do(ctx, http.MethodDelete, "/api/users/favorites/"+propertyID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// GetAgents lists all agent profiles.
func (c *Client) GetAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := c.do(ctx, http.MethodGet, "/api/users/agents", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// GetProperties fetches one page of properties matching the filter state.
func (c *Client) GetProperties(ctx context.Context, filters models.FilterState) (*models.PropertyPage, error) {
	path := "/api/properties"
	if qs := query.Encode(filters); qs != "" {
		path += "?" + qs
	}
	var page models.PropertyPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProperty fetches a single property by id.
func (c *Client) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var prop models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/"+id, nil, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

// GetFeatured fetches the featured properties.
func (c *Client) GetFeatured(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/featured", nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetNearby fetches properties within radius kilometers of a point.
func (c *Client) GetNearby(ctx context.Context, lat, lng, radius float64) ([]models.Property, error) {
	path := fmt.Sprintf("/api/properties/nearby?lat=%s&lng=%s&radius=%s",
		formatFloat(lat), formatFloat(lng), formatFloat(radius))
	var props []models.Property
	if err := c.do(ctx, http.MethodGet, path, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// CreateProperty creates a listing owned by the authenticated user.
func (c *Client) CreateProperty(ctx context.Context, req PropertyRequest) (*models.Property, error) {
	var prop models.Property
	if err := c.do(ctx, http.MethodPost, "/api/properties", req, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

// UpdateProperty updates a listing and returns the updated record.
func (c *Client) UpdateProperty(ctx context.Context, id string, req PropertyRequest) (*models.Property, error) {
	var prop models.Property
	if err := c.do(ctx, http.MethodPut, "/api/properties/"+id, req, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

// DeleteProperty deletes a listing.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	var resp DeleteResponse
	return c.do(ctx, http.MethodDelete, "/api/properties/"+id, nil, &resp)
}

// GetUserProperties fetches the authenticated user's own listings.
func (c *Client) GetUserProperties(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/user", nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// do issues one request and decodes the response into out (which may be nil
// for operations whose body the caller does not need).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.WithError(err).WithField("path", path).Error("Failed to decode response body")
		return &Error{Status: resp.StatusCode, Message: "invalid response from server"}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
