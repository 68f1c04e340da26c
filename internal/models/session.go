package models

// User roles recognized by the backend.
const (
	RoleBuyer = "buyer"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Session is the client-held authenticated identity, including the bearer
// token and the user's favorited property ids. It mirrors the payload the
// backend returns from register/login/profile endpoints.
type Session struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Role      string   `json:"role"`
	Token     string   `json:"token"`
	Favorites []string `json:"favorites"`
}

// HasFavorite reports whether the given property id is in the session's
// favorites set.
func (s *Session) HasFavorite(propertyID string) bool {
	for _, id := range s.Favorites {
		if id == propertyID {
			return true
		}
	}
	return false
}

// Agent is a public agent profile as returned by the agents endpoint.
type Agent struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// FavoritesResponse is the payload of the favorite add/remove endpoints.
type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}
