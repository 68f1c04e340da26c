package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estatehub/client/internal/models"
)

type registerBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=buyer agent"`
}

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type favoriteBody struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

// sessionPayload builds the session response the client persists, minting a
// fresh token for the user.
func (s *Server) sessionPayload(u *User) (models.Session, error) {
	token, err := s.mintToken(u.ID)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Token:     token,
		Favorites: u.FavoriteIDs(),
	}, nil
}

func (s *Server) registerUser(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill all required fields"})
		return
	}

	var existing User
	if err := s.db.First(&existing, "email = ?", body.Email).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	salt := newSalt()
	user := User{
		ID:           uuid.NewString(),
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		PasswordHash: hashPassword(body.Password, salt),
		Salt:         salt,
		Role:         body.Role,
		Favorites:    "[]",
	}
	if err := s.db.Create(&user).Error; err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	session, err := s.sessionPayload(&user)
	if err != nil {
		s.logger.WithError(err).Error("Failed to mint token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) loginUser(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password"})
		return
	}

	var user User
	if err := s.db.First(&user, "email = ?", body.Email).Error; err != nil || !checkPassword(&user, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	session, err := s.sessionPayload(&user)
	if err != nil {
		s.logger.WithError(err).Error("Failed to mint token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) updateProfile(c *gin.Context) {
	user := currentUser(c)

	var body profileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if body.Name != "" {
		user.Name = body.Name
	}
	if body.Email != "" {
		user.Email = body.Email
	}
	if body.Phone != "" {
		user.Phone = body.Phone
	}
	if body.Password != "" {
		user.Salt = newSalt()
		user.PasswordHash = hashPassword(body.Password, user.Salt)
	}

	if err := s.db.Save(user).Error; err != nil {
		s.logger.WithError(err).Error("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	session, err := s.sessionPayload(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) addFavorite(c *gin.Context) {
	user := currentUser(c)

	var body favoriteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "propertyId is required"})
		return
	}

	var property Property
	if err := s.db.First(&property, "id = ?", body.PropertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}

	favorites := user.FavoriteIDs()
	for _, id := range favorites {
		if id == body.PropertyID {
			c.JSON(http.StatusOK, models.FavoritesResponse{Favorites: favorites})
			return
		}
	}
	favorites = append(favorites, body.PropertyID)
	user.SetFavorites(favorites)

	if err := s.db.Save(user).Error; err != nil {
		s.logger.WithError(err).Error("Failed to save favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save favorites"})
		return
	}
	c.JSON(http.StatusOK, models.FavoritesResponse{Favorites: favorites})
}

func (s *Server) removeFavorite(c *gin.Context) {
	user := currentUser(c)
	propertyID := c.Param("id")

	favorites := user.FavoriteIDs()
	kept := favorites[:0]
	for _, id := range favorites {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	user.SetFavorites(kept)

	if err := s.db.Save(user).Error; err != nil {
		s.logger.WithError(err).Error("Failed to save favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save favorites"})
		return
	}
	c.JSON(http.StatusOK, models.FavoritesResponse{Favorites: kept})
}

func (s *Server) listAgents(c *gin.Context) {
	var users []User
	if err := s.db.Where("role = ?", models.RoleAgent).Order("created_at").Find(&users).Error; err != nil {
		s.logger.WithError(err).Error("Failed to list agents")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list agents"})
		return
	}

	agents := make([]models.Agent, len(users))
	for i := range users {
		agents[i] = users[i].Agent()
	}
	c.JSON(http.StatusOK, agents)
}
