package stubserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"gorm.io/gorm"

	"estatehub/client/internal/models"
)

type propertyBody struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Status      string   `json:"status" binding:"required"`
	Price       float64  `json:"price" binding:"gte=0"`
	Area        float64  `json:"area" binding:"gte=0"`
	Bedrooms    int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int      `json:"bathrooms" binding:"gte=0"`
	Furnishing  string   `json:"furnishing"`
	Street      string   `json:"street" binding:"required"`
	City        string   `json:"city" binding:"required"`
	State       string   `json:"state"`
	Zip         string   `json:"zip"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsFeatured  bool     `json:"isFeatured"`
}

// filteredQuery applies the list-view filter parameters to a query.
func (s *Server) filteredQuery(c *gin.Context) *gorm.DB {
	q := s.db.Model(&Property{})

	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", v)
	}
	if v := c.Query("type"); v != "" {
		q = q.Where("type = ?", v)
	}
	if v := c.Query("city"); v != "" {
		q = q.Where("LOWER(city) = LOWER(?)", v)
	}
	if v := c.Query("furnishing"); v != "" {
		q = q.Where("furnishing = ?", v)
	}
	if v := c.Query("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			q = q.Where("price >= ?", min)
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			q = q.Where("price <= ?", max)
		}
	}
	if v := c.Query("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q = q.Where("bedrooms >= ?", n)
		}
	}
	if v := c.Query("bathrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q = q.Where("bathrooms >= ?", n)
		}
	}
	return q
}

// payloads converts records to wire shapes, resolving owners in one query.
func (s *Server) payloads(properties []Property) ([]models.Property, error) {
	ownerIDs := make([]string, 0, len(properties))
	seen := map[string]bool{}
	for _, p := range properties {
		if p.OwnerID != "" && !seen[p.OwnerID] {
			seen[p.OwnerID] = true
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	owners := map[string]*User{}
	if len(ownerIDs) > 0 {
		var users []User
		if err := s.db.Where("id IN ?", ownerIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for i := range users {
			owners[users[i].ID] = &users[i]
		}
	}

	out := make([]models.Property, len(properties))
	for i := range properties {
		out[i] = properties[i].Payload(owners[properties[i].OwnerID])
	}
	return out, nil
}

func (s *Server) listProperties(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var total int64
	if err := s.filteredQuery(c).Count(&total).Error; err != nil {
		s.logger.WithError(err).Error("Failed to count properties")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get properties"})
		return
	}

	var properties []Property
	err = s.filteredQuery(c).
		Order("created_at DESC").
		Limit(propertiesPerPage).
		Offset((page - 1) * propertiesPerPage).
		Find(&properties).Error
	if err != nil {
		s.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get properties"})
		return
	}

	payloads, err := s.payloads(properties)
	if err != nil {
		s.logger.WithError(err).Error("Failed to resolve owners")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get properties"})
		return
	}

	pages := int((total + propertiesPerPage - 1) / propertiesPerPage)
	if pages < 1 {
		pages = 1
	}
	c.JSON(http.StatusOK, models.PropertyPage{
		Properties:      payloads,
		Page:            page,
		Pages:           pages,
		TotalProperties: int(total),
	})
}

func (s *Server) getProperty(c *gin.Context) {
	var property Property
	if err := s.db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}

	// Every detail fetch counts as a view.
	property.Views++
	if err := s.db.Model(&property).Update("views", property.Views).Error; err != nil {
		s.logger.WithError(err).Warn("Failed to record property view")
	}

	payloads, err := s.payloads([]Property{property})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get property"})
		return
	}
	c.JSON(http.StatusOK, payloads[0])
}

func (s *Server) listFeatured(c *gin.Context) {
	var properties []Property
	err := s.db.Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(propertiesPerPage).
		Find(&properties).Error
	if err != nil {
		s.logger.WithError(err).Error("Failed to get featured properties")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get featured properties"})
		return
	}

	payloads, err := s.payloads(properties)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get featured properties"})
		return
	}
	c.JSON(http.StatusOK, payloads)
}

func (s *Server) listNearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "lat and lng are required"})
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "10"), 64)
	if err != nil || radius <= 0 {
		radius = 10
	}

	var properties []Property
	if err := s.db.Where("latitude IS NOT NULL AND longitude IS NOT NULL").Find(&properties).Error; err != nil {
		s.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get nearby properties"})
		return
	}

	center := orb.Point{lng, lat}
	var nearby []Property
	for _, p := range properties {
		point := orb.Point{*p.Longitude, *p.Latitude}
		if geo.Distance(center, point) <= radius*1000 {
			nearby = append(nearby, p)
		}
	}

	payloads, err := s.payloads(nearby)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get nearby properties"})
		return
	}
	c.JSON(http.StatusOK, payloads)
}

func (s *Server) listUserProperties(c *gin.Context) {
	user := currentUser(c)

	var properties []Property
	err := s.db.Where("owner_id = ?", user.ID).Order("created_at DESC").Find(&properties).Error
	if err != nil {
		s.logger.WithError(err).Error("Failed to get user properties")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get properties"})
		return
	}

	payloads, err := s.payloads(properties)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get properties"})
		return
	}
	c.JSON(http.StatusOK, payloads)
}

func (s *Server) createProperty(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RoleAgent && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only agents can create listings"})
		return
	}

	var body propertyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill all required fields"})
		return
	}
	if !models.ValidStatus(body.Status) || !models.ValidType(body.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property type or status"})
		return
	}

	property := Property{
		ID:          uuid.NewString(),
		Title:       body.Title,
		Description: body.Description,
		Type:        body.Type,
		Status:      body.Status,
		Price:       body.Price,
		Area:        body.Area,
		Bedrooms:    body.Bedrooms,
		Bathrooms:   body.Bathrooms,
		Furnishing:  body.Furnishing,
		Street:      body.Street,
		City:        body.City,
		State:       body.State,
		Zip:         body.Zip,
		Images:      encodeStrings(body.Images),
		Amenities:   encodeStrings(body.Amenities),
		OwnerID:     user.ID,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		IsFeatured:  body.IsFeatured,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.Create(&property).Error; err != nil {
		s.logger.WithError(err).Error("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, property.Payload(user))
}

func (s *Server) updateProperty(c *gin.Context) {
	user := currentUser(c)

	var property Property
	if err := s.db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	if property.OwnerID != user.ID && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update this property"})
		return
	}

	var body propertyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill all required fields"})
		return
	}
	if !models.ValidStatus(body.Status) || !models.ValidType(body.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property type or status"})
		return
	}

	property.Title = body.Title
	property.Description = body.Description
	property.Type = body.Type
	property.Status = body.Status
	property.Price = body.Price
	property.Area = body.Area
	property.Bedrooms = body.Bedrooms
	property.Bathrooms = body.Bathrooms
	property.Furnishing = body.Furnishing
	property.Street = body.Street
	property.City = body.City
	property.State = body.State
	property.Zip = body.Zip
	property.Images = encodeStrings(body.Images)
	property.Amenities = encodeStrings(body.Amenities)
	property.Latitude = body.Latitude
	property.Longitude = body.Longitude
	property.IsFeatured = body.IsFeatured

	if err := s.db.Save(&property).Error; err != nil {
		s.logger.WithError(err).Error("Failed to update property")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update property"})
		return
	}

	var owner User
	if err := s.db.First(&owner, "id = ?", property.OwnerID).Error; err == nil {
		c.JSON(http.StatusOK, property.Payload(&owner))
		return
	}
	c.JSON(http.StatusOK, property.Payload(nil))
}

func (s *Server) deleteProperty(c *gin.Context) {
	user := currentUser(c)

	var property Property
	if err := s.db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	if property.OwnerID != user.ID && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete this property"})
		return
	}

	if err := s.db.Delete(&property).Error; err != nil {
		s.logger.WithError(err).Error("Failed to delete property")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"_id": property.ID, "message": "Property removed"})
}
