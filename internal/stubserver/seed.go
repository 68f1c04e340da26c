package stubserver

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub/client/internal/models"
)

func ptr(f float64) *float64 { return &f }

// Seed inserts demo accounts and listings when the database is empty.
// Demo logins: asha@estatehub.dev / password (agent), ravi@estatehub.dev /
// password (buyer).
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	salt := newSalt()
	agent := User{
		ID:           uuid.NewString(),
		Name:         "Asha Mehta",
		Email:        "asha@estatehub.dev",
		Phone:        "9820011223",
		PasswordHash: hashPassword("password", salt),
		Salt:         salt,
		Role:         models.RoleAgent,
		Favorites:    "[]",
	}
	buyerSalt := newSalt()
	buyer := User{
		ID:           uuid.NewString(),
		Name:         "Ravi Kumar",
		Email:        "ravi@estatehub.dev",
		Phone:        "9911044556",
		PasswordHash: hashPassword("password", buyerSalt),
		Salt:         buyerSalt,
		Role:         models.RoleBuyer,
		Favorites:    "[]",
	}
	if err := db.Create(&agent).Error; err != nil {
		return err
	}
	if err := db.Create(&buyer).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	listings := []Property{
		{
			ID: uuid.NewString(), Title: "Sunlit 2BHK near Marine Drive",
			Description: "Corner apartment with sea breeze and covered parking.",
			Type:        models.TypeApartment, Status: models.StatusForSale,
			Price: 9500000, Area: 860, Bedrooms: 2, Bathrooms: 2,
			Furnishing: "semi-furnished",
			Street:     "14 Queens Road", City: "Mumbai", State: "MH", Zip: "400002",
			Images:    encodeStrings([]string{"/img/marine-drive-1.jpg"}),
			Amenities: encodeStrings([]string{"parking", "lift", "security"}),
			OwnerID:   agent.ID,
			Latitude:  ptr(18.9438), Longitude: ptr(72.8231),
			IsFeatured: true, CreatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID: uuid.NewString(), Title: "Garden villa in Whitefield",
			Description: "Four-bedroom villa with a private lawn.",
			Type:        models.TypeVilla, Status: models.StatusForSale,
			Price: 32000000, Area: 3200, Bedrooms: 4, Bathrooms: 4,
			Furnishing: "furnished",
			Street:     "7 Palm Meadows", City: "Bengaluru", State: "KA", Zip: "560066",
			Images:    encodeStrings([]string{"/img/whitefield-villa.jpg"}),
			Amenities: encodeStrings([]string{"garden", "pool", "parking"}),
			OwnerID:   agent.ID,
			Latitude:  ptr(12.9698), Longitude: ptr(77.7500),
			IsFeatured: true, CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID: uuid.NewString(), Title: "Compact studio for rent in Hauz Khas",
			Description: "Fully furnished studio, walking distance to the metro.",
			Type:        models.TypeApartment, Status: models.StatusForRent,
			Price: 28000, Area: 420, Bedrooms: 1, Bathrooms: 1,
			Furnishing: "furnished",
			Street:     "22 Aurobindo Marg", City: "Delhi", State: "DL", Zip: "110016",
			Images:    encodeStrings([]string{"/img/hauz-khas-studio.jpg"}),
			Amenities: encodeStrings([]string{"lift", "power-backup"}),
			OwnerID:   agent.ID,
			Latitude:  ptr(28.5494), Longitude: ptr(77.2001),
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID: uuid.NewString(), Title: "Corner shop on MG Road",
			Description: "High footfall retail unit, ready to move in.",
			Type:        models.TypeShop, Status: models.StatusForRent,
			Price: 120000, Area: 540, Bedrooms: 0, Bathrooms: 1,
			Street: "91 MG Road", City: "Pune", State: "MH", Zip: "411001",
			Images:    encodeStrings([]string{"/img/mg-road-shop.jpg"}),
			Amenities: encodeStrings([]string{"power-backup"}),
			OwnerID:   agent.ID,
			Latitude:  ptr(18.5167), Longitude: ptr(73.8563),
			CreatedAt: now.Add(-12 * time.Hour),
		},
	}
	for i := range listings {
		if err := db.Create(&listings[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
