package configs

import (
	"time"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedUsers creates two demo accounts for local development.
func SeedUsers() error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := []entity.User{
		{Name: "Asha Demo", Email: "asha@example.com", Password: string(hash), Role: "user"},
		{Name: "Ravi Demo", Email: "ravi@example.com", Password: string(hash), Role: "user"},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	ride := entity.Ride{
		InitiatorID:   users[0].ID,
		Pickup:        entity.Place{Name: "Central Station", Lat: 12.9716, Lng: 77.5946},
		Destination:   entity.Place{Name: "Airport", Lat: 13.1986, Lng: 77.7066},
		DepartureTime: time.Now().Add(24 * time.Hour),
		Seats:         3,
		RideType:      "cab",
	}
	return db.Create(&ride).Error
}
