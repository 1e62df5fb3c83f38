package services

import (
	"fmt"
	"testing"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database. A single pooled
// connection keeps concurrent writes from tripping SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.User{}, &entity.Ride{}, &entity.RideRequest{},
		&entity.Notification{}, &entity.Chat{}, &entity.ChatMessage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newRequestService(t *testing.T, db *gorm.DB) *RideRequestService {
	t.Helper()
	notif := NewNotificationService(repository.NewNotificationRepository(db))
	return NewRideRequestService(
		db,
		repository.NewRideRequestRepository(db),
		repository.NewRideRepository(db),
		repository.NewUserRepository(db),
		notif,
	)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: name + "@example.com", Password: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedRide(t *testing.T, db *gorm.DB, initiatorID uint, seats int) *entity.Ride {
	t.Helper()
	ride := &entity.Ride{
		InitiatorID:   initiatorID,
		Pickup:        entity.Place{Name: "Central Station"},
		Destination:   entity.Place{Name: "Airport"},
		DepartureTime: time.Now().Add(time.Hour),
		Seats:         seats,
		RideType:      "buddy",
	}
	if err := db.Create(ride).Error; err != nil {
		t.Fatalf("seed ride: %v", err)
	}
	return ride
}

func notificationsFor(t *testing.T, db *gorm.DB, recipientID uint) []entity.Notification {
	t.Helper()
	var ns []entity.Notification
	if err := db.Where("recipient_id = ?", recipientID).Find(&ns).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	return ns
}
