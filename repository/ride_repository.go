package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type RideRepository struct {
	db *gorm.DB
}

func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{db}
}

func (r *RideRepository) Create(ride *entity.Ride) error {
	return r.db.Create(ride).Error
}

func (r *RideRepository) FindByID(id uint) (*entity.Ride, error) {
	var ride entity.Ride
	if err := r.db.First(&ride, id).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// List returns rides newest-first, optionally filtered by pickup/destination
// name substring.
func (r *RideRepository) List(pickup, destination string) ([]entity.Ride, error) {
	q := r.db.Model(&entity.Ride{})
	if pickup != "" {
		q = q.Where("pickup_name LIKE ?", "%"+pickup+"%")
	}
	if destination != "" {
		q = q.Where("destination_name LIKE ?", "%"+destination+"%")
	}
	var rides []entity.Ride
	err := q.Order("created_at DESC").Find(&rides).Error
	return rides, err
}

func (r *RideRepository) IsOwnedBy(rideID, userID uint) (bool, error) {
	var n int64
	err := r.db.Model(&entity.Ride{}).
		Where("id = ? AND initiator_id = ?", rideID, userID).
		Count(&n).Error
	return n > 0, err
}

// DecrementSeats takes one seat atomically: the WHERE clause carries the
// capacity check, so two racing accepts on the last seat resolve to exactly
// one affected row.
func (r *RideRepository) DecrementSeats(tx *gorm.DB, rideID uint) (int64, error) {
	res := tx.Model(&entity.Ride{}).
		Where("id = ? AND seats > 0", rideID).
		Update("seats", gorm.Expr("seats - 1"))
	return res.RowsAffected, res.Error
}
