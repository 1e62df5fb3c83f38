package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type RideRequestRepository struct {
	db *gorm.DB
}

func NewRideRequestRepository(db *gorm.DB) *RideRequestRepository {
	return &RideRequestRepository{db}
}

func (r *RideRequestRepository) Create(req *entity.RideRequest) error {
	return r.db.Create(req).Error
}

func (r *RideRequestRepository) FindByRideAndUser(rideID, userID uint) (*entity.RideRequest, error) {
	var req entity.RideRequest
	if err := r.db.Where("ride_id = ? AND user_id = ?", rideID, userID).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// FindByIDForRide scopes the lookup to the ride so a request id from another
// ride cannot be acted on.
func (r *RideRequestRepository) FindByIDForRide(requestID, rideID uint) (*entity.RideRequest, error) {
	var req entity.RideRequest
	if err := r.db.Where("id = ? AND ride_id = ?", requestID, rideID).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RideRequestRepository) ListByRide(rideID uint) ([]entity.RideRequest, error) {
	var reqs []entity.RideRequest
	err := r.db.Preload("User").
		Where("ride_id = ?", rideID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *RideRequestRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&entity.RideRequest{}, id).Error
}

// UpdateStatusGuard flips status only from the expected current value and
// reports how many rows that matched.
func (r *RideRequestRepository) UpdateStatusGuard(tx *gorm.DB, requestID uint, from, to entity.RequestStatus) (int64, error) {
	res := tx.Model(&entity.RideRequest{}).
		Where("id = ? AND status = ?", requestID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
