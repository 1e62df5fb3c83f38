package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type RideService struct {
	repo *repository.RideRepository
}

func NewRideService(repo *repository.RideRepository) *RideService {
	return &RideService{repo}
}

type CreateRideIn struct {
	Pickup        entity.Place `json:"pickup"`
	Destination   entity.Place `json:"destination"`
	DepartureTime time.Time    `json:"departureTime"`
	Seats         int          `json:"seats"`
	Fare          *int64       `json:"fare"`
	RideType      string       `json:"rideType"`
	Notes         string       `json:"notes"`
}

func (s *RideService) Create(initiatorID uint, in *CreateRideIn) (*entity.Ride, error) {
	if in.Pickup.Name == "" || in.Destination.Name == "" || in.Seats < 0 {
		return nil, ErrValidation
	}
	rideType := in.RideType
	if rideType == "" {
		rideType = "buddy"
	}
	if rideType != "cab" && rideType != "buddy" {
		return nil, ErrValidation
	}

	ride := &entity.Ride{
		InitiatorID:   initiatorID,
		Pickup:        in.Pickup,
		Destination:   in.Destination,
		DepartureTime: in.DepartureTime,
		Seats:         in.Seats,
		Fare:          in.Fare,
		RideType:      rideType,
		Notes:         in.Notes,
	}
	if err := s.repo.Create(ride); err != nil {
		return nil, err
	}
	return ride, nil
}

func (s *RideService) List(pickup, destination string) ([]entity.Ride, error) {
	return s.repo.List(pickup, destination)
}

func (s *RideService) Detail(rideID uint) (*entity.Ride, error) {
	ride, err := s.repo.FindByID(rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}
