package services

import (
	"errors"
	"fmt"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// RideRequestService owns the join-request state machine and the seat
// inventory mutation an accept triggers.
type RideRequestService struct {
	DB       *gorm.DB
	Repo     *repository.RideRequestRepository
	RideRepo *repository.RideRepository
	UserRepo *repository.UserRepository
	Notifier *NotificationService
}

func NewRideRequestService(
	db *gorm.DB,
	repo *repository.RideRequestRepository,
	rideRepo *repository.RideRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
) *RideRequestService {
	return &RideRequestService{DB: db, Repo: repo, RideRepo: rideRepo, UserRepo: userRepo, Notifier: notifier}
}

// Submit creates a pending join request for the ride. A prior rejected
// request is replaced; a pending or accepted one blocks with ErrConflict.
func (s *RideRequestService) Submit(rideID, userID uint, message string) (*entity.RideRequest, error) {
	ride, err := s.RideRepo.FindByID(rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ride.InitiatorID == userID {
		return nil, ErrSelfRequest
	}

	existing, err := s.Repo.FindByRideAndUser(rideID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case entity.RequestPending, entity.RequestAccepted:
			return nil, ErrConflict
		case entity.RequestRejected:
			if err := s.Repo.Delete(existing.ID); err != nil {
				return nil, err
			}
		}
	}

	req := &entity.RideRequest{RideID: rideID, UserID: userID, Message: message}
	if err := s.Repo.Create(req); err != nil {
		// Racing submits for the same pair lose here on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.Notifier.Notify(ride.InitiatorID, userID, rideID,
		entity.NotifJoinRequest, fmt.Sprintf("%s has requested to join your ride", s.displayName(userID)))

	return req, nil
}

// ListForRide returns all requests for a ride; only the initiator may view.
func (s *RideRequestService) ListForRide(rideID, actingUserID uint) ([]entity.RideRequest, error) {
	ride, err := s.RideRepo.FindByID(rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ride.InitiatorID != actingUserID {
		return nil, ErrForbidden
	}
	return s.Repo.ListByRide(rideID)
}

// Accept takes a seat and marks the request accepted, atomically: the seat
// decrement is a guarded UPDATE, and a capacity miss aborts the transaction
// with the request still pending.
func (s *RideRequestService) Accept(rideID, requestID, actingUserID uint) (*entity.RideRequest, error) {
	ride, req, err := s.loadForTransition(rideID, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.RideRepo.DecrementSeats(tx, rideID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNoCapacity
		}
		affected, err = s.Repo.UpdateStatusGuard(tx, req.ID, entity.RequestPending, entity.RequestAccepted)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.Status = entity.RequestAccepted

	s.Notifier.Notify(req.UserID, actingUserID, rideID,
		entity.NotifRequestAccepted, fmt.Sprintf("Your request to join %s has been accepted", rideLabel(ride)))
	s.Notifier.DismissJoinRequestNotice(actingUserID, req.UserID, rideID)

	return req, nil
}

// Reject marks the request rejected; no seat mutation.
func (s *RideRequestService) Reject(rideID, requestID, actingUserID uint) (*entity.RideRequest, error) {
	ride, req, err := s.loadForTransition(rideID, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	affected, err := s.Repo.UpdateStatusGuard(s.DB, req.ID, entity.RequestPending, entity.RequestRejected)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrConflict
	}
	req.Status = entity.RequestRejected

	s.Notifier.Notify(req.UserID, actingUserID, rideID,
		entity.NotifRequestRejected, fmt.Sprintf("Your request to join %s has been rejected", rideLabel(ride)))
	s.Notifier.DismissJoinRequestNotice(actingUserID, req.UserID, rideID)

	return req, nil
}

// StatusFor reports whether the user has a request for the ride and, if so,
// its current record. Read-only.
func (s *RideRequestService) StatusFor(rideID, userID uint) (*entity.RideRequest, error) {
	req, err := s.Repo.FindByRideAndUser(rideID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

func (s *RideRequestService) loadForTransition(rideID, requestID, actingUserID uint) (*entity.Ride, *entity.RideRequest, error) {
	ride, err := s.RideRepo.FindByID(rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if ride.InitiatorID != actingUserID {
		return nil, nil, ErrForbidden
	}
	req, err := s.Repo.FindByIDForRide(requestID, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return ride, req, nil
}

func (s *RideRequestService) displayName(userID uint) string {
	u, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "Someone"
	}
	return u.Name
}

func rideLabel(ride *entity.Ride) string {
	if ride.Pickup.Name != "" {
		return ride.Pickup.Name
	}
	return "the ride"
}
