package services

import (
	"errors"
	"testing"

	"backend/entity"
)

// Full lifecycle walk: one seat, B is accepted and fills it, then C's request
// can no longer be accepted and stays pending.
func TestLastSeatScenario(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(t, db)
	owner := seedUser(t, db, "owner")
	userB := seedUser(t, db, "b")
	userC := seedUser(t, db, "c")
	ride := seedRide(t, db, owner.ID, 1)

	reqB, err := svc.Submit(ride.ID, userB.ID, "")
	if err != nil {
		t.Fatalf("submit B: %v", err)
	}
	if _, err := svc.Accept(ride.ID, reqB.ID, owner.ID); err != nil {
		t.Fatalf("accept B: %v", err)
	}

	var gotRide entity.Ride
	db.First(&gotRide, ride.ID)
	if gotRide.Seats != 0 {
		t.Fatalf("seats = %d, want 0", gotRide.Seats)
	}
	if ns := notificationsFor(t, db, userB.ID); len(ns) != 1 || ns[0].Type != entity.NotifRequestAccepted {
		t.Fatalf("B notifications = %+v", ns)
	}

	reqC, err := svc.Submit(ride.ID, userC.ID, "")
	if err != nil {
		t.Fatalf("submit C: %v", err)
	}
	if _, err := svc.Accept(ride.ID, reqC.ID, owner.ID); !errors.Is(err, ErrNoCapacity) {
		t.Fatalf("accept C err = %v, want ErrNoCapacity", err)
	}

	var gotC entity.RideRequest
	db.First(&gotC, reqC.ID)
	if gotC.Status != entity.RequestPending {
		t.Fatalf("C status = %s, want pending", gotC.Status)
	}
}
