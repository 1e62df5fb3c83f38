package services

import (
	"errors"
	"testing"
	"time"

	"backend/entity"
	"backend/repository"
)

func newNotifService(t *testing.T) (*NotificationService, *entity.User, *entity.User, *entity.Ride) {
	t.Helper()
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	owner := seedUser(t, db, "owner")
	rider := seedUser(t, db, "rider")
	ride := seedRide(t, db, owner.ID, 2)
	return svc, owner, rider, ride
}

func TestListNewestFirstWithUnreadCount(t *testing.T) {
	svc, owner, rider, ride := newNotifService(t)

	first, err := svc.Create(owner.ID, rider.ID, ride.ID, entity.NotifJoinRequest, "first")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// ensure distinct created_at for the ordering assertion
	time.Sleep(10 * time.Millisecond)
	if _, err := svc.Create(owner.ID, rider.ID, ride.ID, entity.NotifJoinRequest, "second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.MarkRead(first.ID, owner.ID); err != nil {
		t.Fatalf("markRead: %v", err)
	}

	list, err := svc.List(owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(list.Items))
	}
	if list.Items[0].Message != "second" {
		t.Fatalf("order: first item = %q, want newest first", list.Items[0].Message)
	}
	if list.UnreadCount != 1 {
		t.Fatalf("unread = %d, want 1", list.UnreadCount)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	svc, owner, rider, ride := newNotifService(t)

	n, err := svc.Create(owner.ID, rider.ID, ride.ID, entity.NotifJoinRequest, "msg")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.MarkRead(n.ID, rider.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign markRead err = %v, want ErrNotFound", err)
	}
	if err := svc.MarkRead(n.ID, owner.ID); err != nil {
		t.Fatalf("markRead: %v", err)
	}
	// idempotent
	if err := svc.MarkRead(n.ID, owner.ID); err != nil {
		t.Fatalf("repeat markRead: %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc, owner, rider, ride := newNotifService(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(owner.ID, rider.ID, ride.ID, entity.NotifJoinRequest, "msg"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := svc.MarkAllRead(owner.ID); err != nil {
		t.Fatalf("markAllRead: %v", err)
	}

	list, err := svc.List(owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.UnreadCount != 0 {
		t.Fatalf("unread = %d, want 0", list.UnreadCount)
	}
}

func TestDeleteScopedToRecipient(t *testing.T) {
	svc, owner, rider, ride := newNotifService(t)

	n, err := svc.Create(owner.ID, rider.ID, ride.ID, entity.NotifJoinRequest, "msg")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(n.ID, rider.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(n.ID, owner.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(n.ID, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	list, err := svc.List(owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("items after delete = %d, want 0", len(list.Items))
	}
}
