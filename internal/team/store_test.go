package team

import (
	"context"
	"testing"
	"time"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
)

// All tests run the store in process-local mode (nil Redis client)

func TestUpdateAndListMembers(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	if err := s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-a", Latitude: 5.60, Longitude: -0.18}); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}
	if err := s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-b", Latitude: 5.61, Longitude: -0.19}); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}

	members := s.Members("")
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	for _, m := range members {
		if m.UpdatedAt == 0 {
			t.Errorf("member %s got no timestamp", m.DeviceID)
		}
	}
}

func TestMembersExcludesRequester(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-a", Latitude: 5.60, Longitude: -0.18})
	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-b", Latitude: 5.61, Longitude: -0.19})

	members := s.Members("dev-a")
	if len(members) != 1 || members[0].DeviceID != "dev-b" {
		t.Fatalf("members = %+v, want only dev-b", members)
	}
}

func TestUpdateReplacesPreviousPosition(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-a", Latitude: 5.60, Longitude: -0.18})
	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-a", Latitude: 5.62, Longitude: -0.20, Name: "Ama"})

	members := s.Members("")
	if len(members) != 1 {
		t.Fatalf("got %d members, want 1", len(members))
	}
	if members[0].Latitude != 5.62 || members[0].Name != "Ama" {
		t.Errorf("member = %+v, want updated fields", members[0])
	}
}

func TestStaleMembersDropOut(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	stale := time.Now().Add(-staleAfter - time.Minute).Unix()
	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-old", Latitude: 5.60, Longitude: -0.18, UpdatedAt: stale})
	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-new", Latitude: 5.61, Longitude: -0.19})

	members := s.Members("")
	if len(members) != 1 || members[0].DeviceID != "dev-new" {
		t.Fatalf("members = %+v, want only dev-new", members)
	}
}

func TestNearbyHaversineFallback(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	// ~0 m, ~111 m north, and ~11 km north of the query point
	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "here", Latitude: 5.6037, Longitude: -0.187})
	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "close", Latitude: 5.6047, Longitude: -0.187})
	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "far", Latitude: 5.7037, Longitude: -0.187})

	got, err := s.Nearby(ctx, 5.6037, -0.187, 500)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d members within 500 m, want 2", len(got))
	}
	for _, m := range got {
		if m.DeviceID == "far" {
			t.Error("member 11 km away returned for a 500 m radius")
		}
	}
}

func TestRemove(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	s.UpdatePosition(ctx, models.TeamMember{DeviceID: "dev-a", Latitude: 5.60, Longitude: -0.18})
	if err := s.Remove(ctx, "dev-a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := s.Members(""); len(got) != 0 {
		t.Fatalf("members after remove = %+v", got)
	}

	// Removing an unknown device is a no-op
	if err := s.Remove(ctx, "ghost"); err != nil {
		t.Fatalf("Remove unknown: %v", err)
	}
}
