// Package team keeps the last known positions of other survey team members.
// Positions are merged read-only into the session view; only the local
// device ever mutates its own grid's cell statuses, so there are no
// cross-device write conflicts to resolve.
package team

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

const geoKey = "geo:team"

// staleAfter drops members that have not reported for a while
const staleAfter = 5 * time.Minute

// Store holds team member positions. When a Redis client is provided the
// positions are additionally indexed in a Redis GEO set, which makes them
// visible to other server instances; without Redis the store is
// process-local.
type Store struct {
	redis *redis.Client // optional

	mu      sync.RWMutex
	members map[string]models.TeamMember
}

// NewStore creates a team store. rdb may be nil for single-instance setups.
func NewStore(rdb *redis.Client) *Store {
	return &Store{
		redis:   rdb,
		members: make(map[string]models.TeamMember),
	}
}

// UpdatePosition records a member's latest position
func (s *Store) UpdatePosition(ctx context.Context, m models.TeamMember) error {
	if m.UpdatedAt == 0 {
		m.UpdatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	s.members[m.DeviceID] = m
	s.mu.Unlock()

	if s.redis != nil {
		err := s.redis.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      m.DeviceID,
			Longitude: m.Longitude,
			Latitude:  m.Latitude,
		}).Err()
		if err != nil {
			return err
		}
	}
	return nil
}

// Members lists all fresh member positions, excluding the requesting device
func (s *Store) Members(exclude string) []models.TeamMember {
	cutoff := time.Now().Add(-staleAfter).Unix()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TeamMember, 0, len(s.members))
	for id, m := range s.members {
		if id == exclude || m.UpdatedAt < cutoff {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Nearby lists fresh members within radiusMeters of a point. With Redis the
// GEO index answers the query; otherwise positions are filtered by
// haversine distance locally.
func (s *Store) Nearby(ctx context.Context, lat, lon, radiusMeters float64) ([]models.TeamMember, error) {
	if s.redis != nil {
		locs, err := s.redis.GeoSearch(ctx, geoKey, &redis.GeoSearchQuery{
			Longitude:  lon,
			Latitude:   lat,
			Radius:     radiusMeters,
			RadiusUnit: "m",
		}).Result()
		if err != nil {
			return nil, err
		}

		s.mu.RLock()
		defer s.mu.RUnlock()

		cutoff := time.Now().Add(-staleAfter).Unix()
		var out []models.TeamMember
		for _, id := range locs {
			if m, ok := s.members[id]; ok && m.UpdatedAt >= cutoff {
				out = append(out, m)
			}
		}
		return out, nil
	}

	var out []models.TeamMember
	for _, m := range s.Members("") {
		if spatial.HaversineDistance(lat, lon, m.Latitude, m.Longitude) <= radiusMeters {
			out = append(out, m)
		}
	}
	return out, nil
}

// Remove drops a member, e.g. when a device signs off
func (s *Store) Remove(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	delete(s.members, deviceID)
	s.mu.Unlock()

	if s.redis != nil {
		return s.redis.ZRem(ctx, geoKey, deviceID).Err()
	}
	return nil
}
