package engine

import (
	"time"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

// FirstSeen computes the earliest arrival per room across the supplied
// bookings: the first-seen-booking heuristic for when a unit entered the
// inventory. Rooms with no bookings are absent from the map. Inquiry
// bookings never contribute.
func FirstSeen(bookings []models.Booking) map[int]time.Time {
	firstSeen := make(map[int]time.Time)
	for _, b := range bookings {
		if b.Status == models.StatusInquiry {
			continue
		}
		arrival := b.Arrival
		if seen, ok := firstSeen[b.RoomID]; !ok || arrival.Before(seen) {
			firstSeen[b.RoomID] = arrival
		}
	}
	return firstSeen
}

// RoomDisabled reports whether a room had no inventory yet during the
// period: either the room has never carried a booking, or its first-seen
// date lies past the period's last night. Such a room/period is "not yet
// available", not vacant.
func RoomDisabled(firstSeen map[int]time.Time, roomID int, p models.Period) bool {
	seen, ok := firstSeen[roomID]
	if !ok {
		return true
	}
	return p.LastNight.Before(seen)
}

// EnabledUnits counts the object's rooms that are available during the
// period. This count is the occupancy denominator for the object-level
// aggregate.
func EnabledUnits(firstSeen map[int]time.Time, rooms []models.Room, p models.Period) int {
	count := 0
	for _, room := range rooms {
		if !RoomDisabled(firstSeen, room.ID, p) {
			count++
		}
	}
	return count
}
