package models

// Room is a single rentable unit within an object.
type Room struct {
	ID   int    `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// RentalObject is a property holding one or more rooms. Bookings reference
// objects and rooms by the provider's integer ids.
type RentalObject struct {
	ID    int    `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Rooms []Room `bson:"rooms" json:"rooms"`
}
