package domain

// Default branch layout. Branch settings in storage override all of these;
// the defaults only seed branches that were never configured.
const (
	DefaultTotalSlots     = 14
	DefaultPlayersPerSlot = 6

	DefaultGameDurationMinutes  = 60
	DefaultEventDurationMinutes = 120
)

// DefaultRoomCapacities seeds the four stock rooms, in room-id order.
var DefaultRoomCapacities = []int{20, 25, 50, 50}

// DefaultRoomNames mirrors DefaultRoomCapacities.
var DefaultRoomNames = []string{"Salle 1", "Salle 2", "Salle 3", "Salle 4"}

// Business validation constants
const (
	MinParticipants = 0
	MaxParticipants = 500

	MinDurationMinutes = 15
	MaxDurationMinutes = 480 // 8 hours

	MaxNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
