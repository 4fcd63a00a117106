package scheduler

import "fmt"

// AllowSurbook returns a copy of the booking flagged as deliberately
// overbooked with the confirmed excess recorded. It does not re-validate
// that the surbooking is warranted: the caller is expected to invoke it only
// after a NEED_SURBOOK_CONFIRM conflict and explicit human confirmation.
func AllowSurbook(b Booking, excessParticipants int) Booking {
	b.Surbooked = true
	b.SurbookedParticipants = excessParticipants
	return b
}

// AllowRoomOvercap returns a copy of the booking flagged as a confirmed
// room-capacity overrun.
func AllowRoomOvercap(b Booking, excessParticipants int) Booking {
	b.RoomOvercap = true
	b.RoomOvercapParticipants = excessParticipants
	return b
}

// HasExceptions reports whether either exception flag is set.
func HasExceptions(b Booking) bool {
	return b.Surbooked || b.RoomOvercap
}

// ExceptionMessage renders the human-readable exception summary. Surbooking
// takes priority when both flags are set. The second return is false when
// the booking carries no displayable exception.
func ExceptionMessage(b Booking) (string, bool) {
	if b.Surbooked && b.SurbookedParticipants > 0 {
		return fmt.Sprintf("Surbooking: +%d personnes", b.SurbookedParticipants), true
	}
	if b.RoomOvercap && b.RoomOvercapParticipants > 0 {
		return fmt.Sprintf("Capacité dépassée: +%d personnes", b.RoomOvercapParticipants), true
	}
	return "", false
}

// SurbookLabel renders the compact "+N" badge shown in the agenda's hour
// column. Surbooking only; overcap has no compact form.
func SurbookLabel(b Booking) (string, bool) {
	if b.Surbooked && b.SurbookedParticipants > 0 {
		return fmt.Sprintf("+%d", b.SurbookedParticipants), true
	}
	return "", false
}

// RequiresConfirmation reports whether a conflict is of the recoverable,
// ask-a-human kind.
func RequiresConfirmation(c Conflict) bool {
	return c.Type == ConflictNeedSurbookConfirm || c.Type == ConflictNeedRoomOvercapConfirm
}

// ConflictPresentation is the presentation-ready shape of a conflict for a
// confirmation dialog.
type ConflictPresentation struct {
	Title              string
	Message            string
	ExcessParticipants int
	RoomName           string
	RoomCapacity       int
}

// PresentConflict maps a conflict to its dialog content. Types outside the
// confirmation flow fall back to a generic title without structured fields.
func PresentConflict(c Conflict) ConflictPresentation {
	switch c.Type {
	case ConflictNeedSurbookConfirm:
		p := ConflictPresentation{Title: "Surbooking nécessaire", Message: c.Message}
		if c.Details != nil {
			p.ExcessParticipants = c.Details.ExcessParticipants
		}
		return p

	case ConflictNeedRoomOvercapConfirm:
		p := ConflictPresentation{Title: "Capacité de salle dépassée", Message: c.Message}
		if c.Details != nil {
			p.ExcessParticipants = c.Details.ExcessParticipants
			p.RoomName = fmt.Sprintf("Salle %d", c.Details.RoomID)
			p.RoomCapacity = c.Details.RoomCapacity
		}
		return p

	default:
		return ConflictPresentation{Title: "Conflit", Message: c.Message}
	}
}
