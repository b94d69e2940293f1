package session

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names a successful session mutation.
type EventKind string

// Event kinds emitted by Store.
const (
	EventLogin            EventKind = "login"
	EventLogout           EventKind = "logout"
	EventProfileUpdated   EventKind = "profile_updated"
	EventAddressAdded     EventKind = "address_added"
	EventAddressSelected  EventKind = "address_selected"
	EventCategorySelected EventKind = "category_selected"
	EventCartAdded        EventKind = "cart_added"
	EventCartRemoved      EventKind = "cart_removed"
	EventCartCleared      EventKind = "cart_cleared"
	EventFavoriteToggled  EventKind = "favorite_toggled"
)

// Event describes a change to one session.
type Event struct {
	SessionID uuid.UUID
	Kind      EventKind
	At        time.Time
}

// Observer is notified after every successful mutation. Notify runs on the
// caller's goroutine after the store lock has been released, so observers may
// read from the store but must not block.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) {
	f(e)
}
