package domain

type EventType string

const (
	EventHazardUpserted EventType = "new_hazard"
	EventHazardDeleted  EventType = "delete_hazard"
)

// Event is a single broadcast message. Upserts carry the full record,
// deletes carry only the id.
type Event struct {
	Type EventType `json:"type"`
	Data *Hazard   `json:"data,omitempty"`
	ID   int64     `json:"id,omitempty"`
}

func HazardUpserted(h Hazard) Event {
	return Event{Type: EventHazardUpserted, Data: &h}
}

func HazardDeleted(id int64) Event {
	return Event{Type: EventHazardDeleted, ID: id}
}

// HazardID returns the id of the hazard the event refers to.
func (ev Event) HazardID() int64 {
	if ev.Data != nil {
		return ev.Data.ID
	}
	return ev.ID
}

// CommitFunc receives the outcome of a store mutation. The store calls it
// after the change is applied and before the next mutation can start.
type CommitFunc func(Event)
