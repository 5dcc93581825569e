package services

// Real-time event names shared with the front-end.
const (
	EventMenuUpdated  = "menu_actualizado"
	EventNewOrder     = "nueva_orden"
	EventOrderStatus  = "actualizar_estado_orden"
	EventOrderIsReady = "orden_lista" // sent by kitchen clients
)

// Event is one push message. Data is omitted for events without payload.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// EventPublisher fans an event out to connected clients. Publish must not fail
// the caller; delivery is best effort.
type EventPublisher interface {
	Publish(Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
