package broadcast

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

var (
	errSubscriberGone = fmt.Errorf("subscriber gone: %w", e.ErrDeliveryFailed)
	errBufferFull     = fmt.Errorf("send buffer full: %w", e.ErrDeliveryFailed)
)

// Message is an event together with its wire encoding, which is produced
// once per publish and shared by every subscriber.
type Message struct {
	Event   domain.Event
	Payload []byte
}

// Subscriber is one connected observer. The send channel is never closed;
// departure is signalled through done so a late send cannot panic.
type Subscriber struct {
	id       uuid.UUID
	send     chan Message
	done     chan struct{}
	joinedAt time.Time
}

func newSubscriber(buffer int) *Subscriber {
	return &Subscriber{
		id:       uuid.New(),
		send:     make(chan Message, buffer),
		done:     make(chan struct{}),
		joinedAt: time.Now(),
	}
}

func (s *Subscriber) ID() uuid.UUID { return s.id }

func (s *Subscriber) JoinedAt() time.Time { return s.joinedAt }

// Messages yields events in publish order.
func (s *Subscriber) Messages() <-chan Message { return s.send }

// Done is closed once the subscriber has left the registry.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// deliver never blocks.
func (s *Subscriber) deliver(msg Message) error {
	select {
	case <-s.done:
		return errSubscriberGone
	default:
	}

	select {
	case s.send <- msg:
		return nil
	default:
		return errBufferFull
	}
}
