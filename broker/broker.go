// Package broker fans engine events out to registered subscribers.
package broker

import (
	"sync"

	"code.continuecash.io/continuecash/core/events"
	"code.continuecash.io/continuecash/logging"
)

// Subscriber receives every event sent on the broker.
type Subscriber interface {
	Push(evt events.Event)
}

// Interface is the surface the engines publish through.
type Interface interface {
	Send(event events.Event)
}

type Broker struct {
	Config
	log *logging.Logger

	mu     sync.RWMutex
	subs   map[int]Subscriber
	nextID int
}

func New(log *logging.Logger, conf Config) *Broker {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Broker{
		Config: conf,
		log:    log,
		subs:   map[int]Subscriber{},
	}
}

// Subscribe registers a subscriber, returning the key to unsubscribe
// with.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[b.nextID] = s
	return b.nextID
}

// Unsubscribe removes a subscriber, unknown keys are ignored.
func (b *Broker) Unsubscribe(key int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, key)
}

// Send pushes the event to every subscriber, synchronously, in no
// particular order.
func (b *Broker) Send(event events.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.subs {
		s.Push(event)
	}
}
