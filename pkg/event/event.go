// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	GameStarted       Type = "game_started"
	GameReset         Type = "game_reset"
	ShotFired         Type = "shot_fired"
	ShotExpired       Type = "shot_expired"
	AsteroidSpawned   Type = "asteroid_spawned"
	AsteroidHit       Type = "asteroid_hit"
	AsteroidDestroyed Type = "asteroid_destroyed"
	PlayerDestroyed   Type = "player_destroyed"
	ScoreChanged      Type = "score_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Subscription identifies a registered handler and can remove it
type Subscription struct {
	ID     uint64
	Cancel func()
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{
		id:      id,
		handler: handler,
	})

	return &Subscription{
		ID: id,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.GetType()]))
	for _, h := range b.handlers[event.GetType()] {
		handlers = append(handlers, h.handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// AsteroidEvent describes a change to a single asteroid slot
type AsteroidEvent struct {
	BaseEvent
	Slot  int
	Mass  float32
	Award int
}

// NewAsteroidEvent creates a new asteroid event
func NewAsteroidEvent(eventType Type, source interface{}, slot int, mass float32, award int) *AsteroidEvent {
	return &AsteroidEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Slot:  slot,
		Mass:  mass,
		Award: award,
	}
}

// ShotEvent describes a projectile being fired or despawned
type ShotEvent struct {
	BaseEvent
	Slot int
}

// NewShotEvent creates a new shot event
func NewShotEvent(eventType Type, source interface{}, slot int) *ShotEvent {
	return &ShotEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Slot: slot,
	}
}

// ScoreEvent reports the score after a change
type ScoreEvent struct {
	BaseEvent
	Score    int
	TopScore int
}

// NewScoreEvent creates a new score event
func NewScoreEvent(source interface{}, score, topScore int) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{
			EventType: ScoreChanged,
			Source:    source,
		},
		Score:    score,
		TopScore: topScore,
	}
}

// GameEvent marks a whole-game transition such as start or reset
type GameEvent struct {
	BaseEvent
	TopScore int
}

// NewGameEvent creates a new game lifecycle event
func NewGameEvent(eventType Type, source interface{}, topScore int) *GameEvent {
	return &GameEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		TopScore: topScore,
	}
}
