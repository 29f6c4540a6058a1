// Package events carries catalog change notifications from services to views.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movie-manager/internal/logger"
)

const (
	CatalogLoaded        = "catalog.loaded"
	MovieAdded           = "movie.added"
	SeriesAdded          = "series.added"
	SeriesSeasonsUpdated = "series.seasons_updated"
	ReviewSubmitted      = "review.submitted"
)

type Event struct {
	Type      string
	Timestamp time.Time
	Data      map[string]interface{}
	Context   context.Context
}

type EventHandler interface {
	Handle(event Event)
	GetID() string
}

// HandlerFunc adapts a function into an EventHandler identified by id.
func HandlerFunc(id string, fn func(Event)) EventHandler {
	return funcHandler{id: id, fn: fn}
}

type funcHandler struct {
	id string
	fn func(Event)
}

func (h funcHandler) Handle(e Event)  { h.fn(e) }
func (h funcHandler) GetID() string { return h.id }

// Publisher is what services need from the bus.
type Publisher interface {
	Publish(event Event)
}

type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	buffer      chan Event
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	logger      logger.Logger
	closeOnce   sync.Once
}

func NewBus(bufferSize int, log logger.Logger) *Bus {
	if log == nil {
		log = logger.NoOp{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	bus := &Bus{
		subscribers: make(map[string][]EventHandler),
		buffer:      make(chan Event, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
		logger:      log,
	}

	bus.startWorker()
	return bus
}

// Publish never blocks; the event is dropped when the buffer is full or the
// bus has shut down.
func (b *Bus) Publish(event Event) {
	event.Timestamp = time.Now()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.ctx.Err() != nil {
		return
	}

	select {
	case b.buffer <- event:
	default:
		b.logger.Warning("EventBus", "event dropped, buffer full", map[string]interface{}{"type": event.Type})
	}
}

func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

func (b *Bus) Unsubscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[eventType]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[eventType] = append(handlers[:i], handlers[i+1:]...)
			break
		}
	}
}

func (b *Bus) Shutdown() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.cancel()
		close(b.buffer)
		b.mu.Unlock()
		b.wg.Wait()
	})
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for event := range b.buffer {
			b.dispatchEvent(event)
		}
	}()
}

func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.subscribers[event.Type]))
	copy(handlers, b.subscribers[event.Type])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.wg.Add(1)
		go func(h EventHandler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("EventBus", "handler panicked", fmt.Errorf("handler panic: %v", r), map[string]interface{}{
						"type":    event.Type,
						"handler": h.GetID(),
					})
				}
			}()
			h.Handle(event)
		}(handler)
	}
}
