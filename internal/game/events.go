package game

type EventType int

const (
	EventCrashed EventType = iota
	EventReset
)

type Event struct {
	Type EventType
	Pos  Vec3
}

type EventHandler func(Event)

// EventBus decouples crash/reset effects (audio, camera shake) from the
// state machine that raises them.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
