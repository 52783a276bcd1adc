package events

import (
	"sync"

	"github.com/selectdb/observer/pkg/observer"
	"github.com/selectdb/observer/pkg/utils"
	"github.com/selectdb/observer/pkg/xerror"
	"github.com/selectdb/observer/pkg/xmetrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	EventOpen = "open"
	EventSave = "save"
)

var ErrListenerNotFound = xerror.NewWithoutStack(xerror.Event, "listener not found")

// Listener receives the data published with an event, a file name for
// the editor's events.
type Listener = utils.Observer[string]

// EventManager keeps one ordered listener registry per event type.
type EventManager struct {
	name   string
	policy observer.Policy

	mu        sync.RWMutex
	listeners map[string]*observer.Registry[Listener]
}

func NewEventManager(name string, policy observer.Policy) *EventManager {
	return &EventManager{
		name:      name,
		policy:    policy,
		listeners: make(map[string]*observer.Registry[Listener]),
	}
}

func (m *EventManager) registry(eventType string, create bool) *observer.Registry[Listener] {
	m.mu.RLock()
	registry, ok := m.listeners[eventType]
	m.mu.RUnlock()
	if ok || !create {
		return registry
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if registry, ok = m.listeners[eventType]; !ok {
		registry = observer.NewRegistry[Listener]()
		m.listeners[eventType] = registry
	}
	return registry
}

func (m *EventManager) Subscribe(eventType string, listener Listener) {
	log.Debugf("%s: subscribe %s to %s events", m.name, observer.Describe(listener), eventType)

	m.registry(eventType, true).Add(listener)
}

func (m *EventManager) Unsubscribe(eventType string, listener Listener) error {
	registry := m.registry(eventType, false)
	if registry == nil || !registry.Remove(listener) {
		return xerror.XWrapf(ErrListenerNotFound, "event %s, listener %s", eventType, observer.Describe(listener))
	}

	log.Debugf("%s: unsubscribe %s from %s events", m.name, observer.Describe(listener), eventType)
	return nil
}

// Notify hands data to the listeners of eventType, in subscription order.
func (m *EventManager) Notify(eventType string, data string) error {
	registry := m.registry(eventType, false)
	if registry == nil {
		return nil
	}

	listeners := registry.Snapshot()
	xmetrics.Notified(m.name)

	var err error
	utils.WithSubject(m.name, func() {
		log.Debugf("notify %d listeners of %s, data: %s", len(listeners), eventType, data)
		err = observer.Dispatch(listeners, data, m.policy)
	})
	return err
}

// Listeners returns how many listeners eventType has.
func (m *EventManager) Listeners(eventType string) int {
	registry := m.registry(eventType, false)
	if registry == nil {
		return 0
	}
	return registry.Len()
}

// EventTypes returns the sorted event types that have listeners.
func (m *EventManager) EventTypes() []string {
	m.mu.RLock()
	registries := maps.Clone(m.listeners)
	m.mu.RUnlock()

	types := make([]string, 0, len(registries))
	for _, eventType := range maps.Keys(registries) {
		if registries[eventType].Len() > 0 {
			types = append(types, eventType)
		}
	}
	slices.Sort(types)
	return types
}
