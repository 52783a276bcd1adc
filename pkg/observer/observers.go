package observer

// Predicate decides from the subject's state whether an observer reacts.
type Predicate func(state int) bool

// PredicateObserver reacts through its Reactor whenever its predicate holds
// for the notifying subject's state. It never mutates the subject.
type PredicateObserver struct {
	name      string
	predicate Predicate
	reactor   Reactor
}

func NewPredicateObserver(name string, predicate Predicate, reactor Reactor) *PredicateObserver {
	if reactor == nil {
		reactor = DefaultReactor()
	}
	return &PredicateObserver{
		name:      name,
		predicate: predicate,
		reactor:   reactor,
	}
}

// NewObserverA reacts when the state is below 3.
func NewObserverA(reactor Reactor) *PredicateObserver {
	return NewPredicateObserver("ObserverA", func(state int) bool {
		return state < 3
	}, reactor)
}

// NewObserverB reacts when the state is 0 or at least 2.
func NewObserverB(reactor Reactor) *PredicateObserver {
	return NewPredicateObserver("ObserverB", func(state int) bool {
		return state == 0 || state >= 2
	}, reactor)
}

func (o *PredicateObserver) Name() string {
	return o.name
}

func (o *PredicateObserver) Update(subject *Subject) error {
	state := subject.State()
	if !o.predicate(state) {
		return nil
	}
	return o.reactor.React(o.name, state)
}

// FuncObserver adapts a function to utils.Observer[T]. Use the pointer so
// registrations stay comparable.
type FuncObserver[T any] struct {
	name string
	fn   func(T) error
}

func NewFuncObserver[T any](name string, fn func(T) error) *FuncObserver[T] {
	return &FuncObserver[T]{name: name, fn: fn}
}

func (o *FuncObserver[T]) Name() string {
	return o.name
}

func (o *FuncObserver[T]) Update(value T) error {
	return o.fn(value)
}
