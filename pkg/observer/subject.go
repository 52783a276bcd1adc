package observer

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/selectdb/observer/pkg/utils"
	"github.com/selectdb/observer/pkg/xerror"
	"github.com/selectdb/observer/pkg/xmetrics"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// StateRange bounds the states drawn by SomeBusinessLogic: [0, StateRange).
const StateRange = 10

var ErrObserverNotFound = xerror.NewWithoutStack(xerror.Registry, "observer not found")

// Observer is notified with the subject whose state changed.
type Observer = utils.Observer[*Subject]

type Stats struct {
	Name      string
	State     int
	Observers int
	Notifies  uint64
	Failures  uint64
}

type Option func(*Subject)

func WithName(name string) Option {
	return func(s *Subject) {
		s.name = name
	}
}

// WithRand sets the source SomeBusinessLogic draws states from.
func WithRand(r *rand.Rand) Option {
	return func(s *Subject) {
		s.rand = r
	}
}

func WithPolicy(policy Policy) Option {
	return func(s *Subject) {
		s.policy = policy
	}
}

// Subject owns an integer state and notifies its observers after the state
// changes. It is safe for concurrent use; observers run on the notifying
// goroutine with no lock held, so they may attach or detach freely.
type Subject struct {
	name   string
	policy Policy

	mu    sync.RWMutex
	state int

	randMu sync.Mutex
	rand   *rand.Rand

	observers *Registry[utils.Observer[*Subject]]

	notifies atomic.Uint64
	failures atomic.Uint64
}

var _ utils.Subject[*Subject] = (*Subject)(nil)

func NewSubject(opts ...Option) *Subject {
	s := &Subject{
		policy:    IsolateAndContinue,
		observers: NewRegistry[utils.Observer[*Subject]](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.name == "" {
		s.name = uuid.NewString()
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	xmetrics.AddSubject(s.name)
	return s
}

func (s *Subject) Name() string {
	return s.name
}

func (s *Subject) State() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Len returns the number of registered observers, duplicates included.
func (s *Subject) Len() int {
	return s.observers.Len()
}

func (s *Subject) Stats() Stats {
	return Stats{
		Name:      s.name,
		State:     s.State(),
		Observers: s.Len(),
		Notifies:  s.notifies.Load(),
		Failures:  s.failures.Load(),
	}
}

func (s *Subject) Attach(observer Observer) {
	log.Debugf("subject %s: attached observer %s", s.name, Describe(observer))

	s.observers.Add(observer)
	xmetrics.ObserverCount(s.name, s.observers.Len())
}

// Detach removes the earliest registration of observer. It returns an error
// wrapping ErrObserverNotFound if observer is not attached.
func (s *Subject) Detach(observer Observer) error {
	if !s.observers.Remove(observer) {
		return xerror.XWrapf(ErrObserverNotFound, "subject %s, observer %s", s.name, Describe(observer))
	}

	log.Debugf("subject %s: detached observer %s", s.name, Describe(observer))
	xmetrics.ObserverCount(s.name, s.observers.Len())
	return nil
}

// Notify updates every observer registered when Notify begins, in attach
// order. Observers attached or detached during the pass are seen by the
// next one.
func (s *Subject) Notify() error {
	observers := s.observers.Snapshot()
	s.notifies.Add(1)
	xmetrics.Notified(s.name)

	var err error
	utils.WithSubject(s.name, func() {
		log.Debugf("notifying %d observers, policy: %s", len(observers), s.policy)
		err = Dispatch(observers, s, s.policy)
	})

	if err != nil {
		s.failures.Add(uint64(len(multierr.Errors(err))))
	}
	return err
}

// SetState commits state and then notifies the observers.
func (s *Subject) SetState(state int) error {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	log.Infof("subject %s: my state has just changed to: %d", s.name, state)
	xmetrics.StateChanged(s.name, state)

	return s.Notify()
}

// SomeBusinessLogic does the subject's real work, which ends with a new
// state in [0, StateRange) being committed and announced.
func (s *Subject) SomeBusinessLogic() error {
	log.Infof("subject %s: I'm doing something important", s.name)

	s.randMu.Lock()
	state := s.rand.Intn(StateRange)
	s.randMu.Unlock()

	return s.SetState(state)
}
