package observer

import (
	"github.com/selectdb/observer/pkg/xmetrics"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Reactor carries out the observable effect of a reaction.
type Reactor interface {
	React(observer string, state int) error
}

type ReactorFunc func(observer string, state int) error

func (f ReactorFunc) React(observer string, state int) error {
	return f(observer, state)
}

// DefaultReactor logs through the standard logrus logger.
func DefaultReactor() Reactor {
	return NewLogReactor(log.StandardLogger())
}

type LogReactor struct {
	logger log.FieldLogger
}

func NewLogReactor(logger log.FieldLogger) *LogReactor {
	return &LogReactor{logger: logger}
}

func (r *LogReactor) React(observer string, state int) error {
	r.logger.WithField("state", state).Infof("%s: Reacted to the event", observer)
	return nil
}

type ZapReactor struct {
	logger *zap.Logger
}

func NewZapReactor(logger *zap.Logger) *ZapReactor {
	return &ZapReactor{logger: logger}
}

func (r *ZapReactor) React(observer string, state int) error {
	r.logger.Info("reacted to the event", zap.String("observer", observer), zap.Int("state", state))
	return nil
}

// MetricsReactor counts reactions per observer.
type MetricsReactor struct{}

func (MetricsReactor) React(observer string, _ int) error {
	xmetrics.Reacted(observer)
	return nil
}

// MultiReactor hands each reaction to every reactor, in order.
type MultiReactor []Reactor

func (m MultiReactor) React(observer string, state int) error {
	var errs error
	for _, r := range m {
		errs = multierr.Append(errs, r.React(observer, state))
	}
	return errs
}
