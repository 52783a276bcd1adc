package observer

import (
	"fmt"

	"github.com/selectdb/observer/pkg/utils"
	"github.com/selectdb/observer/pkg/xerror"
	"github.com/selectdb/observer/pkg/xmetrics"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Policy decides what a notify pass does when an observer fails.
type Policy int

const (
	// IsolateAndContinue updates every observer and reports all failures.
	IsolateAndContinue Policy = iota
	// FailFast stops the pass at the first failure.
	FailFast
)

func (p Policy) String() string {
	switch p {
	case IsolateAndContinue:
		return "isolate_and_continue"
	case FailFast:
		return "fail_fast"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

type named interface {
	Name() string
}

// Describe returns a printable name for an observer.
func Describe(o any) string {
	switch v := o.(type) {
	case named:
		return v.Name()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%T", o)
	}
}

// Dispatch calls Update(value) on each observer in order. Failures are
// combined with multierr; under FailFast the first failure ends the pass.
func Dispatch[T any](observers []utils.Observer[T], value T, policy Policy) error {
	var errs error
	for _, o := range observers {
		if err := update(o, value); err != nil {
			errs = multierr.Append(errs, err)
			if policy == FailFast {
				break
			}
		}
	}
	return errs
}

func update[T any](o utils.Observer[T], value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = xerror.Panicf(xerror.Observer, "observer %s panicked: %v", Describe(o), r)
		}
		if err == nil {
			return
		}

		log.Warnf("observer %s failed: %v", Describe(o), err)
		if xerr, ok := xerror.As(err); ok {
			xmetrics.AddError(xerr)
		}
	}()

	if err := o.Update(value); err != nil {
		return xerror.Wrapf(err, xerror.Observer, "observer %s update failed", Describe(o))
	}
	return nil
}
