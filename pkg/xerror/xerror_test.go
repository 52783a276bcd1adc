package xerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXCategory(t *testing.T) {
	assert.Equal(t, Normal.Name(), "normal")
	assert.Equal(t, Registry.Name(), "registry")
	assert.Equal(t, Observer.Name(), "observer")
	assert.Equal(t, Event.Name(), "event")
	assert.Equal(t, IO.Name(), "io")
}

func TestXError_Error(t *testing.T) {
	errMsg := "test error"
	err := Errorf(Normal, errMsg)
	assert.NotNil(t, err)

	var xerr *XError
	assert.True(t, errors.As(err, &xerr))
	assert.Equal(t, xerr.Error(), fmt.Sprintf("[%s] %s", Normal.Name(), errMsg))

	err = Wrap(err, Registry, "wrapped error")
	assert.NotNil(t, err)

	// the innermost message wins
	assert.True(t, errors.As(err, &xerr))
	assert.Equal(t, xerr.Category(), Registry)
	assert.Equal(t, xerr.Error(), fmt.Sprintf("[%s] %s", Normal.Name(), errMsg))
}

func TestErrorf(t *testing.T) {
	err := Errorf(Observer, "observer %s failed", "a")
	assert.NotNil(t, err)

	var xerr *XError
	assert.True(t, errors.As(err, &xerr))
	assert.True(t, xerr.IsRecoverable())
	assert.Equal(t, xerr.Category(), Observer)
	assert.Equal(t, xerr.err.Error(), "observer a failed")
	assert.Equal(t, "Recoverable", xerr.Type())
}

func TestWrap(t *testing.T) {
	errMsg := "open log file"
	err := errors.New(errMsg)
	wrappedErr := Wrap(err, IO, "wrapped error")
	assert.NotNil(t, wrappedErr)
	assert.Contains(t, wrappedErr.Error(), "wrapped error")

	var xerr *XError
	assert.True(t, errors.As(wrappedErr, &xerr))
	assert.True(t, xerr.IsRecoverable())
	assert.Equal(t, xerr.Category(), IO)
	assert.Equal(t, xerr.err.Error(), errMsg)
	assert.True(t, errors.Is(wrappedErr, err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, IO, "nothing"))
	assert.Nil(t, Wrapf(nil, IO, "nothing %d", 1))
	assert.Nil(t, WithStack(nil))
}

func TestWrapf(t *testing.T) {
	errMsg := "listener failed"
	err := errors.New(errMsg)
	wrappedErr := Wrapf(err, Event, "wrapped error: %s", "save")
	assert.NotNil(t, wrappedErr)
	assert.Contains(t, wrappedErr.Error(), "wrapped error: save")

	var xerr *XError
	assert.True(t, errors.As(wrappedErr, &xerr))
	assert.True(t, xerr.IsRecoverable())
	assert.Equal(t, xerr.Category(), Event)
	assert.Equal(t, xerr.err.Error(), errMsg)
}

func TestIs(t *testing.T) {
	errNotFound := NewWithoutStack(Registry, "observer not found")
	wrappedErr := XWrapf(errNotFound, "observer: %s", "ObserverA")
	assert.NotNil(t, wrappedErr)

	assert.True(t, errors.Is(wrappedErr, errNotFound))

	xerr, ok := As(wrappedErr)
	assert.True(t, ok)
	assert.True(t, xerr.IsRecoverable())
	assert.Equal(t, xerr.Category(), Registry)
	assert.Equal(t, xerr.Error(), errNotFound.Error())
}

func TestPanic(t *testing.T) {
	errMsg := "test panic"
	err := Panic(Observer, errMsg)
	assert.NotNil(t, err)

	var xerr *XError
	assert.True(t, errors.As(err, &xerr))
	assert.True(t, xerr.IsPanic())
	assert.Equal(t, xerr.Category(), Observer)
	assert.Equal(t, xerr.err.Error(), errMsg)
}

func TestPanicWrapf(t *testing.T) {
	cause := errors.New("index out of range")
	err := PanicWrapf(cause, Observer, "observer %s panicked", "b")

	xerr, ok := As(err)
	assert.True(t, ok)
	assert.True(t, xerr.IsPanic())
	assert.Equal(t, "Panic", xerr.Type())
	assert.True(t, errors.Is(err, cause))
}

func TestAsPlainError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
}
