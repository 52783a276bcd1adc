package events_test

import (
	"errors"
	"io"
	"testing"

	"github.com/selectdb/observer/pkg/events"
	"github.com/selectdb/observer/pkg/observer"
	"github.com/selectdb/observer/pkg/test_util"
	"github.com/selectdb/observer/pkg/xerror"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
)

func TestEventManagerRoutesByType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	manager := events.NewEventManager("test", observer.IsolateAndContinue)
	onOpen := test_util.NewMockObserver[string](ctrl)
	onSave := test_util.NewMockObserver[string](ctrl)
	onBoth := test_util.NewMockObserver[string](ctrl)

	gomock.InOrder(
		onOpen.EXPECT().Update("a.txt").Return(nil),
		onBoth.EXPECT().Update("a.txt").Return(nil),
	)
	onSave.EXPECT().Update("b.txt").Return(nil)
	onBoth.EXPECT().Update("b.txt").Return(nil)

	manager.Subscribe(events.EventOpen, onOpen)
	manager.Subscribe(events.EventOpen, onBoth)
	manager.Subscribe(events.EventSave, onSave)
	manager.Subscribe(events.EventSave, onBoth)

	require.NoError(t, manager.Notify(events.EventOpen, "a.txt"))
	require.NoError(t, manager.Notify(events.EventSave, "b.txt"))

	// nobody listens to close
	require.NoError(t, manager.Notify("close", "c.txt"))
	assert.Equal(t, []string{events.EventOpen, events.EventSave}, manager.EventTypes())
}

func TestEventManagerUnsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	manager := events.NewEventManager("test", observer.IsolateAndContinue)
	listener := test_util.NewMockObserver[string](ctrl)
	listener.EXPECT().Update(gomock.Any()).Times(0)

	manager.Subscribe(events.EventSave, listener)
	assert.Equal(t, 1, manager.Listeners(events.EventSave))

	// subscribed to save, not open
	err := manager.Unsubscribe(events.EventOpen, listener)
	assert.True(t, errors.Is(err, events.ErrListenerNotFound))

	require.NoError(t, manager.Unsubscribe(events.EventSave, listener))
	assert.Equal(t, 0, manager.Listeners(events.EventSave))
	assert.Empty(t, manager.EventTypes())

	require.NoError(t, manager.Notify(events.EventSave, "a.txt"))

	err = manager.Unsubscribe(events.EventSave, listener)
	xerr, ok := xerror.As(err)
	require.True(t, ok)
	assert.Equal(t, xerror.Event, xerr.Category())
}

func TestEditorScenario(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger, hook := test.NewNullLogger()
	logger.SetOutput(io.Discard)

	editor := events.NewEditor(fs, observer.IsolateAndContinue)
	editor.Events().Subscribe(events.EventOpen,
		events.NewLoggingListener(fs, "/var/log/editor.log", "Someone has opened the file: %s"))
	editor.Events().Subscribe(events.EventSave,
		events.NewEmailAlertsListener("admin@example.com", "Someone has changed the file: %s", events.NewLogMailer(logger)))

	require.NoError(t, editor.OpenFile("/docs/salary.txt"))
	_, err := io.WriteString(editor, "alice 100\n")
	require.NoError(t, err)
	require.NoError(t, editor.SaveFile())

	content, err := afero.ReadFile(fs, "/docs/salary.txt")
	require.NoError(t, err)
	assert.Equal(t, "alice 100\n", string(content))

	logged, err := afero.ReadFile(fs, "/var/log/editor.log")
	require.NoError(t, err)
	assert.Equal(t, "Someone has opened the file: /docs/salary.txt\n", string(logged))

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "Someone has changed the file: /docs/salary.txt", hook.LastEntry().Message)
	assert.Equal(t, "admin@example.com", hook.LastEntry().Data["to"])

	// reopening appends a second line and keeps the saved content
	require.NoError(t, editor.OpenFile("/docs/salary.txt"))
	logged, err = afero.ReadFile(fs, "/var/log/editor.log")
	require.NoError(t, err)
	assert.Equal(t, "Someone has opened the file: /docs/salary.txt\nSomeone has opened the file: /docs/salary.txt\n", string(logged))
}

func TestEditorWithoutFile(t *testing.T) {
	editor := events.NewEditor(afero.NewMemMapFs(), observer.IsolateAndContinue)

	_, err := editor.Write([]byte("lost"))
	assert.Error(t, err)

	err = editor.SaveFile()
	xerr, ok := xerror.As(err)
	require.True(t, ok)
	assert.Equal(t, xerror.Event, xerr.Category())
}

func TestEditorSaveFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	editor := events.NewEditor(fs, observer.IsolateAndContinue)

	require.NoError(t, editor.OpenFile("/docs/new.txt"))
	_, err := editor.Write([]byte("data"))
	require.NoError(t, err)

	err = editor.SaveFile()
	xerr, ok := xerror.As(err)
	require.True(t, ok)
	assert.Equal(t, xerror.IO, xerr.Category())
}

func TestEmailAlertsListenerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mailer := test_util.NewMockMailer(ctrl)
	cause := errors.New("smtp down")
	mailer.EXPECT().Send("ops@example.com", "changed: a.txt").Return(cause)

	fs := afero.NewMemMapFs()
	manager := events.NewEventManager("test", observer.IsolateAndContinue)
	manager.Subscribe(events.EventSave, events.NewEmailAlertsListener("ops@example.com", "changed: %s", mailer))
	manager.Subscribe(events.EventSave, events.NewLoggingListener(fs, "/save.log", "saved %s"))

	err := manager.Notify(events.EventSave, "a.txt")
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.True(t, errors.Is(err, cause))

	// the logging listener still ran
	logged, err := afero.ReadFile(fs, "/save.log")
	require.NoError(t, err)
	assert.Equal(t, "saved a.txt\n", string(logged))
}

func TestEventManagerFailFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	manager := events.NewEventManager("test", observer.FailFast)
	failing := test_util.NewMockObserver[string](ctrl)
	skipped := test_util.NewMockObserver[string](ctrl)
	failing.EXPECT().Update("a.txt").Return(errors.New("failed"))
	skipped.EXPECT().Update(gomock.Any()).Times(0)

	manager.Subscribe(events.EventOpen, failing)
	manager.Subscribe(events.EventOpen, skipped)

	assert.Error(t, manager.Notify(events.EventOpen, "a.txt"))
}
