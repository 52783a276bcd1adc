package utils

import (
	"github.com/modern-go/gls"
	"github.com/sirupsen/logrus"
)

const SubjectField = "subject"

// Hook stamps the goroutine-local value stored under Field on every entry.
type Hook struct {
	Field  string
	levels []logrus.Level
}

func (hook *Hook) Levels() []logrus.Level {
	return hook.levels
}

func (hook *Hook) Fire(entry *logrus.Entry) error {
	if value := gls.Get(hook.Field); value != nil {
		entry.Data[hook.Field] = value
	}
	return nil
}

func NewHook(levels ...logrus.Level) *Hook {
	hook := Hook{
		Field:  SubjectField,
		levels: levels,
	}
	if len(hook.levels) == 0 {
		hook.levels = logrus.AllLevels
	}

	return &hook
}

// WithSubject binds name to the current goroutine for the duration of fn,
// so every log line written by fn (observers included) carries the
// subject field. Nested calls restore the outer name on return.
func WithSubject(name string, fn func()) {
	goid := gls.GoID()
	prev := gls.Get(SubjectField)

	gls.ResetGls(goid, map[interface{}]interface{}{SubjectField: name})
	defer func() {
		if prev != nil {
			gls.ResetGls(goid, map[interface{}]interface{}{SubjectField: prev})
		} else {
			gls.DeleteGls(goid)
		}
	}()

	fn()
}
