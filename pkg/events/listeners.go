package events

import (
	"os"
	"strings"
	"sync"

	"github.com/selectdb/observer/pkg/xerror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func format(message, filename string) string {
	return strings.ReplaceAll(message, "%s", filename)
}

// LoggingListener appends one line per event to a log file.
type LoggingListener struct {
	fs      afero.Fs
	path    string
	message string

	mu sync.Mutex
}

func NewLoggingListener(fs afero.Fs, path, message string) *LoggingListener {
	return &LoggingListener{
		fs:      fs,
		path:    path,
		message: message,
	}
}

func (l *LoggingListener) Name() string {
	return "LoggingListener(" + l.path + ")"
}

func (l *LoggingListener) Update(filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return xerror.Wrapf(err, xerror.IO, "open log %s failed", l.path)
	}
	defer f.Close()

	if _, err := f.WriteString(format(l.message, filename) + "\n"); err != nil {
		return xerror.Wrapf(err, xerror.IO, "write log %s failed", l.path)
	}
	return nil
}

type Mailer interface {
	Send(to, body string) error
}

// LogMailer writes mails to the log instead of delivering them.
type LogMailer struct {
	logger log.FieldLogger
}

func NewLogMailer(logger log.FieldLogger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(to, body string) error {
	m.logger.WithField("to", to).Info(body)
	return nil
}

// EmailAlertsListener mails a message about the file to a fixed address.
type EmailAlertsListener struct {
	email   string
	message string
	mailer  Mailer
}

func NewEmailAlertsListener(email, message string, mailer Mailer) *EmailAlertsListener {
	if mailer == nil {
		mailer = NewLogMailer(log.StandardLogger())
	}
	return &EmailAlertsListener{
		email:   email,
		message: message,
		mailer:  mailer,
	}
}

func (l *EmailAlertsListener) Name() string {
	return "EmailAlertsListener(" + l.email + ")"
}

func (l *EmailAlertsListener) Update(filename string) error {
	if err := l.mailer.Send(l.email, format(l.message, filename)); err != nil {
		return xerror.Wrapf(err, xerror.Event, "mail %s failed", l.email)
	}
	return nil
}
