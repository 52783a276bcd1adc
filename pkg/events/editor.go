package events

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/selectdb/observer/pkg/observer"
	"github.com/selectdb/observer/pkg/xerror"
	"github.com/spf13/afero"
)

// File is an in-editor buffer backed by a path on an afero filesystem.
type File struct {
	fs      afero.Fs
	path    string
	content bytes.Buffer
}

// OpenFile loads path if it exists, otherwise starts an empty buffer.
func OpenFile(fs afero.Fs, path string) (*File, error) {
	file := &File{fs: fs, path: path}

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		file.content.Write(data)
	case os.IsNotExist(err):
	default:
		return nil, xerror.Wrapf(err, xerror.IO, "read file %s failed", path)
	}
	return file, nil
}

func (f *File) Name() string {
	return f.path
}

func (f *File) Content() []byte {
	return f.content.Bytes()
}

func (f *File) Write(p []byte) (int, error) {
	return f.content.Write(p)
}

func (f *File) Save() error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return xerror.Wrapf(err, xerror.IO, "create dir of %s failed", f.path)
	}
	if err := afero.WriteFile(f.fs, f.path, f.content.Bytes(), 0o644); err != nil {
		return xerror.Wrapf(err, xerror.IO, "write file %s failed", f.path)
	}
	return nil
}

// Editor publishes an open event when a file is opened and a save event
// after the file is written.
type Editor struct {
	fs     afero.Fs
	events *EventManager

	mu   sync.Mutex
	file *File
}

func NewEditor(fs afero.Fs, policy observer.Policy) *Editor {
	return &Editor{
		fs:     fs,
		events: NewEventManager("editor", policy),
	}
}

func (e *Editor) Events() *EventManager {
	return e.events
}

func (e *Editor) OpenFile(path string) error {
	file, err := OpenFile(e.fs, path)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.file = file
	e.mu.Unlock()

	return e.events.Notify(EventOpen, file.Name())
}

func (e *Editor) currentFile() (*File, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		return nil, xerror.Errorf(xerror.Event, "no file opened")
	}
	return e.file, nil
}

// Write appends p to the open file's buffer.
func (e *Editor) Write(p []byte) (int, error) {
	file, err := e.currentFile()
	if err != nil {
		return 0, err
	}
	return file.Write(p)
}

func (e *Editor) SaveFile() error {
	file, err := e.currentFile()
	if err != nil {
		return err
	}
	if err := file.Save(); err != nil {
		return err
	}

	return e.events.Notify(EventSave, file.Name())
}
