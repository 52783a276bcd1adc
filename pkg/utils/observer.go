package utils

// Observer reacts to notifications carrying a T. A non-nil error reports
// that the reaction failed; it never stops the subject.
type Observer[T any] interface {
	Update(T) error
}

type Subject[T any] interface {
	Attach(Observer[T])
	Detach(Observer[T]) error
	Notify() error
}
