package xmetrics

import (
	"time"

	"github.com/hashicorp/go-metrics"
	"github.com/selectdb/observer/pkg/xerror"
)

const (
	inmemInterval = 10 * time.Second
	inmemRetain   = time.Minute
)

// InitGlobal installs an in-memory sink as the global metrics sink. The
// sink's contents are dumped to stderr when the process receives SIGUSR1.
func InitGlobal(serviceName string) (*metrics.InmemSink, error) {
	sink, err := InitInmem(serviceName)
	if err != nil {
		return nil, err
	}
	metrics.DefaultInmemSignal(sink)
	return sink, nil
}

// InitInmem is InitGlobal without the signal handler, used by tests.
func InitInmem(serviceName string) (*metrics.InmemSink, error) {
	sink := metrics.NewInmemSink(inmemInterval, inmemRetain)

	conf := metrics.DefaultConfig(serviceName)
	conf.EnableHostname = false
	conf.EnableRuntimeMetrics = false
	if _, err := metrics.NewGlobal(conf, sink); err != nil {
		return nil, xerror.Wrap(err, xerror.Normal, "new global metrics failed")
	}

	return sink, nil
}

func AddError(err *xerror.XError) {
	metrics.IncrCounter(ErrorMetrics(err).Tag(), 1)
}

func AddSubject(subjectName string) {
	metrics.SetGauge(SubjectMetrics(subjectName).Observers().Tag(), 0)

	metrics.IncrCounter(DashboardMetrics().SubjectNum().Tag(), 1)
}

func ObserverCount(subjectName string, count int) {
	metrics.SetGauge(SubjectMetrics(subjectName).Observers().Tag(), float32(count))
}

func StateChanged(subjectName string, state int) {
	metrics.SetGauge(SubjectMetrics(subjectName).State().Tag(), float32(state))
}

func Notified(subjectName string) {
	metrics.IncrCounter(SubjectMetrics(subjectName).Notify().Tag(), 1)

	metrics.IncrCounter(DashboardMetrics().NotifyNum().Tag(), 1)
}

func Reacted(observerName string) {
	metrics.IncrCounter(ObserverMetrics(observerName).Reacted().Tag(), 1)
}
