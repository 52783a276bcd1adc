package xmetrics

import "github.com/selectdb/observer/pkg/xerror"

type IMetricsTag interface {
	Tag() []string
}

type metricsTag struct {
	tags []string
}

// dashboard metrics
type dashboardMetrics struct {
	metricsTag
}

func DashboardMetrics() *dashboardMetrics {
	return &dashboardMetrics{
		metricsTag: metricsTag{[]string{"dashboard"}},
	}
}

func (d *dashboardMetrics) Tag() []string {
	return d.tags
}

func (d *dashboardMetrics) SubjectNum() IMetricsTag {
	d.tags = append(d.tags, "subjectNum")
	return d
}

func (d *dashboardMetrics) NotifyNum() IMetricsTag {
	d.tags = append(d.tags, "notifyNum")
	return d
}

// subject metrics
type subjectMetrics struct {
	metricsTag
	name string
}

func SubjectMetrics(subjectName string) *subjectMetrics {
	return &subjectMetrics{
		metricsTag: metricsTag{[]string{"subject"}},
		name:       subjectName,
	}
}

func (s *subjectMetrics) Tag() []string {
	tags := make([]string, 0, len(s.tags)+1)
	tags = append(tags, s.tags[0], s.name)
	return append(tags, s.tags[1:]...)
}

func (s *subjectMetrics) State() IMetricsTag {
	s.tags = append(s.tags, "state")
	return s
}

func (s *subjectMetrics) Observers() IMetricsTag {
	s.tags = append(s.tags, "observers")
	return s
}

func (s *subjectMetrics) Notify() IMetricsTag {
	s.tags = append(s.tags, "notify")
	return s
}

// observer metrics
type observerMetrics struct {
	metricsTag
}

func ObserverMetrics(observerName string) *observerMetrics {
	return &observerMetrics{
		metricsTag: metricsTag{[]string{"observer", observerName}},
	}
}

func (o *observerMetrics) Tag() []string {
	return o.tags
}

func (o *observerMetrics) Reacted() IMetricsTag {
	o.tags = append(o.tags, "reacted")
	return o
}

// error metrics
type errorMetrics struct {
	metricsTag
}

func ErrorMetrics(err *xerror.XError) IMetricsTag {
	errMetrics := &errorMetrics{
		metricsTag: metricsTag{[]string{"error", err.Category().Name()}},
	}

	if err.IsRecoverable() {
		errMetrics.tags = append(errMetrics.tags, "recoverable")
	} else if err.IsPanic() {
		errMetrics.tags = append(errMetrics.tags, "panic")
	} else {
		errMetrics.tags = append(errMetrics.tags, "unknown")
	}

	return errMetrics
}

func (e *errorMetrics) Tag() []string {
	return e.tags
}
