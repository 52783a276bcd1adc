package main

import (
	"runtime"
	"time"

	"github.com/selectdb/observer/pkg/observer"
	log "github.com/sirupsen/logrus"
)

const (
	MONITOR_DURATION = time.Second * 60
)

type Monitor struct {
	subject  *observer.Subject
	duration time.Duration
	stop     chan struct{}
}

func NewMonitor(subject *observer.Subject, duration time.Duration) *Monitor {
	if duration <= 0 {
		duration = MONITOR_DURATION
	}
	return &Monitor{
		subject:  subject,
		duration: duration,
		stop:     make(chan struct{}),
	}
}

func (m *Monitor) dump() {
	log.Infof("[GOROUTINE] Total = %v", runtime.NumGoroutine())

	mb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}

	// see: https://golang.org/pkg/runtime/#MemStats
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	log.Infof("[MEMORY STATS] Alloc = %v MiB, Sys = %v MiB, NumGC = %v",
		mb(stats.Alloc), mb(stats.Sys), stats.NumGC)

	subjectStats := m.subject.Stats()
	log.Infof("[SUBJECT STATS] Name = %s, State = %v, Observers = %v, Notifies = %v, Failures = %v",
		subjectStats.Name, subjectStats.State, subjectStats.Observers, subjectStats.Notifies, subjectStats.Failures)
}

func (m *Monitor) Start() {
	ticker := time.NewTicker(m.duration)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			m.dump()
			log.Info("monitor stopped")
			return
		case <-ticker.C:
			m.dump()
		}
	}
}

func (m *Monitor) Stop() {
	log.Info("monitor stopping")
	close(m.stop)
}
