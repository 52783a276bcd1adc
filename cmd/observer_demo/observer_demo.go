package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/selectdb/observer/pkg/events"
	"github.com/selectdb/observer/pkg/observer"
	"github.com/selectdb/observer/pkg/utils"
	"github.com/selectdb/observer/pkg/version"
	"github.com/selectdb/observer/pkg/xmetrics"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Demo struct {
	Name      string
	Rounds    int
	Seed      int64
	Interval  time.Duration
	EditorDir string
	FailFast  bool
}

var (
	demo        Demo
	showVersion bool
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "The program's version")

	flag.StringVar(&demo.Name, "demo", "subject", "demo to run: subject or editor")
	flag.IntVar(&demo.Rounds, "rounds", 2, "business logic rounds before ObserverA is detached")
	flag.Int64Var(&demo.Seed, "seed", 0, "seed of the subject's state source, 0 for time based")
	flag.DurationVar(&demo.Interval, "interval", 0, "keep running business logic at this interval until interrupted")
	flag.StringVar(&demo.EditorDir, "editor_dir", "editor_demo", "directory the editor demo writes into")
	flag.BoolVar(&demo.FailFast, "fail_fast", false, "stop a notify pass at the first failing observer")
	flag.Parse()

	utils.InitLog()
}

func main() {
	if showVersion {
		printVersion()
	}

	log.Infof("observer demo start, version: %s", version.GetVersion())

	if _, err := xmetrics.InitGlobal("observer-demo"); err != nil {
		log.Fatalf("init metrics failed: %+v", err)
	}

	policy := observer.IsolateAndContinue
	if demo.FailFast {
		policy = observer.FailFast
	}

	switch demo.Name {
	case "subject":
		runSubject(policy)
	case "editor":
		if err := runEditor(policy); err != nil {
			log.Fatalf("editor demo failed: %+v", err)
		}
	default:
		log.Fatalf("unknown demo: %s", demo.Name)
	}
}

func businessLogic(subject *observer.Subject) {
	if err := subject.SomeBusinessLogic(); err != nil {
		log.Warnf("notify observers failed: %+v", err)
	}
}

func runSubject(policy observer.Policy) {
	opts := []observer.Option{observer.WithName("subject"), observer.WithPolicy(policy)}
	if demo.Seed != 0 {
		opts = append(opts, observer.WithRand(rand.New(rand.NewSource(demo.Seed))))
	}
	subject := observer.NewSubject(opts...)

	reactor := observer.MultiReactor{observer.DefaultReactor(), observer.MetricsReactor{}}
	observerA := observer.NewObserverA(reactor)
	observerB := observer.NewObserverB(reactor)
	subject.Attach(observerA)
	subject.Attach(observerB)

	for i := 0; i < demo.Rounds; i++ {
		businessLogic(subject)
	}

	if err := subject.Detach(observerA); err != nil {
		log.Warnf("detach observer failed: %+v", err)
	}
	businessLogic(subject)

	if demo.Interval > 0 {
		serve(subject, demo.Interval)
	}
}

// serve runs business logic every interval until SIGINT, SIGTERM or SIGQUIT.
func serve(subject *observer.Subject, interval time.Duration) {
	monitor := NewMonitor(subject, 0)
	stop := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Start()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				businessLogic(subject)
			}
		}
	}()

	signalMux := NewSignalMux(func(sig os.Signal) bool {
		// SIGHUP only asks for a stats dump
		if sig == syscall.SIGHUP {
			monitor.dump()
			return false
		}
		return true
	})
	signalMux.Serve()

	close(stop)
	monitor.Stop()
	wg.Wait()
}

func runEditor(policy observer.Policy) error {
	fs := afero.NewBasePathFs(afero.NewOsFs(), demo.EditorDir)
	if err := fs.MkdirAll("/", 0o755); err != nil {
		return err
	}

	editor := events.NewEditor(fs, policy)
	editor.Events().Subscribe(events.EventOpen,
		events.NewLoggingListener(fs, "/editor.log", "Someone has opened the file: %s"))
	editor.Events().Subscribe(events.EventSave,
		events.NewEmailAlertsListener("admin@example.com", "Someone has changed the file: %s", nil))

	if err := editor.OpenFile("/salary.dat"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(editor, "salary records at %s\n", time.Now().Format(time.RFC3339)); err != nil {
		return err
	}
	return editor.SaveFile()
}
