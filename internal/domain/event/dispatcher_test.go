package event

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
)

type stubHandler struct {
	id     string
	events []string
	log    *[]string
	err    error
}

func (h *stubHandler) Handle(e DomainEvent) error {
	*h.log = append(*h.log, h.id+":"+e.EventName())
	return h.err
}

func (h *stubHandler) HandledEvents() []string { return h.events }

func TestInMemoryDispatcher_Order(t *testing.T) {
	var log []string
	d := NewInMemoryDispatcher(nil)
	all := &stubHandler{id: "all", events: []string{"*"}, log: &log}
	named := &stubHandler{id: "named", events: []string{NameDirectoryReclaimed}, log: &log}
	d.Subscribe(all)
	d.Subscribe(named)

	d.Dispatch(NewDirectoryReclaimed(domain.DeletedDirectory{Path: "/d/a"}, 1))
	d.Dispatch(NewReclaimStarted("/d", "/", 1, 0, 3))

	want := []string{
		"named:" + NameDirectoryReclaimed,
		"all:" + NameDirectoryReclaimed,
		"all:" + NameReclaimStarted,
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestInMemoryDispatcher_HandlerErrors(t *testing.T) {
	var log []string
	var reported []error
	d := NewInMemoryDispatcher(func(e DomainEvent, err error) {
		reported = append(reported, err)
	})
	boom := errors.New("boom")
	d.Subscribe(&stubHandler{id: "bad", events: []string{"*"}, log: &log, err: boom})
	d.Subscribe(&stubHandler{id: "good", events: []string{"*"}, log: &log})

	d.Dispatch(NewReclaimStarted("/d", "/", 1, 0, 0))

	if len(log) != 2 {
		t.Errorf("handlers called = %v, want both", log)
	}
	if len(reported) != 1 || !errors.Is(reported[0], boom) {
		t.Errorf("reported = %v, want [boom]", reported)
	}
}

func TestMetricsHandler(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	m := NewMetricsHandler()
	d.Subscribe(m)

	result := &domain.RunResult{TargetPath: "/d", Outcome: domain.OutcomeGoalMet}
	d.Dispatch(NewReclaimStarted("/d", "/", 1, 0, 2))
	d.Dispatch(NewDirectoryReclaimed(domain.DeletedDirectory{SizeBytes: 100}, 1))
	d.Dispatch(NewDirectoryReclaimed(domain.DeletedDirectory{SizeBytes: 50}, 2))
	d.Dispatch(NewReclaimCompleted(result))
	d.Dispatch(NewReclaimFailed(result, errors.New("x")))

	want := map[string]int64{
		"runs_started":        1,
		"runs_completed":      1,
		"runs_failed":         1,
		"directories_deleted": 2,
		"bytes_freed":         150,
	}
	if got := m.GetMetrics(); !reflect.DeepEqual(got, want) {
		t.Errorf("GetMetrics() = %v, want %v", got, want)
	}
}

func TestLoggingHandler_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewLoggingHandler(zap.New(core))
	result := &domain.RunResult{TargetPath: "/d", Outcome: domain.OutcomeExhausted, Elapsed: time.Second}

	for _, e := range []DomainEvent{
		NewReclaimStarted("/d", "/", 1, 0, 2),
		NewDirectoryReclaimed(domain.DeletedDirectory{Path: "/d/a"}, 1),
		NewReclaimCompleted(result),
		NewReclaimFailed(result, errors.New("x")),
	} {
		if err := h.Handle(e); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}

	want := []zapcore.Level{zapcore.InfoLevel, zapcore.DebugLevel, zapcore.InfoLevel, zapcore.ErrorLevel}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("logged %d entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Level != want[i] {
			t.Errorf("entry %d (%s) level = %v, want %v", i, entry.Message, entry.Level, want[i])
		}
	}
}

func TestNullDispatcher(t *testing.T) {
	var d EventDispatcher = NullDispatcher{}
	d.Subscribe(NewMetricsHandler())
	d.Dispatch(NewReclaimStarted("/d", "/", 1, 0, 0))
}
