package schedsvc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamespares/chinaprof/core/dashboard"
)

type logRecorder struct {
	mu   sync.Mutex
	msgs []string
}

func (l *logRecorder) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *logRecorder) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

func (l *logRecorder) Debug(msg string, _ ...interface{}) { l.record(msg) }
func (l *logRecorder) Info(msg string, _ ...interface{})  { l.record(msg) }
func (l *logRecorder) Warn(msg string, _ ...interface{})  { l.record(msg) }
func (l *logRecorder) Error(msg string, _ ...interface{}) { l.record(msg) }
func (l *logRecorder) Fatal(msg string, _ ...interface{}) { l.record(msg) }

type refresherStub struct {
	err   error
	calls chan struct{}
}

func (r *refresherStub) Refresh(context.Context) (dashboard.Overview, error) {
	r.calls <- struct{}{}
	return dashboard.Overview{}, r.err
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("dashboard refresh did not run")
	}
}

func TestScheduler_ScheduleDashboardRefresh(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog string
	}{
		{name: "refreshed", wantLog: "dashboard refreshed"},
		{name: "refresh failure is logged", err: errors.New("db down"), wantLog: "refreshing dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &logRecorder{}
			refresher := &refresherStub{err: tt.err, calls: make(chan struct{}, 1)}

			s := New(time.UTC, logger)
			require.NoError(t, s.ScheduleDashboardRefresh(time.Hour, refresher))
			assert.Equal(t, 1, s.Len())

			s.Start()
			defer s.Stop()
			waitCall(t, refresher.calls)

			assert.Eventually(t, func() bool {
				msgs := logger.messages()
				return len(msgs) == 1 && msgs[0] == tt.wantLog
			}, 5*time.Second, 10*time.Millisecond)
		})
	}
}

func TestScheduler_invalidInterval(t *testing.T) {
	s := New(time.UTC, &logRecorder{})
	assert.Error(t, s.ScheduleDashboardRefresh(0, &refresherStub{}))
	assert.Zero(t, s.Len())
}
