package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeRunner struct {
	calls    int
	failures int
}

// Execute завершается ошибкой первые failures вызовов, затем успешно
func (r *fakeRunner) Execute() error {
	r.calls++
	if r.calls <= r.failures {
		return errors.New("запуск не удался")
	}
	return nil
}

type fakeAlerter struct {
	messages []string
	details  []string
}

func (a *fakeAlerter) SendCritical(message, detail string) {
	a.messages = append(a.messages, message)
	a.details = append(a.details, detail)
}

func TestNextRunTime(t *testing.T) {
	loc := time.Local

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "время запуска сегодня еще не наступило",
			now:  time.Date(2026, 8, 30, 1, 30, 0, 0, loc),
			want: time.Date(2026, 8, 30, 2, 0, 0, 0, loc),
		},
		{
			name: "время запуска сегодня уже прошло",
			now:  time.Date(2026, 8, 30, 14, 45, 0, 0, loc),
			want: time.Date(2026, 8, 31, 2, 0, 0, 0, loc),
		},
		{
			name: "ровно в момент запуска планируется завтра",
			now:  time.Date(2026, 8, 30, 2, 0, 0, 0, loc),
			want: time.Date(2026, 8, 31, 2, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRunTime(tt.now, 2, 0))
		})
	}
}

func TestScheduler_RunWithRetries_SuccessFirstAttempt(t *testing.T) {
	runner := &fakeRunner{}
	alerter := &fakeAlerter{}
	scheduler := NewScheduler(runner, alerter, newTestLogger(t), 2, 0, 3, time.Millisecond)

	ok := scheduler.runWithRetries(context.Background())

	assert.True(t, ok)
	assert.Equal(t, 1, runner.calls)
	assert.Empty(t, alerter.messages)
}

func TestScheduler_RunWithRetries_SuccessAfterRetry(t *testing.T) {
	runner := &fakeRunner{failures: 2}
	alerter := &fakeAlerter{}
	scheduler := NewScheduler(runner, alerter, newTestLogger(t), 2, 0, 3, time.Millisecond)

	ok := scheduler.runWithRetries(context.Background())

	assert.True(t, ok)
	assert.Equal(t, 3, runner.calls)
	// Запуск в итоге удался — оповещение не отправляется
	assert.Empty(t, alerter.messages)
}

func TestScheduler_RunWithRetries_AllAttemptsExhausted(t *testing.T) {
	runner := &fakeRunner{failures: 10}
	alerter := &fakeAlerter{}
	scheduler := NewScheduler(runner, alerter, newTestLogger(t), 2, 0, 3, time.Millisecond)

	ok := scheduler.runWithRetries(context.Background())

	// Исчерпание попыток не останавливает планировщик
	assert.True(t, ok)
	assert.Equal(t, 3, runner.calls)

	// Ровно одно критическое оповещение с последней ошибкой
	assert.Len(t, alerter.messages, 1)
	assert.Contains(t, alerter.details[0], "запуск не удался")
}

func TestScheduler_RunWithRetries_CancelledDuringRetryDelay(t *testing.T) {
	runner := &fakeRunner{failures: 10}
	alerter := &fakeAlerter{}
	scheduler := NewScheduler(runner, alerter, newTestLogger(t), 2, 0, 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok := scheduler.runWithRetries(ctx)

	// Отмена во время ожидания повторной попытки завершает цикл
	assert.False(t, ok)
	assert.Equal(t, 1, runner.calls)
	assert.Empty(t, alerter.messages)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	runner := &fakeRunner{}
	scheduler := NewScheduler(runner, &fakeAlerter{}, newTestLogger(t), 2, 0, 3, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("планировщик не остановился после отмены контекста")
	}

	assert.Equal(t, SchedulerWaiting, scheduler.State())
}
