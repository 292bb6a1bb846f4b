package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LilVoxy/coursework_marketing/utils"
)

// SchedulerState описывает наблюдаемое состояние планировщика
type SchedulerState int

const (
	// SchedulerWaiting — планировщик ждет времени следующего запуска
	SchedulerWaiting SchedulerState = iota

	// SchedulerRunning — выполняется запуск пайплайна
	SchedulerRunning

	// SchedulerRetrying — запуск не удался, планировщик ждет повторной попытки
	SchedulerRetrying
)

// String возвращает человекочитаемое имя состояния
func (s SchedulerState) String() string {
	switch s {
	case SchedulerWaiting:
		return "waiting"
	case SchedulerRunning:
		return "running"
	case SchedulerRetrying:
		return "retrying"
	default:
		return "unknown"
	}
}

// Runner описывает то, что планировщик запускает по расписанию
type Runner interface {
	Execute() error
}

// Alerter описывает сервис критических оповещений.
// Вызывается только после исчерпания всех попыток запуска.
type Alerter interface {
	SendCritical(message, detail string)
}

// Scheduler — долгоживущий фоновый цикл ежедневного запуска пайплайна.
// Вычисляет ближайшее наступление заданного времени суток, спит до него
// (с возможностью отмены через контекст), запускает оркестратор; при ошибке
// повторяет до maxAttempts попыток с фиксированной задержкой. После
// исчерпания попыток отправляет одно критическое оповещение и возвращается
// к ожиданию следующего дня — тот же запуск повторно не выполняется.
type Scheduler struct {
	runner  Runner
	alerter Alerter
	logger  *utils.PipelineLogger

	runHour   int
	runMinute int

	maxAttempts int
	retryDelay  time.Duration

	mu    sync.Mutex
	state SchedulerState
}

// NewScheduler создает новый экземпляр Scheduler
func NewScheduler(runner Runner, alerter Alerter, logger *utils.PipelineLogger, runHour, runMinute, maxAttempts int, retryDelay time.Duration) *Scheduler {
	return &Scheduler{
		runner:      runner,
		alerter:     alerter,
		logger:      logger,
		runHour:     runHour,
		runMinute:   runMinute,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		state:       SchedulerWaiting,
	}
}

// State возвращает текущее состояние планировщика
func (s *Scheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(state SchedulerState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// NextRunTime вычисляет ближайшее наступление заданного времени суток.
// Если сегодняшнее время запуска уже прошло, запуск назначается на завтра.
func NextRunTime(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run запускает цикл планировщика. Блокирует до отмены контекста.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Планировщик пайплайна запущен, время ежедневного запуска: %02d:%02d", s.runHour, s.runMinute)

	for {
		s.setState(SchedulerWaiting)

		next := NextRunTime(time.Now(), s.runHour, s.runMinute)
		s.logger.Info("Следующий запуск пайплайна: %v", next.Format("2006-01-02 15:04"))

		if !sleepFor(ctx, time.Until(next)) {
			s.logger.Info("Планировщик пайплайна остановлен")
			return
		}

		if !s.runWithRetries(ctx) {
			s.logger.Info("Планировщик пайплайна остановлен")
			return
		}
	}
}

// runWithRetries выполняет один запланированный запуск с повторными попытками.
// Возвращает false, если контекст был отменен во время ожидания.
func (s *Scheduler) runWithRetries(ctx context.Context) bool {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		s.setState(SchedulerRunning)

		err := s.runner.Execute()
		if err == nil {
			s.logger.Info("Запланированный запуск пайплайна успешно завершен (попытка %d)", attempt)
			return true
		}

		lastErr = err
		s.logger.Error("Попытка %d из %d завершилась ошибкой: %v", attempt, s.maxAttempts, err)

		if attempt < s.maxAttempts {
			s.setState(SchedulerRetrying)
			if !sleepFor(ctx, s.retryDelay) {
				return false
			}
		}
	}

	// Все попытки исчерпаны — отправляем одно критическое оповещение
	// и ждем следующего дня, повторный запуск не планируется
	if s.alerter != nil {
		s.alerter.SendCritical(
			"Пайплайн обработки маркетинговых данных не выполнен",
			fmt.Sprintf("исчерпаны все %d попыток, последняя ошибка: %v", s.maxAttempts, lastErr),
		)
	}

	return true
}

// sleepFor спит указанную длительность с возможностью отмены.
// Возвращает false, если контекст был отменен раньше срока.
func sleepFor(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
