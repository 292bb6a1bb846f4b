package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/LilVoxy/coursework_marketing/events"
	"github.com/LilVoxy/coursework_marketing/metrics"
	"github.com/LilVoxy/coursework_marketing/utils"
)

// ErrAlreadyRunning возвращается, когда запуск пайплайна запрошен,
// пока предыдущий запуск еще выполняется
var ErrAlreadyRunning = errors.New("пайплайн уже выполняется")

// State описывает наблюдаемое состояние оркестратора
type State int

const (
	// StateIdle — оркестратор свободен
	StateIdle State = iota

	// StateRunning — выполняется запуск пайплайна
	StateRunning
)

// String возвращает человекочитаемое имя состояния
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Storage описывает контракт хранилища, используемого пайплайном
type Storage interface {
	// GetPendingRawRecords возвращает сырые записи для обработки
	GetPendingRawRecords() ([]RawRecord, error)

	// SaveNormalizedRecords сохраняет итоговый набор нормализованных записей
	SaveNormalizedRecords([]NormalizedRecord) error
}

// RunJournal описывает журнал запусков пайплайна
type RunJournal interface {
	// CreateRunEntry создает запись о начале запуска и возвращает ее ID
	CreateRunEntry(startTime time.Time) (int, error)

	// CompleteRunSuccess фиксирует успешное завершение запуска
	CompleteRunSuccess(id int, endTime time.Time, processed, dropped, warnings int) error

	// CompleteRunFailure фиксирует неудачное завершение запуска
	CompleteRunFailure(id int, endTime time.Time, errorMessage string) error
}

// Publisher описывает шину событий, на которую оркестратор публикует
// событие о завершении загрузки
type Publisher interface {
	Publish(events.Event)
}

// Orchestrator координирует один запуск пайплайна:
// валидация -> трансформация -> обогащение -> дедупликация -> сохранение.
// Записи обрабатываются последовательно; параллельных запусков не бывает
// по построению (планировщик вызывает Execute строго по одному).
type Orchestrator struct {
	mu    sync.Mutex
	state State

	storage     Storage
	journal     RunJournal
	bus         Publisher
	transformer *Transformer
	enricher    *Enricher
	logger      *utils.PipelineLogger
}

// NewOrchestrator создает новый экземпляр Orchestrator
func NewOrchestrator(storage Storage, journal RunJournal, bus Publisher, enrichmentMarker string, logger *utils.PipelineLogger) *Orchestrator {
	return &Orchestrator{
		state:       StateIdle,
		storage:     storage,
		journal:     journal,
		bus:         bus,
		transformer: NewTransformer(logger),
		enricher:    NewEnricher(enrichmentMarker),
		logger:      logger,
	}
}

// State возвращает текущее состояние оркестратора
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(state State) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

// tryAcquire атомарно переводит оркестратор в состояние выполнения.
// Возвращает false, если запуск уже идет.
func (o *Orchestrator) tryAcquire() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateRunning {
		return false
	}
	o.state = StateRunning
	return true
}

// Execute выполняет один полный запуск пайплайна.
// Запуски никогда не накладываются: если запуск уже идет, возвращается
// ErrAlreadyRunning без каких-либо побочных эффектов.
// Событие LoadCompleted публикуется ровно один раз и только при успехе;
// любая ошибка стадии поднимается наверх без публикации события.
func (o *Orchestrator) Execute() error {
	if !o.tryAcquire() {
		return ErrAlreadyRunning
	}
	defer o.setState(StateIdle)

	startTime := time.Now()
	o.logger.LogRunStart()

	// Создаем запись в журнале запусков
	runID, err := o.createJournalEntry(startTime)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("failed").Inc()
		return err
	}

	// 1. Получаем сырые записи из хранилища
	rawRecords, err := o.storage.GetPendingRawRecords()
	if err != nil {
		o.failRun(runID, fmt.Sprintf("ошибка получения сырых записей: %v", err))
		return fmt.Errorf("ошибка получения сырых записей: %w", err)
	}

	o.logger.Info("Получено %d сырых записей", len(rawRecords))

	// 2. Валидация и трансформация каждой записи.
	// Невалидные записи отбрасываются молча, это не ошибка запуска.
	var (
		normalized []NormalizedRecord
		warnings   []TransformWarning
		dropped    int
	)

	for _, raw := range rawRecords {
		if !Validate(raw) {
			dropped++
			o.logger.Debug("Запись %d отброшена валидацией", raw.ID)
			continue
		}

		record, warning := o.transformer.Transform(raw)
		if warning != nil {
			warnings = append(warnings, *warning)
		}
		normalized = append(normalized, record)
	}

	if dropped > 0 {
		o.logger.Info("Отброшено валидацией: %d записей", dropped)
	}
	if len(warnings) > 0 {
		o.logger.Info("Предупреждений трансформации: %d", len(warnings))
	}

	// 3. Обогащение всего набора
	enriched := o.enricher.Enrich(normalized)

	// 4. Дедупликация (first-write-wins по системному идентификатору)
	final := Dedupe(enriched)
	if len(final) < len(enriched) {
		o.logger.Info("Дедупликация удалила %d дубликатов", len(enriched)-len(final))
	}

	// 5. Сохраняем итоговый набор
	if err := o.storage.SaveNormalizedRecords(final); err != nil {
		o.failRun(runID, fmt.Sprintf("ошибка сохранения нормализованных записей: %v", err))
		return fmt.Errorf("ошибка сохранения нормализованных записей: %w", err)
	}

	// Обновляем журнал и метрики
	o.completeRun(runID, len(final), dropped, len(warnings))

	metrics.PipelineRuns.WithLabelValues("success").Inc()
	metrics.RecordsProcessed.Add(float64(len(final)))
	metrics.RecordsDropped.Add(float64(dropped))
	metrics.TransformWarnings.Add(float64(len(warnings)))
	metrics.RunDuration.Observe(time.Since(startTime).Seconds())

	// 6. Публикуем событие о завершении загрузки (только при успехе)
	if o.bus != nil {
		o.bus.Publish(events.Event{
			Topic: events.TopicLoadCompleted,
			Payload: events.LoadCompletedPayload{
				RunID:      runID,
				Records:    len(final),
				Warnings:   len(warnings),
				FinishedAt: time.Now(),
			},
		})
	}

	o.logger.LogRunComplete(startTime, len(final), dropped, len(warnings))
	return nil
}

// createJournalEntry создает запись в журнале запусков, если журнал подключен
func (o *Orchestrator) createJournalEntry(startTime time.Time) (int, error) {
	if o.journal == nil {
		return 0, nil
	}

	runID, err := o.journal.CreateRunEntry(startTime)
	if err != nil {
		o.logger.Error("Ошибка при создании записи в журнале запусков: %v", err)
		return 0, fmt.Errorf("ошибка при создании записи в журнале запусков: %w", err)
	}
	return runID, nil
}

// completeRun фиксирует успешное завершение запуска в журнале
func (o *Orchestrator) completeRun(runID, processed, dropped, warnings int) {
	if o.journal == nil {
		return
	}
	if err := o.journal.CompleteRunSuccess(runID, time.Now(), processed, dropped, warnings); err != nil {
		o.logger.Error("Ошибка при обновлении журнала запусков: %v", err)
	}
}

// failRun фиксирует неудачное завершение запуска в журнале и метриках
func (o *Orchestrator) failRun(runID int, errorMessage string) {
	metrics.PipelineRuns.WithLabelValues("failed").Inc()

	if o.journal == nil {
		return
	}
	if err := o.journal.CompleteRunFailure(runID, time.Now(), errorMessage); err != nil {
		o.logger.Error("Ошибка при обновлении журнала запусков: %v", err)
	}
}
