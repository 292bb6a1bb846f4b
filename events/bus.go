package events

import (
	"log"
	"sync"
	"time"
)

// Topic определяет тип события, публикуемого на шине.
// Используем типизированное перечисление вместо строковых имен топиков,
// чтобы опечатка в имени не приводила к молчаливой потере события.
type Topic int

const (
	// TopicLoadCompleted публикуется после успешного завершения
	// ночного пайплайна обработки данных
	TopicLoadCompleted Topic = iota

	// TopicBackupCompleted публикуется после создания резервной копии
	TopicBackupCompleted
)

// String возвращает человекочитаемое имя топика
func (t Topic) String() string {
	switch t {
	case TopicLoadCompleted:
		return "LoadCompleted"
	case TopicBackupCompleted:
		return "BackupCompleted"
	default:
		return "Unknown"
	}
}

// Event представляет событие с типизированной полезной нагрузкой
type Event struct {
	Topic   Topic
	Payload interface{}
}

// LoadCompletedPayload содержит итоги успешного запуска пайплайна
type LoadCompletedPayload struct {
	RunID      int
	Records    int
	Warnings   int
	FinishedAt time.Time
}

// BackupCompletedPayload содержит информацию о созданной резервной копии
type BackupCompletedPayload struct {
	File       string
	FinishedAt time.Time
}

// Bus представляет внутрипроцессную шину событий.
// Публикация не блокирует отправителя: если буфер подписчика переполнен,
// событие для этого подписчика отбрасывается с записью в лог.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Topic][]chan Event
}

// NewBus создает новую шину событий
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[Topic][]chan Event),
	}
}

// Subscribe возвращает канал, в который будут доставляться события указанного топика
func (b *Bus) Subscribe(topic Topic) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 16)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch
}

// Publish отправляет событие всем подписчикам топика (fire-and-forget)
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[event.Topic] {
		select {
		case ch <- event:
		default:
			// Подписчик не успевает обрабатывать события
			log.Printf("⚠️ Буфер подписчика топика %s переполнен, событие отброшено", event.Topic)
		}
	}
}
