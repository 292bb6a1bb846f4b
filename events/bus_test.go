package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(TopicLoadCompleted)

	payload := LoadCompletedPayload{RunID: 7, Records: 42, FinishedAt: time.Now()}
	bus.Publish(Event{Topic: TopicLoadCompleted, Payload: payload})

	select {
	case event := <-ch:
		assert.Equal(t, TopicLoadCompleted, event.Topic)

		got, ok := event.Payload.(LoadCompletedPayload)
		require.True(t, ok)
		assert.Equal(t, 7, got.RunID)
		assert.Equal(t, 42, got.Records)
	case <-time.After(time.Second):
		t.Fatal("событие не доставлено подписчику")
	}
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	bus := NewBus()
	loads := bus.Subscribe(TopicLoadCompleted)
	backups := bus.Subscribe(TopicBackupCompleted)

	bus.Publish(Event{Topic: TopicBackupCompleted, Payload: BackupCompletedPayload{File: "backup.json.snappy"}})

	select {
	case <-backups:
	case <-time.After(time.Second):
		t.Fatal("событие не доставлено подписчику топика")
	}

	select {
	case <-loads:
		t.Fatal("событие доставлено подписчику чужого топика")
	default:
	}
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()

	// Публикация без подписчиков не паникует и не блокирует
	bus.Publish(Event{Topic: TopicLoadCompleted})
}

func TestBus_PublishDoesNotBlockOnFullBuffer(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TopicLoadCompleted)

	done := make(chan struct{})
	go func() {
		// Буфер подписчика — 16 событий; лишние отбрасываются без блокировки
		for i := 0; i < 50; i++ {
			bus.Publish(Event{Topic: TopicLoadCompleted, Payload: LoadCompletedPayload{RunID: i}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("публикация заблокировалась на переполненном буфере")
	}
}

func TestTopic_String(t *testing.T) {
	assert.Equal(t, "LoadCompleted", TopicLoadCompleted.String())
	assert.Equal(t, "BackupCompleted", TopicBackupCompleted.String())
	assert.Equal(t, "Unknown", Topic(99).String())
}
