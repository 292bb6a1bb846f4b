// websocket/manager.go
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/LilVoxy/coursework_marketing/events"
	"github.com/google/uuid"
)

// NewManager создает новый менеджер WebSocket-соединений
func NewManager() *Manager {
	return &Manager{
		Clients:    make(map[string]*Client),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run запускает работу менеджера. Блокирует до отмены контекста.
func (manager *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Закрываем все соединения при остановке
			for _, client := range manager.Clients {
				close(client.Send)
				delete(manager.Clients, client.ID)
			}
			log.Println("Менеджер WebSocket остановлен")
			return

		case client := <-manager.Register:
			manager.Clients[client.ID] = client
			log.Printf("👤 Дашборд %s подключился", client.ID)

		case client := <-manager.Unregister:
			if _, ok := manager.Clients[client.ID]; ok {
				delete(manager.Clients, client.ID)
				close(client.Send)
				log.Printf("👤 Дашборд %s отключился", client.ID)
			}

		case message := <-manager.Broadcast:
			// Рассылаем уведомление всем подключенным клиентам
			manager.broadcast(message)
		}
	}
}

// broadcast отправляет сообщение всем подключенным клиентам
func (manager *Manager) broadcast(message []byte) {
	for _, client := range manager.Clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(manager.Clients, client.ID)
		}
	}
}

// Listen подписывается на шину событий и транслирует уведомления
// о завершении загрузки и резервного копирования подключенным дашбордам.
// Блокирует до отмены контекста.
func (manager *Manager) Listen(ctx context.Context, bus *events.Bus) {
	loadCh := bus.Subscribe(events.TopicLoadCompleted)
	backupCh := bus.Subscribe(events.TopicBackupCompleted)

	for {
		var notification Notification

		select {
		case <-ctx.Done():
			return

		case event := <-loadCh:
			payload, ok := event.Payload.(events.LoadCompletedPayload)
			if !ok {
				continue
			}
			notification = Notification{
				Type:       event.Topic.String(),
				RunID:      payload.RunID,
				Records:    payload.Records,
				Warnings:   payload.Warnings,
				FinishedAt: payload.FinishedAt,
			}

		case event := <-backupCh:
			payload, ok := event.Payload.(events.BackupCompletedPayload)
			if !ok {
				continue
			}
			notification = Notification{
				Type:       event.Topic.String(),
				File:       payload.File,
				FinishedAt: payload.FinishedAt,
			}
		}

		data, err := json.Marshal(notification)
		if err != nil {
			log.Printf("❌ Ошибка при кодировании уведомления: %v", err)
			continue
		}

		manager.Broadcast <- data
	}
}

// HandleConnections обрабатывает входящие WebSocket-подключения дашбордов
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		Socket: conn,
		Send:   make(chan []byte, 16),
	}

	manager.Register <- client

	go client.writePump()
	go client.readPump(manager)
}
