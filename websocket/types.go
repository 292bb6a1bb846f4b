// websocket/types.go
package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Notification — уведомление, отправляемое подключенным дашбордам
type Notification struct {
	Type       string    `json:"type"`
	RunID      int       `json:"runId,omitempty"`
	Records    int       `json:"records,omitempty"`
	Warnings   int       `json:"warnings,omitempty"`
	File       string    `json:"file,omitempty"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

// Client — подключенный WebSocket-клиент (дашборд оператора)
type Client struct {
	ID     string
	Socket *websocket.Conn
	Send   chan []byte
}

// Manager — менеджер WebSocket-соединений
type Manager struct {
	Clients    map[string]*Client
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

// Таймауты WebSocket-соединения
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника (для разработки)
	},
}
