package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"maitred/internal/models"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// WSConnection maintains the WebSocket connection with one chat client
type WSConnection struct {
	conn *websocket.Conn
	send chan []byte
	mu   sync.Mutex
	api  *ChatAPI
}

// handleWebSocket upgrades the connection and starts the pumps
func (a *ChatAPI) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	wsConn := &WSConnection{
		conn: conn,
		send: make(chan []byte, 256),
		api:  a,
	}

	// Start the read and write pumps
	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump pumps messages from the WebSocket connection to the engine
func (c *WSConnection) readPump() {
	defer func() {
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the engine to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage runs one inbound chat turn through the engine
func (c *WSConnection) handleMessage(message []byte) {
	var req TurnRequest
	if err := json.Unmarshal(message, &req); err != nil {
		c.sendError("Invalid turn payload")
		return
	}
	if req.SessionID == "" || req.Message == "" {
		c.sendError("session_id and message are required")
		return
	}

	go func() {
		ctx, err := c.api.buildContext(&req)
		if err != nil {
			c.sendError(err.Error())
			return
		}

		role := req.Role
		if role == "" {
			role = models.RoleUser
		}
		result := c.api.Engine.ProcessTurn(req.Message, role, ctx, req.LatencyMs)
		if c.api.Monitor != nil {
			c.api.Monitor.RecordTurnDecision(string(result.Category), string(result.Metrics.RecommendedAction))
		}

		resp := TurnResponse{
			Intent:     string(result.Category),
			Action:     result.Action,
			Metrics:    result.Metrics,
			Thresholds: c.api.Engine.Thresholds(ctx),
		}
		if result.Action == nil && c.api.Responder != nil {
			if reply, err := c.api.Responder.Reply(context.Background(), ctx, req.Message); err == nil {
				resp.Reply = reply
			}
		}
		c.sendResult(resp)
	}()
}

// sendResult sends a turn result to the client
func (c *WSConnection) sendResult(result interface{}) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Error marshaling result: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping message")
	}
}

// sendError sends an error message to the client
func (c *WSConnection) sendError(message string) {
	response := map[string]string{"error": message}
	data, _ := json.Marshal(response)

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping error message")
	}
}
