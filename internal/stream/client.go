package stream

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/logger"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/subscription"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// CloseForbidden код закрытия при попытке подписаться на чужое задание
	CloseForbidden = 4403

	closeGracePeriod = time.Second
)

// Client постоянное соединение одного пользователя
type Client struct {
	id     string
	userID string
	hub    *Hub
	conn   *websocket.Conn
	box    *mailbox
	log    zerolog.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		userID: userID,
		hub:    hub,
		conn:   conn,
		box:    newMailbox(hub.cfg.QueueSize),
		log:    hub.log.With().Str("conn_id", id).Str("user_id", userID).Logger(),
		done:   make(chan struct{}),
	}
}

// ID возвращает идентификатор соединения
func (c *Client) ID() string {
	return c.id
}

// UserID возвращает пользователя соединения
func (c *Client) UserID() string {
	return c.userID
}

// Done закрывается после закрытия соединения
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close закрывает соединение и синхронно удаляет его из реестра
func (c *Client) Close(code int, reason string) {
	c.closeOnce.Do(func() {
		close(c.done)

		deadline := time.Now().Add(closeGracePeriod)
		_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = c.conn.Close()

		c.hub.Unregister(c)
	})
}

// readPump обрабатывает управляющие сообщения клиента
func (c *Client) readPump() {
	defer c.Close(websocket.CloseNormalClosure, "")

	cfg := c.hub.cfg
	c.conn.SetReadLimit(cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.log.Warn().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		var msg models.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warn().Err(err).Msg("Ignoring malformed message")
			continue
		}

		if !c.handle(msg) {
			return
		}
	}
}

// handle обрабатывает одно сообщение; false означает, что соединение закрыто
func (c *Client) handle(msg models.InboundMessage) bool {
	switch msg.Type {
	case models.MessageTypeSubscribe:
		if msg.JobID == "" {
			c.log.Warn().Msg("Ignoring subscribe without jobId")
			return true
		}

		err := c.hub.Subscribe(c, msg.JobID)
		switch {
		case err == nil:
			return true
		case errors.Is(err, subscription.ErrForbidden):
			c.log.Warn().Str("job_id", msg.JobID).Msg("Subscription rejected")
			logger.LogEvent(logger.EventSubscriptionRejected, serviceName, component, map[string]interface{}{
				"job_id":  msg.JobID,
				"conn_id": c.id,
				"user_id": c.userID,
			})
			c.Close(CloseForbidden, "forbidden")
			return false
		default:
			c.log.Error().Err(err).Str("job_id", msg.JobID).Msg("Subscription failed")
			return true
		}

	case models.MessageTypeUnsubscribe:
		c.hub.Unsubscribe(c)

	case models.MessageTypePing:
		c.box.pushControl(&models.OutboundMessage{Type: models.MessageTypePong})

	default:
		c.log.Warn().Str("type", msg.Type).Msg("Ignoring unknown message type")
	}
	return true
}

// writePump единственный писатель в соединение
func (c *Client) writePump() {
	cfg := c.hub.cfg
	ticker := time.NewTicker(cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return

		case <-c.box.notify:
			for _, msg := range c.box.drain() {
				_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
				if err := c.conn.WriteJSON(msg); err != nil {
					c.fail(err, msg)
					return
				}
				if msg.Data != nil {
					logger.LogEvent(logger.EventSnapshotPublished, serviceName, component, map[string]interface{}{
						"job_id":  msg.Data.JobID,
						"conn_id": c.id,
					})
				}
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(cfg.WriteTimeout)); err != nil {
				c.fail(err, nil)
				return
			}
		}
	}
}

func (c *Client) fail(err error, msg *models.OutboundMessage) {
	select {
	case <-c.done:
		// Соединение уже закрыто штатно
		return
	default:
	}

	data := map[string]interface{}{
		"conn_id": c.id,
		"error":   err.Error(),
	}
	if msg != nil && msg.Data != nil {
		data["job_id"] = msg.Data.JobID
	}
	c.log.Warn().Err(err).Msg("Delivery failed, closing connection")
	logger.LogEvent(logger.EventDeliveryFailed, serviceName, component, data)

	c.Close(websocket.CloseInternalServerErr, "delivery failed")
}
