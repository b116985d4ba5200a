package stream

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/auth"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/logger"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/subscription"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	serviceName = "risk-stream-service"
	component   = "websocket"
)

var ErrConnectionClosed = errors.New("connection closed")

// SnapshotSource источник последнего снимка задания для догоняющей доставки
type SnapshotSource interface {
	LatestSnapshot(jobID string) (*models.RiskSnapshot, error)
}

// Config параметры соединений
type Config struct {
	QueueSize      int
	WriteTimeout   time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
	// AllowedOrigins источники браузерных соединений помимо собственного хоста; "*" разрешает любой
	AllowedOrigins []string
}

func DefaultConfig() Config {
	return Config{
		QueueSize:      4,
		WriteTimeout:   10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 4096,
	}
}

// Hub принимает соединения и рассылает снимки подписчикам задания
type Hub struct {
	registry *subscription.Registry
	source   SnapshotSource
	cfg      Config
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

func NewHub(registry *subscription.Registry, source SnapshotSource, cfg Config, log zerolog.Logger) *Hub {
	def := DefaultConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = def.PongWait
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}

	h := &Hub{
		registry: registry,
		source:   source,
		cfg:      cfg,
		log:      log.With().Str("component", component).Logger(),
		clients:  make(map[string]*Client),
	}
	// Cookie сессии принимается наравне с токеном, Origin проверяется до upgrade
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin пропускает запросы без Origin, с Origin собственного хоста
// и из списка AllowedOrigins
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimSuffix(allowed, "/"), origin) {
			return true
		}
	}

	h.log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
	return false
}

// Register добавляет соединение в хаб и реестр
func (h *Hub) Register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrConnectionClosed
	}
	if err := h.registry.Authenticate(c.id, c.userID); err != nil {
		return err
	}
	h.clients[c.id] = c

	logger.LogEvent(logger.EventConnectionOpened, serviceName, component, map[string]interface{}{
		"conn_id": c.id,
		"user_id": c.userID,
	})
	return nil
}

// Unregister удаляет соединение из хаба и снимает его подписку
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if current, ok := h.clients[c.id]; ok && current == c {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()

	h.registry.Remove(c.id)

	logger.LogEvent(logger.EventConnectionClosed, serviceName, component, map[string]interface{}{
		"conn_id": c.id,
		"user_id": c.userID,
	})
}

// Subscribe подписывает соединение на задание и ставит в очередь последний снимок
func (h *Hub) Subscribe(c *Client, jobID string) error {
	if err := h.registry.Subscribe(c.id, jobID); err != nil {
		return err
	}
	c.box.switchJob(jobID)

	logger.LogEvent(logger.EventSubscriptionAccepted, serviceName, component, map[string]interface{}{
		"job_id":  jobID,
		"conn_id": c.id,
		"user_id": c.userID,
	})

	snapshot, err := h.source.LatestSnapshot(jobID)
	if err != nil {
		c.log.Warn().Err(err).Str("job_id", jobID).Msg("Catch-up snapshot unavailable")
		return nil
	}
	if snapshot != nil {
		h.deliver(c, snapshot)
	}
	return nil
}

// Unsubscribe снимает подписку соединения
func (h *Hub) Unsubscribe(c *Client) {
	h.registry.Unsubscribe(c.id)
	c.box.switchJob("")
}

// Publish ставит снимок в очереди всех подписчиков задания и возвращает их число.
// Не блокируется на медленных соединениях.
func (h *Hub) Publish(snapshot *models.RiskSnapshot) int {
	if snapshot == nil {
		return 0
	}

	delivered := 0
	for _, connID := range h.registry.ConnectionsFor(snapshot.JobID) {
		h.mu.RLock()
		c, ok := h.clients[connID]
		h.mu.RUnlock()
		if !ok {
			continue
		}
		if h.deliver(c, snapshot) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) deliver(c *Client, snapshot *models.RiskSnapshot) bool {
	accepted, evicted := c.box.pushSnapshot(snapshot)
	if evicted {
		logger.LogEvent(logger.EventDeliveryDropped, serviceName, component, map[string]interface{}{
			"job_id":  snapshot.JobID,
			"conn_id": c.id,
		})
	}
	return accepted
}

// ClientCount возвращает число открытых соединений
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Stats возвращает состояние хаба для эндпоинта статистики
func (h *Hub) Stats() map[string]interface{} {
	return map[string]interface{}{
		"connections":     h.ClientCount(),
		"subscribed_jobs": h.registry.SubscribedJobs(),
	}
}

// Close закрывает все соединения; новые соединения после этого не принимаются
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.Close(websocket.CloseGoingAway, "server shutting down")
	}
}

// HandleWebSocket принимает соединение аутентифицированного пользователя
func (h *Hub) HandleWebSocket(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticator.Authenticate(c.Request)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthorized) {
				h.log.Error().Err(err).Msg("Authentication failed")
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
			return
		}

		client := newClient(h, conn, userID)
		if err := h.Register(client); err != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(closeGracePeriod))
			_ = conn.Close()
			return
		}

		client.log.Debug().Msg("Connection opened")
		go client.writePump()
		go client.readPump()
	}
}
