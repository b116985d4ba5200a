package stream

import (
	"sync"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

// mailbox ограниченная исходящая очередь соединения.
// При переполнении вытесняется самый старый снимок, так что клиент всегда получает последний.
type mailbox struct {
	mu      sync.Mutex
	jobID   string
	last    int64
	queue   []*models.OutboundMessage
	limit   int
	notify  chan struct{}
	dropped int
}

func newMailbox(limit int) *mailbox {
	if limit < 1 {
		limit = 1
	}
	return &mailbox{
		limit:  limit,
		notify: make(chan struct{}, 1),
	}
}

// switchJob привязывает очередь к заданию; снимки прежнего задания отбрасываются
func (m *mailbox) switchJob(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.jobID == jobID {
		return
	}
	m.jobID = jobID
	m.last = 0

	kept := m.queue[:0]
	for _, msg := range m.queue {
		if msg.Type != models.MessageTypeRiskUpdate {
			kept = append(kept, msg)
		}
	}
	m.queue = kept
}

// pushSnapshot ставит снимок в очередь. Снимки чужого задания и снимки
// с номером меньше уже принятого отклоняются. evicted сообщает о вытеснении старого снимка.
func (m *mailbox) pushSnapshot(snapshot *models.RiskSnapshot) (accepted, evicted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.jobID == "" || snapshot.JobID != m.jobID {
		return false, false
	}
	if snapshot.Version < m.last {
		return false, false
	}
	m.last = snapshot.Version

	evicted = m.pushLocked(models.NewRiskUpdate(snapshot))
	return true, evicted
}

// pushControl ставит служебное сообщение в очередь
func (m *mailbox) pushControl(msg *models.OutboundMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pushLocked(msg)
}

func (m *mailbox) pushLocked(msg *models.OutboundMessage) bool {
	evicted := false
	if len(m.queue) >= m.limit {
		victim := 0
		for i, queued := range m.queue {
			if queued.Type == models.MessageTypeRiskUpdate {
				victim = i
				break
			}
		}
		m.queue = append(m.queue[:victim], m.queue[victim+1:]...)
		m.dropped++
		evicted = true
	}
	m.queue = append(m.queue, msg)

	select {
	case m.notify <- struct{}{}:
	default:
	}
	return evicted
}

// drain забирает все накопленные сообщения в порядке постановки
func (m *mailbox) drain() []*models.OutboundMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil
	}
	messages := m.queue
	m.queue = make([]*models.OutboundMessage, 0, m.limit)
	return messages
}

func (m *mailbox) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.queue)
}

func (m *mailbox) droppedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dropped
}
