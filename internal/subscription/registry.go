package subscription

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"
)

var (
	ErrNotAuthenticated = errors.New("connection is not authenticated")
	ErrForbidden        = errors.New("job is not owned by the connection user")
)

// OwnerLookup определяет владельца задания
type OwnerLookup interface {
	OwnerOf(jobID string) (string, error)
}

type entry struct {
	userID string
	jobID  string
}

// Registry хранит соответствие соединений, пользователей и заданий.
// Все изменения выполняются под мьютексом, читатели получают копии.
type Registry struct {
	mu     sync.Mutex
	owners OwnerLookup
	conns  map[string]*entry
	jobs   map[string]map[string]struct{}
}

func NewRegistry(owners OwnerLookup) *Registry {
	return &Registry{
		owners: owners,
		conns:  make(map[string]*entry),
		jobs:   make(map[string]map[string]struct{}),
	}
}

// Authenticate регистрирует соединение с установленной личностью пользователя
func (r *Registry) Authenticate(connID, userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.conns[connID]; ok {
		if existing.userID != userID {
			return fmt.Errorf("connection %s already authenticated as another user", connID)
		}
		return nil
	}
	r.conns[connID] = &entry{userID: userID}
	return nil
}

// Subscribe подписывает соединение на задание после проверки владельца.
// Предыдущая подписка соединения снимается. При отказе состояние не меняется.
func (r *Registry) Subscribe(connID, jobID string) error {
	r.mu.Lock()
	e, ok := r.conns[connID]
	var userID string
	if ok {
		userID = e.userID
	}
	r.mu.Unlock()

	if !ok {
		return ErrNotAuthenticated
	}

	// Проверка владельца выполняется без блокировки реестра
	owner, err := r.owners.OwnerOf(jobID)
	if errors.Is(err, storage.ErrJobNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("failed to check owner of job %s: %w", jobID, err)
	}
	if owner != userID {
		return ErrForbidden
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Соединение могло закрыться, пока шла проверка
	e, ok = r.conns[connID]
	if !ok || e.userID != userID {
		return ErrNotAuthenticated
	}

	r.detach(connID, e)
	e.jobID = jobID
	subscribers, ok := r.jobs[jobID]
	if !ok {
		subscribers = make(map[string]struct{})
		r.jobs[jobID] = subscribers
	}
	subscribers[connID] = struct{}{}
	return nil
}

// Unsubscribe снимает подписку соединения; повторный вызов ничего не делает
func (r *Registry) Unsubscribe(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.conns[connID]; ok {
		r.detach(connID, e)
	}
}

// Remove забывает соединение полностью; вызывается при его закрытии
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.conns[connID]; ok {
		r.detach(connID, e)
		delete(r.conns, connID)
	}
}

func (r *Registry) detach(connID string, e *entry) {
	if e.jobID == "" {
		return
	}
	if subscribers, ok := r.jobs[e.jobID]; ok {
		delete(subscribers, connID)
		if len(subscribers) == 0 {
			delete(r.jobs, e.jobID)
		}
	}
	e.jobID = ""
}

// ConnectionsFor возвращает копию списка соединений, подписанных на задание
func (r *Registry) ConnectionsFor(jobID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	subscribers := r.jobs[jobID]
	result := make([]string, 0, len(subscribers))
	for connID := range subscribers {
		result = append(result, connID)
	}
	sort.Strings(result)
	return result
}

// JobOf возвращает задание, на которое подписано соединение
func (r *Registry) JobOf(connID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.conns[connID]; ok {
		return e.jobID
	}
	return ""
}

// UserOf возвращает пользователя соединения
func (r *Registry) UserOf(connID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.conns[connID]; ok {
		return e.userID
	}
	return ""
}

// Count возвращает число зарегистрированных соединений
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.conns)
}

// SubscribedJobs возвращает число заданий, у которых есть подписчики
func (r *Registry) SubscribedJobs() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.jobs)
}
