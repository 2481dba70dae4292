package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/pkg/metrics"
)

// Проверка, что OrgCache удовлетворяет интерфейсу ports.OrgCache.
var _ ports.OrgCache = (*OrgCache)(nil)

type entry struct {
	id        uuid.UUID
	org       string
	expiresAt time.Time
}

// OrgCache — LRU с TTL: уведомление → организация.
// При ttl <= 0 записи не истекают, вытесняются только по ёмкости.
type OrgCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[uuid.UUID]*list.Element

	mu sync.Mutex
}

func NewOrgCache(capacity int, ttl time.Duration) *OrgCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &OrgCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[uuid.UUID]*list.Element),
	}
}

// Get — попадание продлевает TTL и делает запись самой свежей.
func (c *OrgCache) Get(_ context.Context, id uuid.UUID) (string, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return "", false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return "", false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.expiryFrom(now)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.org, true
}

func (c *OrgCache) Set(_ context.Context, id uuid.UUID, org string) error {
	if id == uuid.Nil || org == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[id]; ok {
		ent := elem.Value.(*entry)
		ent.org = org
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	c.index[id] = c.ll.PushFront(&entry{id: id, org: org, expiresAt: c.expiryFrom(now)})
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Delete — уведомление удалено; отсутствующий ключ не ошибка.
func (c *OrgCache) Delete(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[id]; ok {
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

// Len — число записей, включая ещё не вычищенные истёкшие.
func (c *OrgCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
