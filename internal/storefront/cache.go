package storefront

import (
	"slices"
	"sync"
	"time"

	"github.com/sea-catering/storefront/internal/domain"
)

// Provisional is a client-side status the server has not confirmed yet, such
// as the activation assumed after a successful checkout callback.
type Provisional struct {
	Status        domain.SubscriptionStatus
	TransactionID string
	At            time.Time
}

// CachedSubscription is a server subscription plus an optional provisional annotation.
type CachedSubscription struct {
	domain.Subscription
	Provisional *Provisional
}

// EffectiveStatus is the provisional status when present, else the server status.
func (c CachedSubscription) EffectiveStatus() domain.SubscriptionStatus {
	if c.Provisional != nil {
		return c.Provisional.Status
	}
	return c.Status
}

// Cache is the client's eventually-consistent copy of the caller's
// subscriptions. Every mutation swaps in a new slice with one entry replaced.
type Cache struct {
	mu    sync.RWMutex
	items []CachedSubscription
	now   func() time.Time
}

func NewCache() *Cache {
	return &Cache{now: time.Now}
}

// Replace installs an authoritative list, discarding all provisional annotations.
func (c *Cache) Replace(list []domain.Subscription) {
	items := make([]CachedSubscription, 0, len(list))
	for _, s := range list {
		items = append(items, CachedSubscription{Subscription: s})
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

// Items returns a copy of the cached list.
func (c *Cache) Items() []CachedSubscription {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Cache) Get(id int64) (CachedSubscription, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.index(id)
	if i < 0 {
		return CachedSubscription{}, false
	}
	return c.items[i], true
}

// ApplyConfirmedStatus records a status the server acknowledged. It reports
// false when the id is not cached.
func (c *Cache) ApplyConfirmedStatus(id int64, status domain.SubscriptionStatus) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return false
	}
	entry := c.items[i]
	entry.Status = status
	entry.Provisional = nil
	c.items = replaceAt(c.items, i, entry)
	return true
}

// MarkPaid annotates a subscription as provisionally active after a successful
// checkout. A subscription missing from the cache is inserted from seed.
func (c *Cache) MarkPaid(seed domain.Subscription, transactionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := &Provisional{Status: domain.SubscriptionActive, TransactionID: transactionID, At: c.now()}
	i := c.index(seed.ID)
	if i < 0 {
		c.items = append([]CachedSubscription{{Subscription: seed, Provisional: p}}, c.items...)
		return
	}
	entry := c.items[i]
	entry.Provisional = p
	c.items = replaceAt(c.items, i, entry)
}

func (c *Cache) index(id int64) int {
	return slices.IndexFunc(c.items, func(s CachedSubscription) bool { return s.ID == id })
}

func replaceAt(items []CachedSubscription, i int, entry CachedSubscription) []CachedSubscription {
	out := slices.Clone(items)
	out[i] = entry
	return out
}
