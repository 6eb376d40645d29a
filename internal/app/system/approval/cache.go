package approval

import (
	"sync"
	"time"

	"github.com/dalemusser/youthportal/internal/domain/models"
)

// DefaultCacheTTL bounds how long a cached survey is served.
const DefaultCacheTTL = 10 * time.Minute

// SurveyCache keeps the surveys an admin has opened, per admin, so paging
// back and forth through account details does not reload them. Entries
// are dropped when the account's survey is saved, when the account is
// deleted, when the admin signs out, or after the TTL.
type SurveyCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	byAdmin map[string]map[string]cacheEntry
}

type cacheEntry struct {
	survey *models.Survey // nil records "no survey"
	at     time.Time
}

func NewSurveyCache(ttl time.Duration) *SurveyCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SurveyCache{ttl: ttl, now: time.Now, byAdmin: map[string]map[string]cacheEntry{}}
}

// Get returns the cached survey for accountID as seen by adminID.
func (c *SurveyCache) Get(adminID, accountID string) (*models.Survey, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.byAdmin[adminID][accountID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.at) > c.ttl {
		delete(c.byAdmin[adminID], accountID)
		return nil, false
	}
	return e.survey, true
}

func (c *SurveyCache) Put(adminID, accountID string, sv *models.Survey) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.byAdmin[adminID]
	if !ok {
		m = map[string]cacheEntry{}
		c.byAdmin[adminID] = m
	}
	m[accountID] = cacheEntry{survey: sv, at: c.now()}
}

// InvalidateAccount drops accountID from every admin's cache.
func (c *SurveyCache) InvalidateAccount(accountID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.byAdmin {
		delete(m, accountID)
	}
}

// ForgetAdmin drops everything cached for adminID.
func (c *SurveyCache) ForgetAdmin(adminID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byAdmin, adminID)
}
