package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DocumentTextCache keeps recently chatted-about document text in memory so a
// conversation does not reload the full text from the database on every turn.
// Authorization is never cached here; only content.
type DocumentTextCache struct {
	cache *cache.Cache
}

func NewDocumentTextCache() *DocumentTextCache {
	// 5 minute expiry covers a typical chat burst; purge sweep every 10 minutes.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &DocumentTextCache{
		cache: c,
	}
}

func (r *DocumentTextCache) Set(documentId, fullText string) {
	r.cache.Set(documentId, fullText, cache.DefaultExpiration)
}

func (r *DocumentTextCache) Get(documentId string) (string, bool) {
	if x, found := r.cache.Get(documentId); found {
		return x.(string), true
	}
	return "", false
}

func (r *DocumentTextCache) Delete(documentId string) {
	r.cache.Delete(documentId)
}
