package metadata

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a two-tier (memory, optional SQLite disk) cache in front of a
// Fetcher. Concurrent misses on the same key share one upstream call; the
// in-flight handle is dropped when the call finishes, so a failed fetch is
// retried by the next lookup rather than poisoning the key. One Cache
// instance belongs to one session; Invalidate wipes it wholesale when the
// session changes.
type Cache struct {
	fetch Fetcher

	mu  sync.RWMutex
	mem map[string]*ObjectInfo // nil value records a known-absent entity

	disk  *diskStore
	group singleflight.Group
}

// NewCache builds a memory-only cache over the fetcher.
func NewCache(fetch Fetcher) *Cache {
	return &Cache{fetch: fetch, mem: make(map[string]*ObjectInfo)}
}

// NewCacheWithDisk builds a cache whose positive entries also persist in a
// SQLite database under dir, surviving process restarts.
func NewCacheWithDisk(fetch Fetcher, dir string) (*Cache, error) {
	disk, err := openDiskStore(dir)
	if err != nil {
		return nil, err
	}
	c := NewCache(fetch)
	c.disk = disk
	return c, nil
}

// GetObjectInfo implements Source.
func (c *Cache) GetObjectInfo(ctx context.Context, name string) (*ObjectInfo, error) {
	c.mu.RLock()
	info, hit := c.mem[name]
	c.mu.RUnlock()
	if hit {
		return info, nil
	}

	if c.disk != nil {
		if info, ok, err := c.disk.get(ctx, name); err == nil && ok {
			c.mu.Lock()
			c.mem[name] = info
			c.mu.Unlock()
			return info, nil
		}
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		info, err := c.fetch.FetchObjectInfo(ctx, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.mem[name] = info
		c.mu.Unlock()
		if info != nil && c.disk != nil {
			// A write failure only costs us persistence, not correctness.
			_ = c.disk.put(ctx, info)
		}
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	info, _ = v.(*ObjectInfo)
	return info, nil
}

// Invalidate empties both tiers. Negative entries go with everything else.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.mem = make(map[string]*ObjectInfo)
	c.mu.Unlock()

	if c.disk != nil {
		return c.disk.clear(ctx)
	}
	return nil
}

// Close releases the disk tier, if any.
func (c *Cache) Close() error {
	if c.disk != nil {
		return c.disk.close()
	}
	return nil
}
