package main

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/tuning"
	"hexatlas.world/internal/gen/worldgen"
	"hexatlas.world/internal/persistence/indexdb"
	"hexatlas.world/internal/persistence/snapshot"
	"hexatlas.world/internal/protocol"
)

type worldKey struct {
	seed  int64
	month int
}

// worldCache serves snapshot messages for (seed, month) pairs. Hits
// come from memory, then from the archive index, and only then from a
// fresh generation run. Generation is deterministic, so evicting an
// entry is always safe.
type worldCache struct {
	tune tuning.Tuning
	idx  *indexdb.Index // nil when no archive catalog is configured
	log  *logrus.Logger

	mu      sync.Mutex
	entries map[worldKey]cachedWorld
	order   []worldKey
	cap     int

	hits      atomic.Int64
	generated atomic.Int64
	restored  atomic.Int64
}

func newWorldCache(tune tuning.Tuning, idx *indexdb.Index, capacity int, log *logrus.Logger) *worldCache {
	if capacity < 1 {
		capacity = 1
	}
	return &worldCache{
		tune:    tune,
		idx:     idx,
		log:     log,
		entries: make(map[worldKey]cachedWorld),
		cap:     capacity,
	}
}

type cachedWorld struct {
	full    protocol.SnapshotMsg
	compact protocol.SnapshotMsg
}

func (c *worldCache) Snapshot(seed int64, month int) (protocol.SnapshotMsg, error) {
	w, err := c.get(seed, month)
	return w.full, err
}

func (c *worldCache) SnapshotCompact(seed int64, month int) (protocol.SnapshotMsg, error) {
	w, err := c.get(seed, month)
	return w.compact, err
}

// SnapshotArchived serves only worlds already in memory or recorded in
// the archive index. Unlike Snapshot it never generates; the boolean
// reports whether the world exists.
func (c *worldCache) SnapshotArchived(seed int64, month int, compact bool) (protocol.SnapshotMsg, bool, error) {
	key := worldKey{seed: seed, month: month}

	c.mu.Lock()
	w, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		c.hits.Add(1)
	} else {
		if c.idx == nil {
			return protocol.SnapshotMsg{}, false, nil
		}
		entry, found, err := c.idx.Lookup(seed, month)
		if err != nil {
			return protocol.SnapshotMsg{}, false, err
		}
		if !found {
			return protocol.SnapshotMsg{}, false, nil
		}
		snap, err := snapshot.ReadSnapshot(entry.Path)
		if err != nil {
			return protocol.SnapshotMsg{}, false, err
		}
		g, rivers, err := snap.World()
		if err != nil {
			return protocol.SnapshotMsg{}, false, err
		}
		w = cachedWorld{
			full:    protocol.NewSnapshot(g, rivers),
			compact: protocol.NewCompactSnapshot(g, rivers),
		}
		c.restored.Add(1)
		c.store(key, w)
	}
	if compact {
		return w.compact, true, nil
	}
	return w.full, true, nil
}

func (c *worldCache) get(seed int64, month int) (cachedWorld, error) {
	key := worldKey{seed: seed, month: month}

	c.mu.Lock()
	if w, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.hits.Add(1)
		return w, nil
	}
	c.mu.Unlock()

	w, restored, err := c.build(seed, month)
	if err != nil {
		return cachedWorld{}, err
	}
	if restored {
		c.restored.Add(1)
	} else {
		c.generated.Add(1)
	}

	c.store(key, w)
	return w, nil
}

// store inserts under FIFO eviction. Another request may have raced
// us; last write wins, the world is identical either way.
func (c *worldCache) store(key worldKey, w cachedWorld) {
	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = w
		c.order = append(c.order, key)
		for len(c.order) > c.cap {
			evict := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, evict)
		}
	}
	c.mu.Unlock()
}

func (c *worldCache) build(seed int64, month int) (cachedWorld, bool, error) {
	if c.idx != nil {
		if entry, ok, err := c.idx.Lookup(seed, month); err == nil && ok {
			if snap, err := snapshot.ReadSnapshot(entry.Path); err == nil {
				if g, rivers, err := snap.World(); err == nil {
					return cachedWorld{
						full:    protocol.NewSnapshot(g, rivers),
						compact: protocol.NewCompactSnapshot(g, rivers),
					}, true, nil
				}
			}
			c.log.WithField("path", entry.Path).Warn("archived snapshot unreadable, regenerating")
		}
	}

	g := worldgen.GenerateWithConfig(seed, month, c.tune.WorldConfig())
	rivers, _ := rivergen.Generate(g, c.tune.RiverConfig(), c.tune.TargetCount())
	return cachedWorld{
		full:    protocol.NewSnapshot(g, rivers),
		compact: protocol.NewCompactSnapshot(g, rivers),
	}, false, nil
}

type cacheStats struct {
	Cached    int
	Hits      int64
	Generated int64
	Restored  int64
}

func (c *worldCache) Stats() cacheStats {
	c.mu.Lock()
	cached := len(c.entries)
	c.mu.Unlock()
	return cacheStats{
		Cached:    cached,
		Hits:      c.hits.Load(),
		Generated: c.generated.Load(),
		Restored:  c.restored.Load(),
	}
}
