package pcache

import (
	"container/list"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-sif/frames"
	"github.com/go-sif/frames/logging"
	"github.com/gofrs/uuid"
)

// LRUConfig configures a least-recently-used PartitionCache
type LRUConfig struct {
	InitialSize int                        // the number of Partitions held uncompressed in memory
	DiskPath    string                     // the directory under which evicted Partitions are written. Defaults to os.TempDir().
	Serializer  frames.PartitionSerializer // compresses evicted Partitions
	Logger      *slog.Logger
}

type lru struct {
	config     *LRUConfig
	plocks     *locker.Locker
	lock       sync.Mutex
	pmap       map[string]*list.Element
	recentList *list.List // back is oldest, front is newest
	onDisk     map[string]*swappedPartition
	diskDir    string
	size       int
}

type cachedPartition struct {
	key   string
	value frames.OperablePartition
}

type swappedPartition struct {
	path   string
	schema frames.Schema
}

// NewLRU produces a PartitionCache which holds config.InitialSize Partitions in memory,
// writing the least recently used ones to disk once that limit is exceeded
func NewLRU(config *LRUConfig) (frames.PartitionCache, error) {
	if config.InitialSize < 1 {
		return nil, fmt.Errorf("LRUConfig.InitialSize %d must be at least 1", config.InitialSize)
	}
	if config.Serializer == nil {
		return nil, fmt.Errorf("LRUConfig.Serializer must be set")
	}
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}
	return &lru{
		config:     config,
		plocks:     locker.New(),
		pmap:       make(map[string]*list.Element),
		recentList: list.New(),
		onDisk:     make(map[string]*swappedPartition),
		size:       config.InitialSize,
	}, nil
}

// Add stores a Partition, replacing any Partition already stored under key
func (c *lru) Add(key string, value frames.OperablePartition) error {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	c.lock.Lock()
	defer c.lock.Unlock()
	c.forget(key)
	c.pmap[key] = c.recentList.PushFront(&cachedPartition{key: key, value: value})
	return c.evict()
}

// Get retrieves a Partition, reloading it into memory if it was swapped to disk
func (c *lru) Get(key string) (frames.OperablePartition, error) {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	c.lock.Lock()
	if e, ok := c.pmap[key]; ok {
		c.recentList.MoveToFront(e)
		c.lock.Unlock()
		return e.Value.(*cachedPartition).value, nil
	}
	swapped, ok := c.onDisk[key]
	c.lock.Unlock()
	if !ok {
		return nil, fmt.Errorf("Partition %s is not in the cache", key)
	}
	// disk reads happen outside of the cache-wide lock; the key lock prevents concurrent reloads
	part, err := c.load(swapped)
	if err != nil {
		return nil, err
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.forget(key)
	c.pmap[key] = c.recentList.PushFront(&cachedPartition{key: key, value: part})
	return part, c.evict()
}

// Has returns true iff a Partition is stored under key, in memory or on disk
func (c *lru) Has(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	_, inMemory := c.pmap[key]
	_, swapped := c.onDisk[key]
	return inMemory || swapped
}

// CurrentSize returns the number of Partitions held in memory
func (c *lru) CurrentSize() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.recentList.Len()
}

// Resize changes the number of Partitions held in memory by a factor, swapping
// Partitions to disk as necessary
func (c *lru) Resize(frac float64) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.size = int(float64(c.size) * frac)
	if c.size < 1 {
		c.size = 1
	}
	return c.evict()
}

// Destroy drops every Partition and removes swapped Partitions from disk
func (c *lru) Destroy() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.pmap = make(map[string]*list.Element)
	c.recentList.Init()
	c.onDisk = make(map[string]*swappedPartition)
	if c.diskDir != "" {
		if err := os.RemoveAll(c.diskDir); err != nil {
			c.config.Logger.Warn("unable to remove partition cache directory", slog.String("path", c.diskDir), slog.Any("error", err))
		}
		c.diskDir = ""
	}
}

// forget removes any copy of key from memory and disk. c.lock must be held.
func (c *lru) forget(key string) {
	if e, ok := c.pmap[key]; ok {
		c.recentList.Remove(e)
		delete(c.pmap, key)
	}
	if swapped, ok := c.onDisk[key]; ok {
		delete(c.onDisk, key)
		if err := os.Remove(swapped.path); err != nil {
			c.config.Logger.Warn("unable to remove swapped partition", slog.String("path", swapped.path), slog.Any("error", err))
		}
	}
}

// evict swaps the least recently used Partitions to disk until the cache fits. c.lock must be held.
func (c *lru) evict() error {
	for c.recentList.Len() > c.size {
		oldest := c.recentList.Back()
		cp := oldest.Value.(*cachedPartition)
		swapped, err := c.swap(cp.value)
		if err != nil {
			return fmt.Errorf("Unable to swap partition %s to disk: %w", cp.key, err)
		}
		c.recentList.Remove(oldest)
		delete(c.pmap, cp.key)
		c.onDisk[cp.key] = swapped
		c.config.Logger.Debug("swapped partition to disk", slog.String("key", cp.key), slog.String("path", swapped.path))
	}
	return nil
}

func (c *lru) swap(part frames.OperablePartition) (*swappedPartition, error) {
	if c.diskDir == "" {
		root := c.config.DiskPath
		if root == "" {
			root = os.TempDir()
		}
		dir, err := os.MkdirTemp(root, "frames-pcache-")
		if err != nil {
			return nil, err
		}
		c.diskDir = dir
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	tempFilePath := filepath.Join(c.diskDir, id.String())
	f, err := os.Create(tempFilePath)
	if err != nil {
		return nil, err
	}
	if err := c.config.Serializer.Compress(f, part); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &swappedPartition{path: tempFilePath, schema: part.GetSchema()}, nil
}

func (c *lru) load(swapped *swappedPartition) (frames.OperablePartition, error) {
	f, err := os.Open(swapped.path)
	if err != nil {
		return nil, fmt.Errorf("Unable to load disk-swapped partition %s: %w", swapped.path, err)
	}
	defer f.Close()
	part, err := c.config.Serializer.Decompress(f, swapped.schema)
	if err != nil {
		return nil, fmt.Errorf("Unable to decompress disk-swapped partition %s: %w", swapped.path, err)
	}
	return part, nil
}
