package sipnav

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. nats://localhost:4222.
	URL string

	// Bucket is the KV bucket name. Created if it does not exist.
	Bucket string

	// TTL applied at the bucket level when the bucket is created. Entries
	// additionally carry their own TTL checked on read.
	TTL time.Duration

	// Credentials is an optional path to a NATS credentials file.
	Credentials string
}

// NATSKVCache stores cache entries in a NATS JetStream KV bucket so LRN dip
// results can be shared across processes.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and binds (or creates) the KV bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.URL == "" || config.Bucket == "" {
		return nil, ErrNATSConfigRequired
	}

	opts := []nats.Option{nats.Name("sipnav-cache")}
	if config.Credentials != "" {
		opts = append(opts, nats.UserCredentials(config.Credentials))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("binding KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv}, nil
}

type natsEntry struct {
	Body     []byte    `json:"body"`
	StoredAt time.Time `json:"stored_at"`
	TTL      int64     `json:"ttl_ns"`
}

// Get retrieves an entry from the KV bucket.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(key)
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, ErrCacheKeyNotFound
		}

		return nil, fmt.Errorf("reading cache key %q: %w", key, err)
	}

	var stored natsEntry
	if err := json.Unmarshal(kvEntry.Value(), &stored); err != nil {
		return nil, fmt.Errorf("decoding cache entry %q: %w", key, err)
	}

	entry := &CacheEntry{
		Body:     stored.Body,
		StoredAt: stored.StoredAt,
		TTL:      time.Duration(stored.TTL),
	}

	if entry.Expired() {
		_ = c.kv.Delete(key)

		return nil, ErrCacheKeyNotFound
	}

	return entry, nil
}

// Set stores an entry in the KV bucket.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(natsEntry{
		Body:     entry.Body,
		StoredAt: entry.StoredAt,
		TTL:      int64(entry.TTL),
	})
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	if _, err := c.kv.Put(key, data); err != nil {
		return fmt.Errorf("writing cache key %q: %w", key, err)
	}

	return nil
}

// Delete removes an entry from the KV bucket.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(key)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache key %q: %w", key, err)
	}

	return nil
}

// Clear removes every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil {
			return fmt.Errorf("deleting cache key %q: %w", key, err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close drains the underlying NATS connection.
func (c *NATSKVCache) Close() error {
	c.conn.Close()

	return nil
}
