package docfind

import "time"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver      string // "redis" or "valkey"
	addrs       []string
	password    string
	dialTimeout time.Duration
	reindex     bool

	keyPrefix       string
	defaultPageSize int
	maxPageSize     int
	maxImportBatch  int
	weights         *Weights
	fuzzy           *FuzzyPolicy

	historyEntries int
	historyTTL     time.Duration
}

func server(driver, password string, addrs []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driver
		c.addrs = addrs
		c.password = password
	})
}

// WithRedis connects to a single Redis node.
func WithRedis(addr, password string) Option {
	return server("redis", password, []string{addr})
}

// WithValkey connects to a single Valkey node.
func WithValkey(addr, password string) Option {
	return server("valkey", password, []string{addr})
}

// WithRedisCluster connects to a Redis cluster through any of its seed nodes.
func WithRedisCluster(password string, seeds ...string) Option {
	return server("redis", password, seeds)
}

// WithValkeyCluster connects to a Valkey cluster through any of its seed nodes.
func WithValkeyCluster(password string, seeds ...string) Option {
	return server("valkey", password, seeds)
}

// WithDialTimeout bounds each connection attempt.
func WithDialTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.dialTimeout = d
	})
}

// WithReindex rebuilds the document ID index from the stored hashes when the
// client connects. Use it when documents may have been written by another
// tool.
func WithReindex() Option {
	return optionFunc(func(c *clientConfig) {
		c.reindex = true
	})
}

// WithKeyPrefix sets the key namespace (default "docfind:").
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithPagination sets the default and maximum page sizes.
func WithPagination(defaultSize, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize, c.maxPageSize = defaultSize, maxSize
	})
}

// WithMaxImportBatch caps the number of documents per Import call.
func WithMaxImportBatch(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxImportBatch = n
	})
}

// WithScoring sets the default field weights and typo tolerance.
func WithScoring(w Weights, p FuzzyPolicy) Option {
	return optionFunc(func(c *clientConfig) {
		c.weights, c.fuzzy = &w, &p
	})
}

// WithHistory enables search history capped at maxEntries and expiring
// after ttl.
func WithHistory(maxEntries int, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.historyEntries, c.historyTTL = maxEntries, ttl
	})
}
