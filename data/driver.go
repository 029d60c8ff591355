package data

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ncobase/calcgate/data/config"
	"github.com/redis/go-redis/v9"
)

// Drivers register themselves from init() and are picked by the driver
// name in the configuration:
//
//	import _ "github.com/ncobase/calcgate/data/sqlite"

// Dialect captures the SQL differences the repositories have to care about.
type Dialect interface {
	// Rebind rewrites '?' placeholders into the driver's bind style.
	Rebind(query string) string

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}

// DatabaseDriver opens the registry database.
type DatabaseDriver interface {
	Dialect
	Name() string
	Open(ctx context.Context, node *config.DBNode) (*sql.DB, error)
}

// CacheDriver opens the redis client backing the schema cache.
type CacheDriver interface {
	Name() string
	Open(ctx context.Context, cfg *config.Redis) (*redis.Client, error)
}

type named interface {
	Name() string
}

type registry[T named] struct {
	kind string
	mu   sync.RWMutex
	m    map[string]T
}

func (r *registry[T]) register(d T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if any(d) == nil {
		panic(fmt.Sprintf("data: %s driver is nil", r.kind))
	}
	name := d.Name()
	if name == "" {
		panic(fmt.Sprintf("data: %s driver name is empty", r.kind))
	}
	if _, dup := r.m[name]; dup {
		panic(fmt.Sprintf("data: %s driver %s registered twice", r.kind, name))
	}
	r.m[name] = d
}

func (r *registry[T]) get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.m[name]
	if !ok {
		return d, fmt.Errorf("data: %s driver %q not registered (forgot `import _ \"github.com/ncobase/calcgate/data/%s\"`?), available: %v",
			r.kind, name, name, r.namesLocked())
	}
	return d, nil
}

func (r *registry[T]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *registry[T]) namesLocked() []string {
	out := make([]string, 0, len(r.m))
	for name := range r.m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var (
	databaseDrivers = &registry[DatabaseDriver]{kind: "database", m: map[string]DatabaseDriver{}}
	cacheDrivers    = &registry[CacheDriver]{kind: "cache", m: map[string]CacheDriver{}}
)

// RegisterDatabaseDriver makes a database driver available under its name.
// It panics on a nil driver, an empty name or a duplicate name.
func RegisterDatabaseDriver(d DatabaseDriver) { databaseDrivers.register(d) }

// RegisterCacheDriver makes a cache driver available under its name.
func RegisterCacheDriver(d CacheDriver) { cacheDrivers.register(d) }

// GetDatabaseDriver returns the database driver registered as name.
func GetDatabaseDriver(name string) (DatabaseDriver, error) { return databaseDrivers.get(name) }

// GetCacheDriver returns the cache driver registered as name.
func GetCacheDriver(name string) (CacheDriver, error) { return cacheDrivers.get(name) }

// ListDatabaseDrivers returns the sorted names of registered database drivers.
func ListDatabaseDrivers() []string { return databaseDrivers.names() }

// ConfigurePool applies the pool limits of node to db. maxOpen is used when
// node does not set one.
func ConfigurePool(db *sql.DB, node *config.DBNode, maxOpen int) {
	if node.MaxOpenConn > 0 {
		maxOpen = node.MaxOpenConn
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if node.MaxIdleConn > 0 {
		db.SetMaxIdleConns(node.MaxIdleConn)
	}
	if node.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(node.ConnMaxLifeTime)
	}
}

// RebindDollar rewrites '?' placeholders into $1, $2, ... bind parameters.
// Question marks inside single-quoted literals are left untouched.
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			quoted = !quoted
			b.WriteByte(ch)
		case ch == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
