package demo

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/kbukum/svcregistry/di"
)

// Calls counts constructor invocations per type since the last Reset.
var Calls Counters

// Counters holds one invocation counter per demo type.
type Counters struct {
	DataBase          atomic.Int32
	UserRepository    atomic.Int32
	MetricsRepository atomic.Int32
	UserService       atomic.Int32
}

// Reset zeroes all Counters.
func (c *Counters) Reset() {
	c.DataBase.Store(0)
	c.UserRepository.Store(0)
	c.MetricsRepository.Store(0)
	c.UserService.Store(0)
}

// DataBase is an in-memory key/value store.
type DataBase struct {
	mu   sync.RWMutex
	rows map[string]string
}

// NewDataBase creates an empty database.
func NewDataBase() *DataBase {
	Calls.DataBase.Add(1)
	return &DataBase{rows: make(map[string]string)}
}

// Put stores value under key.
func (d *DataBase) Put(key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows[key] = value
}

// Get returns the value stored under key.
func (d *DataBase) Get(key string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.rows[key]
	return v, ok
}

// Len returns the number of stored rows.
func (d *DataBase) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rows)
}

// UserRepository stores users in a DataBase.
type UserRepository struct {
	db     *DataBase
	prefix string
}

// NewUserRepository creates a repository on db.
func NewUserRepository(db *DataBase) *UserRepository {
	Calls.UserRepository.Add(1)
	return &UserRepository{db: db, prefix: "user:"}
}

// NewUserRepositoryWithPrefix creates a repository with a custom key prefix.
// It is not marked for injection, so the registry never picks it.
func NewUserRepositoryWithPrefix(db *DataBase, prefix string) *UserRepository {
	Calls.UserRepository.Add(1)
	return &UserRepository{db: db, prefix: prefix}
}

// DB returns the underlying database.
func (r *UserRepository) DB() *DataBase { return r.db }

// Save stores a user name.
func (r *UserRepository) Save(id, name string) {
	r.db.Put(r.prefix+id, name)
}

// Find returns the user name stored for id.
func (r *UserRepository) Find(id string) (string, bool) {
	return r.db.Get(r.prefix + id)
}

// MetricsRepository counts events in a DataBase.
type MetricsRepository struct {
	db *DataBase
	mu sync.Mutex
}

// NewMetricsRepository creates a metrics repository on db.
func NewMetricsRepository(db *DataBase) *MetricsRepository {
	Calls.MetricsRepository.Add(1)
	return &MetricsRepository{db: db}
}

// DB returns the underlying database.
func (m *MetricsRepository) DB() *DataBase { return m.db }

// Record increments the counter for event.
func (m *MetricsRepository) Record(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "metric:" + event
	n := 0
	if v, ok := m.db.Get(key); ok {
		_, _ = fmt.Sscan(v, &n)
	}
	n++
	m.db.Put(key, fmt.Sprint(n))
	return n
}

// UserService creates users and records signups.
type UserService struct {
	users   *UserRepository
	metrics *MetricsRepository
}

// NewUserService creates the service.
func NewUserService(users *UserRepository, metrics *MetricsRepository) *UserService {
	Calls.UserService.Add(1)
	return &UserService{users: users, metrics: metrics}
}

// Users returns the user repository.
func (s *UserService) Users() *UserRepository { return s.users }

// Metrics returns the metrics repository.
func (s *UserService) Metrics() *MetricsRepository { return s.metrics }

// SignUp stores the user and returns the signup count so far.
func (s *UserService) SignUp(id, name string) int {
	s.users.Save(id, name)
	return s.metrics.Record("signup")
}

// Catalog returns the constructors of the demo graph. Every type has a marked
// constructor; UserRepository also has an unmarked two-parameter one.
func Catalog() *di.Catalog {
	return di.NewCatalog().
		MustProvide(NewDataBase, di.Inject()).
		MustProvide(NewUserRepository, di.Inject()).
		MustProvide(NewUserRepositoryWithPrefix).
		MustProvide(NewMetricsRepository, di.Inject()).
		MustProvide(NewUserService, di.Inject())
}

// Roots maps the names accepted in configuration to registrable types.
var Roots = map[string]reflect.Type{
	"database":           di.TypeOf[*DataBase](),
	"user_repository":    di.TypeOf[*UserRepository](),
	"metrics_repository": di.TypeOf[*MetricsRepository](),
	"user_service":       di.TypeOf[*UserService](),
}

// Root returns the type configured under name.
func Root(name string) (reflect.Type, error) {
	t, ok := Roots[name]
	if !ok {
		return nil, fmt.Errorf("unknown root %q (known: %v)", name, RootNames())
	}
	return t, nil
}

// RootNames returns the configurable root names, sorted.
func RootNames() []string {
	names := make([]string, 0, len(Roots))
	for name := range Roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
