package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// table is an id-keyed set of rows with server-assigned, increasing ids
type table[T any] struct {
	nextID int64
	rows   map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{nextID: 1, rows: make(map[int64]T)}
}

// insert assigns the next id through setID and stores the row
func (t *table[T]) insert(row T, setID func(*T, int64)) T {
	setID(&row, t.nextID)
	t.rows[t.nextID] = row
	t.nextID++
	return row
}

func (t *table[T]) get(id int64) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) put(id int64, row T) {
	t.rows[id] = row
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list returns the rows matching keep, ordered by id
func (t *table[T]) list(keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if row := t.rows[id]; keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) len() int {
	return len(t.rows)
}

type account struct {
	domain.User
	passwordHash []byte
}

// tables is everything the dev server remembers. Guarded by store.mu.
type tables struct {
	users     *table[account]
	leads     *table[domain.Lead]
	customers *table[domain.Customer]
	campaigns *table[domain.Campaign]
	sales     *table[domain.SalesRecord]
}

type store struct {
	mu  sync.RWMutex
	db  tables
	now func() time.Time
}

func newStore(now func() time.Time) *store {
	return &store{
		db: tables{
			users:     newTable[account](),
			leads:     newTable[domain.Lead](),
			customers: newTable[domain.Customer](),
			campaigns: newTable[domain.Campaign](),
			sales:     newTable[domain.SalesRecord](),
		},
		now: now,
	}
}

func (s *store) read(fn func(db *tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.db)
}

func (s *store) write(fn func(db *tables)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.db)
}

func (s *store) stamp() domain.Timestamp {
	return domain.NewTimestamp(s.now().UTC())
}

func (s *store) userByID(id int64) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.db.users.get(id)
	return acc.User, ok
}

// userByEmail matches case-insensitively
func (db *tables) userByEmail(email string) (account, bool) {
	matches := db.users.list(func(a account) bool {
		return strings.EqualFold(a.Email, email)
	})
	if len(matches) == 0 {
		return account{}, false
	}
	return matches[0], true
}

// addUser hashes password and stores a new active account
func (s *store) addUser(req domain.RegisterRequest) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	s.write(func(db *tables) {
		if _, exists := db.userByEmail(req.Email); exists {
			err = errEmailTaken
			return
		}
		now := s.stamp()
		acc := db.users.insert(account{
			User: domain.User{
				Email:     strings.ToLower(req.Email),
				FullName:  req.FullName,
				Role:      req.Role,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			},
			passwordHash: hash,
		}, func(a *account, id int64) { a.ID = id })
		user = acc.User
	})
	return user, err
}

// checkPassword returns the account for email when password matches
func (s *store) checkPassword(email, password string) (domain.User, bool) {
	var acc account
	var found bool
	s.read(func(db *tables) {
		acc, found = db.userByEmail(email)
	})
	if !found {
		return domain.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return domain.User{}, false
	}
	return acc.User, true
}

// setActive enables or disables an account
func (s *store) setActive(id int64, active bool) bool {
	var ok bool
	s.write(func(db *tables) {
		var acc account
		if acc, ok = db.users.get(id); ok {
			acc.IsActive = active
			db.users.put(id, acc)
		}
	})
	return ok
}
