// Package repository provides in-memory test doubles for the persistence interfaces.
// MemoryStore mirrors the relational rules of the schema: unique emails,
// unique (user, store) ratings and ON DELETE CASCADE.
package repository

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
)

// MemoryStore is a transactional in-memory database for usecase tests.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users   map[int64]*entity.User
	stores  map[int64]*entity.Store
	ratings map[int64]*entity.Rating
	nextID  int64
	tick    int64
	base    time.Time

	failures map[string]error
	locked   []int64
	steps    []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[int64]*entity.User{},
		stores:   map[int64]*entity.Store{},
		ratings:  map[int64]*entity.Rating{},
		base:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		failures: map[string]error{},
	}
}

// FailOn makes the named repository method (e.g. "RatingRepository.Create") return err.
func (m *MemoryStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[method] = err
}

// Steps returns the lock and read events of locking-sensitive calls, in call order,
// e.g. "lock user 3", "read rated stores of 3", "lock store 7".
func (m *MemoryStore) Steps() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.steps)
}

func (m *MemoryStore) step(event string, id int64) {
	m.steps = append(m.steps, event+" "+strconv.FormatInt(id, 10))
}

// LockedStoreIDs returns every store id locked so far, in lock order.
func (m *MemoryStore) LockedStoreIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.locked)
}

// Users returns the user repository.
func (m *MemoryStore) Users() repository.UserRepository { return &memoryUsers{m} }

// Stores returns the store repository.
func (m *MemoryStore) Stores() repository.StoreRepository { return &memoryStores{m} }

// Ratings returns the rating repository.
func (m *MemoryStore) Ratings() repository.RatingRepository { return &memoryRatings{m} }

// NewUserRepository implements repository.RepositoryFactory.
func (m *MemoryStore) NewUserRepository() repository.UserRepository { return m.Users() }

// NewStoreRepository implements repository.RepositoryFactory.
func (m *MemoryStore) NewStoreRepository() repository.StoreRepository { return m.Stores() }

// NewRatingRepository implements repository.RepositoryFactory.
func (m *MemoryStore) NewRatingRepository() repository.RatingRepository { return m.Ratings() }

// Execute serializes transactions and restores the previous state when fn fails.
func (m *MemoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snapshot := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snapshot)

		return err
	}

	return nil
}

type memorySnapshot struct {
	users   map[int64]*entity.User
	stores  map[int64]*entity.Store
	ratings map[int64]*entity.Rating
	nextID  int64
}

func (m *MemoryStore) snapshot() memorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := memorySnapshot{
		users:   make(map[int64]*entity.User, len(m.users)),
		stores:  make(map[int64]*entity.Store, len(m.stores)),
		ratings: make(map[int64]*entity.Rating, len(m.ratings)),
		nextID:  m.nextID,
	}
	for id, u := range m.users {
		s.users[id] = copyUser(u)
	}
	for id, st := range m.stores {
		s.stores[id] = copyStore(st)
	}
	for id, r := range m.ratings {
		s.ratings[id] = copyRating(r)
	}

	return s
}

func (m *MemoryStore) restore(s memorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users, m.stores, m.ratings, m.nextID = s.users, s.stores, s.ratings, s.nextID
}

// fail reports an injected failure. Callers hold mu.
func (m *MemoryStore) fail(method string) error {
	return m.failures[method]
}

// now returns strictly increasing timestamps. Callers hold mu.
func (m *MemoryStore) now() time.Time {
	m.tick++

	return m.base.Add(time.Duration(m.tick) * time.Second)
}

// id returns the next identity. Callers hold mu.
func (m *MemoryStore) id() int64 {
	m.nextID++

	return m.nextID
}

// StoreAggregate returns the persisted aggregate columns of a store.
func (m *MemoryStore) StoreAggregate(storeID int64) (avg float64, count int64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stores[storeID]
	if !ok {
		return 0, 0, false
	}

	return s.AvgRating, s.RatingsCount, true
}

// RatingsOf returns every rating row of a store.
func (m *MemoryStore) RatingsOf(storeID int64) []*entity.Rating {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*entity.Rating
	for _, r := range m.ratings {
		if r.StoreID == storeID {
			out = append(out, copyRating(r))
		}
	}
	slices.SortFunc(out, func(a, b *entity.Rating) int { return cmp.Compare(a.ID, b.ID) })

	return out
}

// --- users ---

type memoryUsers struct{ m *MemoryStore }

func (r *memoryUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.FindByID"); err != nil {
		return nil, err
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}

	return copyUser(u), nil
}

func (r *memoryUsers) FindByIDForUpdate(_ context.Context, id int64) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.FindByIDForUpdate"); err != nil {
		return nil, err
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}
	r.m.step("lock user", id)

	return copyUser(u), nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.FindByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}

	return nil, domainerrors.ErrUserNotFound
}

func (r *memoryUsers) Create(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.Create"); err != nil {
		return err
	}
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}

	user.ID = r.m.id()
	user.CreatedAt = r.m.now()
	user.UpdatedAt = user.CreatedAt
	r.m.users[user.ID] = copyUser(user)

	return nil
}

func (r *memoryUsers) Update(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.Update"); err != nil {
		return err
	}
	current, ok := r.m.users[user.ID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	for _, u := range r.m.users {
		if u.ID != user.ID && u.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}

	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = r.m.now()
	r.m.users[user.ID] = copyUser(user)

	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.users[id]; !ok {
		return domainerrors.ErrUserNotFound
	}

	delete(r.m.users, id)
	for storeID, s := range r.m.stores {
		if s.OwnerID == id {
			r.m.deleteStoreLocked(storeID)
		}
	}
	for ratingID, rating := range r.m.ratings {
		if rating.UserID == id {
			delete(r.m.ratings, ratingID)
		}
	}

	return nil
}

func (r *memoryUsers) List(_ context.Context, query entity.ListQuery) ([]*entity.User, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.List"); err != nil {
		return nil, 0, err
	}

	var matched []*entity.User
	for _, u := range r.m.users {
		if query.Role != "" && u.Role != query.Role {
			continue
		}
		fields := map[string]string{"name": u.Name, "email": u.Email, "address": u.Address}
		if !matchesSearch(query.Search, query.SearchFields, fields) {
			continue
		}
		matched = append(matched, copyUser(u))
	}

	slices.SortFunc(matched, func(a, b *entity.User) int {
		var c int
		switch query.Sort.Column {
		case "name":
			c = cmp.Compare(a.Name, b.Name)
		case "email":
			c = cmp.Compare(a.Email, b.Email)
		case "address":
			c = cmp.Compare(a.Address, b.Address)
		case "role":
			c = cmp.Compare(a.Role, b.Role)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if query.Sort.Desc() {
			return -c
		}

		return c
	})

	return paginate(matched, query.Page), int64(len(matched)), nil
}

func (r *memoryUsers) Count(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("UserRepository.Count"); err != nil {
		return 0, err
	}

	return int64(len(r.m.users)), nil
}

// --- stores ---

type memoryStores struct{ m *MemoryStore }

func (r *memoryStores) FindByID(_ context.Context, id int64) (*entity.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.FindByID"); err != nil {
		return nil, err
	}
	s, ok := r.m.stores[id]
	if !ok {
		return nil, domainerrors.ErrStoreNotFound
	}

	return r.m.withOwner(s), nil
}

func (r *memoryStores) FindByIDForUpdate(_ context.Context, id int64) (*entity.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.FindByIDForUpdate"); err != nil {
		return nil, err
	}
	s, ok := r.m.stores[id]
	if !ok {
		return nil, domainerrors.ErrStoreNotFound
	}
	r.m.locked = append(r.m.locked, id)
	r.m.step("lock store", id)

	return copyStore(s), nil
}

func (r *memoryStores) FindByEmail(_ context.Context, email string) (*entity.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.FindByEmail"); err != nil {
		return nil, err
	}
	for _, s := range r.m.stores {
		if s.Email == email {
			return copyStore(s), nil
		}
	}

	return nil, domainerrors.ErrStoreNotFound
}

func (r *memoryStores) Create(_ context.Context, store *entity.Store) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.Create"); err != nil {
		return err
	}
	if _, ok := r.m.users[store.OwnerID]; !ok {
		return domainerrors.ErrOwnerNotFound.WrapMessage("invalid owner reference")
	}
	for _, s := range r.m.stores {
		if s.Email == store.Email {
			return domainerrors.ErrStoreAlreadyExists.WrapMessage("email already exists")
		}
	}

	store.ID = r.m.id()
	store.AvgRating = 0
	store.RatingsCount = 0
	store.CreatedAt = r.m.now()
	store.UpdatedAt = store.CreatedAt
	r.m.stores[store.ID] = copyStore(store)

	return nil
}

func (r *memoryStores) Update(_ context.Context, store *entity.Store) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.Update"); err != nil {
		return err
	}
	current, ok := r.m.stores[store.ID]
	if !ok {
		return domainerrors.ErrStoreNotFound
	}
	if _, ok := r.m.users[store.OwnerID]; !ok {
		return domainerrors.ErrOwnerNotFound.WrapMessage("invalid owner reference")
	}
	for _, s := range r.m.stores {
		if s.ID != store.ID && s.Email == store.Email {
			return domainerrors.ErrStoreAlreadyExists.WrapMessage("email already exists")
		}
	}

	updated := copyStore(current)
	updated.Name = store.Name
	updated.Email = store.Email
	updated.Address = store.Address
	updated.OwnerID = store.OwnerID
	updated.UpdatedAt = r.m.now()
	r.m.stores[store.ID] = updated
	store.UpdatedAt = updated.UpdatedAt

	return nil
}

func (r *memoryStores) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.stores[id]; !ok {
		return domainerrors.ErrStoreNotFound
	}
	r.m.deleteStoreLocked(id)

	return nil
}

func (r *memoryStores) List(_ context.Context, query entity.ListQuery) ([]*entity.Store, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.List"); err != nil {
		return nil, 0, err
	}

	var matched []*entity.Store
	for _, s := range r.m.stores {
		fields := map[string]string{"name": s.Name, "email": s.Email, "address": s.Address}
		if !matchesSearch(query.Search, query.SearchFields, fields) {
			continue
		}
		matched = append(matched, r.m.withOwner(s))
	}

	slices.SortFunc(matched, func(a, b *entity.Store) int {
		var c int
		switch query.Sort.Column {
		case "name":
			c = cmp.Compare(a.Name, b.Name)
		case "email":
			c = cmp.Compare(a.Email, b.Email)
		case "address":
			c = cmp.Compare(a.Address, b.Address)
		case "avg_rating":
			c = cmp.Compare(a.AvgRating, b.AvgRating)
		case "ratings_count":
			c = cmp.Compare(a.RatingsCount, b.RatingsCount)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if query.Sort.Desc() {
			return -c
		}

		return c
	})

	return paginate(matched, query.Page), int64(len(matched)), nil
}

func (r *memoryStores) FindByOwner(_ context.Context, ownerID int64) ([]*entity.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.FindByOwner"); err != nil {
		return nil, err
	}

	var out []*entity.Store
	for _, s := range r.m.stores {
		if s.OwnerID == ownerID {
			out = append(out, copyStore(s))
		}
	}
	slices.SortFunc(out, func(a, b *entity.Store) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})

	return out, nil
}

func (r *memoryStores) LockByIDs(_ context.Context, ids []int64) ([]int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.LockByIDs"); err != nil {
		return nil, err
	}

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var locked []int64
	for _, id := range sorted {
		if _, ok := r.m.stores[id]; ok {
			locked = append(locked, id)
			r.m.locked = append(r.m.locked, id)
			r.m.step("lock store", id)
		}
	}

	return locked, nil
}

func (r *memoryStores) UpdateAggregate(_ context.Context, id int64, avg float64, count int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.UpdateAggregate"); err != nil {
		return err
	}
	s, ok := r.m.stores[id]
	if !ok {
		return domainerrors.ErrStoreNotFound
	}
	s.AvgRating = avg
	s.RatingsCount = count
	s.UpdatedAt = r.m.now()

	return nil
}

func (r *memoryStores) Count(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("StoreRepository.Count"); err != nil {
		return 0, err
	}

	return int64(len(r.m.stores)), nil
}

// --- ratings ---

type memoryRatings struct{ m *MemoryStore }

func (r *memoryRatings) FindByUserAndStore(_ context.Context, userID, storeID int64) (*entity.Rating, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.FindByUserAndStore"); err != nil {
		return nil, err
	}
	for _, rating := range r.m.ratings {
		if rating.UserID == userID && rating.StoreID == storeID {
			return copyRating(rating), nil
		}
	}

	return nil, domainerrors.ErrRatingNotFound
}

func (r *memoryRatings) Create(_ context.Context, rating *entity.Rating) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.Create"); err != nil {
		return err
	}
	if _, ok := r.m.stores[rating.StoreID]; !ok {
		return domainerrors.ErrStoreNotFound.WrapMessage("invalid store reference")
	}
	if _, ok := r.m.users[rating.UserID]; !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("rating user no longer exists")
	}
	for _, existing := range r.m.ratings {
		if existing.UserID == rating.UserID && existing.StoreID == rating.StoreID {
			return domainerrors.NewDatabaseExecuteError(domainerrors.ErrInternalError, "duplicate rating")
		}
	}

	rating.ID = r.m.id()
	rating.CreatedAt = r.m.now()
	rating.UpdatedAt = rating.CreatedAt
	r.m.ratings[rating.ID] = copyRating(rating)

	return nil
}

func (r *memoryRatings) Update(_ context.Context, rating *entity.Rating) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.Update"); err != nil {
		return err
	}
	current, ok := r.m.ratings[rating.ID]
	if !ok {
		return domainerrors.ErrRatingNotFound
	}
	current.Rating = rating.Rating
	current.UpdatedAt = r.m.now()
	rating.UpdatedAt = current.UpdatedAt

	return nil
}

func (r *memoryRatings) SummarizeByStore(_ context.Context, storeID int64) (entity.RatingAggregate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.SummarizeByStore"); err != nil {
		return entity.RatingAggregate{}, err
	}

	var agg entity.RatingAggregate
	for _, rating := range r.m.ratings {
		if rating.StoreID == storeID {
			agg.Count++
			agg.Sum += int64(rating.Rating)
		}
	}

	return agg, nil
}

func (r *memoryRatings) FindByStore(_ context.Context, storeID int64, limit int) ([]*entity.Rating, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.FindByStore"); err != nil {
		return nil, err
	}

	out := r.m.filterRatings(func(rating *entity.Rating) bool { return rating.StoreID == storeID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *memoryRatings) FindByUser(_ context.Context, userID int64, page entity.PageRequest) ([]*entity.Rating, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.FindByUser"); err != nil {
		return nil, 0, err
	}

	out := r.m.filterRatings(func(rating *entity.Rating) bool { return rating.UserID == userID })

	return paginate(out, page), int64(len(out)), nil
}

func (r *memoryRatings) FindUserRatingsForStores(_ context.Context, userID int64, storeIDs []int64) (map[int64]int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.FindUserRatingsForStores"); err != nil {
		return nil, err
	}

	out := map[int64]int{}
	for _, rating := range r.m.ratings {
		if rating.UserID == userID && slices.Contains(storeIDs, rating.StoreID) {
			out[rating.StoreID] = rating.Rating
		}
	}

	return out, nil
}

func (r *memoryRatings) FindRecentByOwner(_ context.Context, ownerID int64, limit int) ([]*entity.Rating, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.FindRecentByOwner"); err != nil {
		return nil, err
	}

	out := r.m.filterRatings(func(rating *entity.Rating) bool {
		s, ok := r.m.stores[rating.StoreID]
		return ok && s.OwnerID == ownerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *memoryRatings) FindStoreIDsByUser(_ context.Context, userID int64) ([]int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.FindStoreIDsByUser"); err != nil {
		return nil, err
	}
	r.m.step("read rated stores of", userID)

	var ids []int64
	for _, rating := range r.m.ratings {
		if rating.UserID == userID {
			ids = append(ids, rating.StoreID)
		}
	}
	slices.Sort(ids)

	return ids, nil
}

func (r *memoryRatings) Count(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if err := r.m.fail("RatingRepository.Count"); err != nil {
		return 0, err
	}

	return int64(len(r.m.ratings)), nil
}

// --- helpers ---

// deleteStoreLocked removes a store and its ratings. Callers hold mu.
func (m *MemoryStore) deleteStoreLocked(id int64) {
	delete(m.stores, id)
	for ratingID, rating := range m.ratings {
		if rating.StoreID == id {
			delete(m.ratings, ratingID)
		}
	}
}

// withOwner copies a store and attaches its owner summary. Callers hold mu.
func (m *MemoryStore) withOwner(s *entity.Store) *entity.Store {
	out := copyStore(s)
	if owner, ok := m.users[s.OwnerID]; ok {
		out.Owner = owner.Summary()
	}

	return out
}

// filterRatings returns matching ratings newest first with summaries. Callers hold mu.
func (m *MemoryStore) filterRatings(keep func(*entity.Rating) bool) []*entity.Rating {
	var out []*entity.Rating
	for _, rating := range m.ratings {
		if !keep(rating) {
			continue
		}
		c := copyRating(rating)
		if u, ok := m.users[rating.UserID]; ok {
			c.User = u.Summary()
		}
		if s, ok := m.stores[rating.StoreID]; ok {
			c.Store = s.Summary()
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *entity.Rating) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})

	return out
}

func matchesSearch(search string, allowed []string, fields map[string]string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, name := range allowed {
		if strings.Contains(strings.ToLower(fields[name]), search) {
			return true
		}
	}

	return false
}

func paginate[T any](items []T, page entity.PageRequest) []T {
	if page.Limit <= 0 {
		return items
	}
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}

	return items[start:min(start+page.Limit, len(items))]
}

func copyUser(u *entity.User) *entity.User {
	c := *u

	return &c
}

func copyStore(s *entity.Store) *entity.Store {
	c := *s
	if s.Owner != nil {
		owner := *s.Owner
		c.Owner = &owner
	}

	return &c
}

func copyRating(r *entity.Rating) *entity.Rating {
	c := *r
	c.User = nil
	c.Store = nil

	return &c
}
