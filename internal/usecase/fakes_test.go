package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"
	"store-rating/internal/event"
	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memDB is an in-memory stand-in for the three repositories.
type memDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*entity.User
	stores  map[uuid.UUID]*entity.Store
	ratings map[[2]uuid.UUID]*entity.Rating
}

func newMemDB() *memDB {
	return &memDB{
		users:   map[uuid.UUID]*entity.User{},
		stores:  map[uuid.UUID]*entity.Store{},
		ratings: map[[2]uuid.UUID]*entity.Rating{},
	}
}

func (m *memDB) repository() *repository.Repository {
	return &repository.Repository{
		User:   memUsers{m},
		Store:  memStores{m},
		Rating: memRatings{m},
	}
}

func (m *memDB) aggregate(storeID uuid.UUID) entity.RatingAggregate {
	var agg entity.RatingAggregate
	for key, r := range m.ratings {
		if key[1] == storeID {
			agg.Sum += int64(r.Value)
			agg.Count++
		}
	}
	return agg
}

func page[T any](items []T, opts repository.ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	end := min(opts.Offset+opts.Limit, len(items))
	return items[opts.Offset:end]
}

type memUsers struct{ m *memDB }

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	r.m.users[user.ID] = &cp
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string, updatedAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = updatedAt
	return nil
}

func (r memUsers) filtered(filter repository.UserFilter) []*entity.UserSummary {
	var out []*entity.UserSummary
	for _, u := range r.m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Name)) {
			continue
		}
		s := &entity.UserSummary{User: *u}
		for _, st := range r.m.stores {
			if st.OwnerID == u.ID {
				agg := r.m.aggregate(st.ID)
				s.StoreRating = &agg
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r memUsers) List(_ context.Context, filter repository.UserFilter, opts repository.ListOptions) ([]*entity.UserSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return page(r.filtered(filter), opts), nil
}

func (r memUsers) Count(_ context.Context, filter repository.UserFilter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

type memStores struct{ m *memDB }

func (r memStores) CreateWithOwner(_ context.Context, owner *entity.User, store *entity.Store) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == owner.Email {
			return repository.ErrEmailUsedByUser
		}
	}
	for _, s := range r.m.stores {
		if s.Email == store.Email {
			return repository.ErrEmailUsedByStore
		}
	}
	u, s := *owner, *store
	s.OwnerID = owner.ID
	r.m.users[u.ID] = &u
	r.m.stores[s.ID] = &s
	return nil
}

func (r memStores) FindByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.stores[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r memStores) FindByOwnerID(_ context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.stores {
		if s.OwnerID == ownerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memStores) filtered(filter repository.StoreFilter) []*entity.StoreSummary {
	var out []*entity.StoreSummary
	for _, s := range r.m.stores {
		if !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		sum := &entity.StoreSummary{Store: *s, Rating: r.m.aggregate(s.ID)}
		if rt, ok := r.m.ratings[[2]uuid.UUID{filter.ViewerID, s.ID}]; ok {
			v := rt.Value
			sum.UserRating = &v
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r memStores) List(_ context.Context, filter repository.StoreFilter, opts repository.ListOptions) ([]*entity.StoreSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return page(r.filtered(filter), opts), nil
}

func (r memStores) Count(_ context.Context, filter repository.StoreFilter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

type memRatings struct{ m *memDB }

func (r memRatings) Upsert(_ context.Context, rating *entity.Rating) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	key := [2]uuid.UUID{rating.UserID, rating.StoreID}
	if existing, ok := r.m.ratings[key]; ok {
		existing.Value = rating.Value
		existing.UpdatedAt = rating.UpdatedAt
		rating.ID = existing.ID
		rating.CreatedAt = existing.CreatedAt
		return false, nil
	}
	cp := *rating
	r.m.ratings[key] = &cp
	return true, nil
}

func (r memRatings) FindRaters(_ context.Context, storeID uuid.UUID, opts repository.ListOptions) ([]*entity.Rater, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Rater
	for key, rt := range r.m.ratings {
		if key[1] != storeID {
			continue
		}
		u := r.m.users[key[0]]
		out = append(out, &entity.Rater{RatingID: rt.ID, Name: u.Name, Email: u.Email, Address: u.Address, Value: rt.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, opts), nil
}

func (r memRatings) AggregateByStore(_ context.Context, storeID uuid.UUID) (entity.RatingAggregate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.aggregate(storeID), nil
}

func (r memRatings) CountAll(context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.ratings)), nil
}

// recordingPublisher keeps published events and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, payload)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var _ event.Publisher = (*recordingPublisher)(nil)

type fixture struct {
	db        *memDB
	publisher *recordingPublisher
	svc       *Service
}

func newFixture() *fixture {
	db := newMemDB()
	pub := &recordingPublisher{}
	tokens := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	return &fixture{
		db:        db,
		publisher: pub,
		svc:       NewService(db.repository(), tokens, pub, zap.NewNop()),
	}
}

// seedUser stores a user directly and returns it.
func (f *fixture) seedUser(name, email string, role entity.UserRole) *entity.User {
	hash, err := utils.HashPassword("Secret@12")
	if err != nil {
		panic(err)
	}
	now := time.Now()
	u := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	f.db.users[u.ID] = u
	return u
}

func (f *fixture) seedStore(name, email string) (*entity.Store, *entity.User) {
	owner := f.seedUser("Owner Of "+name+" Long Name", email, entity.RoleStoreOwner)
	now := time.Now()
	s := &entity.Store{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:    name,
		Email:   email,
		OwnerID: owner.ID,
	}
	f.db.stores[s.ID] = s
	return s, owner
}
