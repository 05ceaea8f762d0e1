package impl

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"slices"
	"strings"
	"sync"
	"time"

	"rentease/internal/domain/entity"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/domain/repository"
	"rentease/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// The fakes below back the service tests with deterministic in-memory state.

type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	listings map[uuid.UUID]*entity.Listing
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*entity.User),
		listings: make(map[uuid.UUID]*entity.Listing),
	}
}

// fakeTxManager runs the callback directly against the shared store. Failure
// injection stands in for transaction aborts.
type fakeTxManager struct {
	store   *memStore
	execErr error
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if tm.execErr != nil {
		return tm.execErr
	}

	return fn(&fakeRepoFactory{store: tm.store})
}

type fakeRepoFactory struct {
	store *memStore
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeRepoFactory) ListingRepo() repository.ListingRepository {
	return &fakeListingRepo{store: f.store}
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	cloned := *user

	return &cloned, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			cloned := *user

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailAlreadyRegistered
		}
	}

	user.ID = uuid.New()
	cloned := *user
	r.store.users[user.ID] = &cloned

	return nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := make([]*entity.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		cloned := *user
		users = append(users, &cloned)
	}

	return users, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.store.users, id)

	return nil
}

type fakeListingRepo struct {
	store *memStore
}

func (r *fakeListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	listing.ID = uuid.New()
	cloned := *listing
	r.store.listings[listing.ID] = &cloned

	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	listing, ok := r.store.listings[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}

	cloned := *listing
	if owner, ok := r.store.users[listing.OwnerID]; ok {
		cloned.Owner = &entity.OwnerSummary{Name: owner.Name, Email: owner.Email}
	}

	return &cloned, nil
}

func (r *fakeListingRepo) FindAll(_ context.Context) ([]*entity.Listing, error) {
	return r.filter(func(*entity.Listing) bool { return true }), nil
}

func (r *fakeListingRepo) FindByCategory(_ context.Context, category entity.Category) ([]*entity.Listing, error) {
	return r.filter(func(l *entity.Listing) bool { return l.Category == category }), nil
}

func (r *fakeListingRepo) FindByContactEmail(_ context.Context, email string) ([]*entity.Listing, error) {
	return r.filter(func(l *entity.Listing) bool { return l.ContactEmail == email }), nil
}

func (r *fakeListingRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Listing, error) {
	return r.filter(func(l *entity.Listing) bool { return l.OwnerID == ownerID }), nil
}

func (r *fakeListingRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	return int64(len(r.filter(func(l *entity.Listing) bool { return l.OwnerID == ownerID }))), nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.listings[id]; !ok {
		return repository.ErrListingNotFound
	}
	delete(r.store.listings, id)

	return nil
}

func (r *fakeListingRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var deleted int64
	for id, listing := range r.store.listings {
		if listing.OwnerID == ownerID {
			delete(r.store.listings, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r *fakeListingRepo) filter(keep func(*entity.Listing) bool) []*entity.Listing {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var listings []*entity.Listing
	for _, listing := range r.store.listings {
		if keep(listing) {
			cloned := *listing
			listings = append(listings, &cloned)
		}
	}

	return listings
}

// fakeMediaStore records saved and removed paths without touching disk.
type fakeMediaStore struct {
	mu      sync.Mutex
	saveErr error
	saved   []string
	removed []string
	counter int
}

func (m *fakeMediaStore) Save(_ context.Context, files []*multipart.FileHeader) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return nil, m.saveErr
	}

	paths := make([]string, 0, len(files))
	for range files {
		m.counter++
		paths = append(paths, fmt.Sprintf("uploads/fake-%d.png", m.counter))
	}
	m.saved = append(m.saved, paths...)

	return paths, nil
}

func (m *fakeMediaStore) Remove(_ context.Context, paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removed = append(m.removed, paths...)

	return nil
}

func (m *fakeMediaStore) removedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.removed)
}

type fakeQRService struct{}

func (fakeQRService) GenerateListingQR(id uuid.UUID) ([]byte, error) {
	return []byte("qr:" + id.String()), nil
}

// fakeHasher prefixes instead of hashing so tests stay fast and readable.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct{}

func (fakeTokenService) Generate(userID uuid.UUID) (string, error) {
	return "token:" + userID.String(), nil
}

func (fakeTokenService) Validate(token string) (*service.Claims, error) {
	raw, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return nil, errors.New("malformed token")
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &service.Claims{UserID: userID}, nil
}

func (fakeTokenService) TokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
