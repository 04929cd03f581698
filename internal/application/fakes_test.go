package application

import (
	"context"
	"sort"
	"sync"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
)

// fakeAccountStore is an in-memory AccountRepository bound to one kind,
// mirroring the one-table-per-kind layout of the postgres implementation.
type fakeAccountStore struct {
	mu     sync.Mutex
	kind   entity.AccountKind
	nextID int64
	rows   map[int64]entity.Account
}

func newFakeAccountStore(kind entity.AccountKind) *fakeAccountStore {
	return &fakeAccountStore{kind: kind, rows: map[int64]entity.Account{}}
}

func (s *fakeAccountStore) Create(_ context.Context, a *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	a.ID = s.nextID
	a.Kind = s.kind
	s.rows[a.ID] = *a
	return nil
}

func (s *fakeAccountStore) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := row
	return &cp, nil
}

func (s *fakeAccountStore) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == email {
			cp := row
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeAccountStore) UpdateTokens(_ context.Context, id int64, accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.AccessToken = accessToken
	row.RefreshToken = refreshToken
	s.rows[id] = row
	return nil
}

func (s *fakeAccountStore) ClearTokens(_ context.Context, id int64) error {
	return s.UpdateTokens(context.Background(), id, "", "")
}

// fakeBookStore is an in-memory BookRepository. It records the params of
// the last List call so tests can assert on the resolved sort column.
type fakeBookStore struct {
	mu         sync.Mutex
	nextID     int64
	rows       map[int64]entity.Book
	lastList   repository.BookListParams
	createOps  int
	lastCreate []entity.Book
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{rows: map[int64]entity.Book{}}
}

func (s *fakeBookStore) add(b entity.Book) entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.rows[b.ID] = b
	return b
}

func (s *fakeBookStore) GetByID(_ context.Context, id int64) (*entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := row
	return &cp, nil
}

func (s *fakeBookStore) Count(_ context.Context, sellerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.rows {
		if sellerID == 0 || row.SellerID == sellerID {
			n++
		}
	}
	return n, nil
}

func (s *fakeBookStore) List(_ context.Context, p repository.BookListParams) ([]entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastList = p

	var all []entity.Book
	for _, row := range s.rows {
		if p.SellerID == 0 || row.SellerID == p.SellerID {
			all = append(all, row)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if p.Descending {
			return all[i].ID > all[j].ID
		}
		return all[i].ID < all[j].ID
	})

	if p.Offset >= len(all) {
		return nil, nil
	}
	end := p.Offset + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[p.Offset:end], nil
}

func (s *fakeBookStore) CreateMany(_ context.Context, books []entity.Book) ([]entity.Book, error) {
	s.mu.Lock()
	s.createOps++
	s.mu.Unlock()
	out := make([]entity.Book, 0, len(books))
	for _, b := range books {
		out = append(out, s.add(b))
	}
	s.mu.Lock()
	s.lastCreate = out
	s.mu.Unlock()
	return out, nil
}

func (s *fakeBookStore) Update(_ context.Context, b *entity.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[b.ID]; !ok {
		return repository.ErrNotFound
	}
	s.rows[b.ID] = *b
	return nil
}

func (s *fakeBookStore) UpdateCoverURL(_ context.Context, id int64, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.CoverURL = url
	s.rows[id] = row
	return nil
}

func (s *fakeBookStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeBookStore) DeleteBySeller(_ context.Context, sellerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, row := range s.rows {
		if row.SellerID == sellerID {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}
