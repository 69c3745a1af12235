package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

// memStore implements every storage interface in memory for handler tests.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
	fighters map[int64]models.Fighter
	events   map[int64]models.Event
	fights   map[int64]models.Fight
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[int64]models.Account{},
		fighters: map[int64]models.Fighter{},
		events:   map[int64]models.Event{},
		fights:   map[int64]models.Fight{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func window[T any](items map[int64]T, p storage.Page) []T {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []T{}
	for i := p.Skip; i < len(ids) && len(out) < p.Limit; i++ {
		out = append(out, items[ids[i]])
	}
	return out
}

func (m *memStore) CreateAccount(_ context.Context, a models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return models.Account{}, m.failWith
	}
	for _, existing := range m.accounts {
		if existing.Username == a.Username {
			return models.Account{}, storage.ErrUsernameTaken
		}
	}
	for _, existing := range m.accounts {
		if existing.Email == a.Email {
			return models.Account{}, storage.ErrEmailTaken
		}
	}
	a.ID = m.id()
	a.IsActive = true
	a.CreatedAt = time.Now().UTC()
	m.accounts[a.ID] = a
	return a, nil
}

func (m *memStore) GetAccount(_ context.Context, id int64) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return models.Account{}, m.failWith
	}
	a, ok := m.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return a, nil
}

func (m *memStore) FindByUsername(_ context.Context, username string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return models.Account{}, m.failWith
	}
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}

func (m *memStore) UpdateRole(_ context.Context, id int64, role models.Role) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	a.Role = role
	m.accounts[id] = a
	return a, nil
}

// setAccount edits an account in place, e.g. to promote or deactivate it.
func (m *memStore) setAccount(username string, edit func(*models.Account)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.accounts {
		if a.Username == username {
			edit(&a)
			m.accounts[id] = a
		}
	}
}

func (m *memStore) CreateFighter(_ context.Context, f models.Fighter) (models.Fighter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.id()
	m.fighters[f.ID] = f
	return f, nil
}

func (m *memStore) GetFighter(_ context.Context, id int64) (models.Fighter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fighters[id]
	if !ok {
		return models.Fighter{}, storage.ErrNotFound
	}
	return f, nil
}

func (m *memStore) ListFighters(_ context.Context, p storage.Page) ([]models.Fighter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return window(m.fighters, p), nil
}

func (m *memStore) UpdateFighter(_ context.Context, id int64, patch models.FighterPatch) (models.Fighter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fighters[id]
	if !ok {
		return models.Fighter{}, storage.ErrNotFound
	}
	f.Apply(patch)
	m.fighters[id] = f
	return f, nil
}

func (m *memStore) DeleteFighter(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fighters[id]; !ok {
		return storage.ErrNotFound
	}
	for _, fight := range m.fights {
		if fight.Fighter1ID == id || fight.Fighter2ID == id {
			return storage.ErrFighterInUse
		}
	}
	delete(m.fighters, id)
	return nil
}

func (m *memStore) CreateEvent(_ context.Context, e models.Event) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.id()
	m.events[e.ID] = e
	return e, nil
}

func (m *memStore) GetEvent(_ context.Context, id int64) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return models.Event{}, storage.ErrNotFound
	}
	return e, nil
}

func (m *memStore) GetEventDetail(_ context.Context, id int64) (models.EventDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return models.EventDetail{}, storage.ErrNotFound
	}
	detail := models.EventDetail{Event: e, Fights: []models.FightSummary{}}
	for _, fight := range window(m.fights, storage.Page{Limit: len(m.fights)}) {
		if fight.EventID != id {
			continue
		}
		a, b := m.fighters[fight.Fighter1ID], m.fighters[fight.Fighter2ID]
		detail.Fights = append(detail.Fights, models.FightSummary{
			ID:       fight.ID,
			Fighter1: models.FighterSummary{FirstName: a.FirstName, LastName: a.LastName},
			Fighter2: models.FighterSummary{FirstName: b.FirstName, LastName: b.LastName},
			WinnerID: fight.WinnerID,
			Method:   fight.Method,
			Round:    fight.Round,
		})
	}
	return detail, nil
}

func (m *memStore) ListEvents(_ context.Context, p storage.Page) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.events, p), nil
}

func (m *memStore) DeleteEvent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return storage.ErrNotFound
	}
	for fid, fight := range m.fights {
		if fight.EventID == id {
			delete(m.fights, fid)
		}
	}
	delete(m.events, id)
	return nil
}

func (m *memStore) CreateFight(_ context.Context, f models.Fight) (models.Fight, error) {
	if err := storage.ValidateFight(f); err != nil {
		return models.Fight{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[f.EventID]; !ok {
		return models.Fight{}, storage.ErrEventNotFound
	}
	if _, ok := m.fighters[f.Fighter1ID]; !ok {
		return models.Fight{}, storage.ErrFighterNotFound
	}
	if _, ok := m.fighters[f.Fighter2ID]; !ok {
		return models.Fight{}, storage.ErrFighterNotFound
	}
	f.ID = m.id()
	m.fights[f.ID] = f
	return f, nil
}

func (m *memStore) GetFight(_ context.Context, id int64) (models.Fight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fights[id]
	if !ok {
		return models.Fight{}, storage.ErrNotFound
	}
	return f, nil
}

func (m *memStore) ListFights(_ context.Context, p storage.Page) ([]models.Fight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.fights, p), nil
}
