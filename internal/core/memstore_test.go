package core

import (
	"context"
	"sync"

	"kukuys-master/internal/game"
)

// memStore is an in-memory Store with the same semantics as the Postgres
// one: guarded coin mutations, atomic pair operations, and a gameplay /
// enrichment write split.
type memStore struct {
	mu      sync.Mutex
	state   game.GameState
	players map[string]*game.Player
	order   []string
}

func newMemStore() *memStore {
	return &memStore{
		state: game.GameState{
			Coins:           1000,
			InternetLevel:   1,
			FoodLevel:       1,
			CollectionSlots: 8,
		},
		players: make(map[string]*game.Player),
	}
}

func (m *memStore) State(ctx context.Context) (game.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *memStore) AddCoins(ctx context.Context, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Coins+delta < 0 {
		return ErrInsufficientFunds
	}
	m.state.Coins += delta
	return nil
}

func (m *memStore) ExpandSlots(ctx context.Context, cost, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Coins < cost {
		return ErrInsufficientFunds
	}
	m.state.Coins -= cost
	m.state.CollectionSlots += amount
	return nil
}

func (m *memStore) Players(ctx context.Context) ([]game.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]game.Player, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.players[id])
	}
	return out, nil
}

func (m *memStore) Player(ctx context.Context, id string) (game.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return game.Player{}, ErrPlayerNotFound
	}
	return *p, nil
}

func (m *memStore) InsertPlayer(ctx context.Context, p game.Player, cost int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Coins < cost {
		return ErrInsufficientFunds
	}
	m.state.Coins -= cost
	cp := p
	m.players[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memStore) UpdatePlayer(ctx context.Context, p game.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.players[p.ID]
	if !ok {
		return ErrPlayerNotFound
	}
	// Gameplay fields only; role/team/image belong to ApplyEnrichment.
	cur.Drafting = p.Drafting
	cur.Mechanics = p.Mechanics
	cur.MentalStrength = p.MentalStrength
	cur.Leadership = p.Leadership
	cur.Trashtalk = p.Trashtalk
	cur.Energy = p.Energy
	cur.IsRoster = p.IsRoster
	cur.IsStreaming = p.IsStreaming
	cur.GrindingUntil = p.GrindingUntil
	cur.SleepingUntil = p.SleepingUntil
	return nil
}

func (m *memStore) DeletePlayer(ctx context.Context, id string, refund int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[id]; !ok {
		return ErrPlayerNotFound
	}
	delete(m.players, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.state.Coins += refund
	return nil
}

func (m *memStore) ApplyEnrichment(ctx context.Context, id string, e Enrichment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil
	}
	if e.Role != nil {
		p.Role = *e.Role
	}
	if e.Team != nil {
		p.Team = e.Team
	}
	if e.ImageURL != nil {
		p.ImageURL = e.ImageURL
	}
	return nil
}

func (m *memStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = make(map[string]*game.Player)
	m.order = nil
	m.state = game.GameState{Coins: 1000, InternetLevel: 1, FoodLevel: 1, CollectionSlots: 8}
	return nil
}

func (m *memStore) StreamingSweep(ctx context.Context, income, energyDrain int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	streaming := 0
	for _, p := range m.players {
		if p.IsStreaming {
			streaming++
			p.Energy = max(0, p.Energy-energyDrain)
		}
	}
	m.state.Coins += streaming * income
	return nil
}

type fakeEnricher struct {
	enrichment Enrichment
	looked     chan string
}

func (f *fakeEnricher) Lookup(ctx context.Context, name string) (Enrichment, error) {
	if f.looked != nil {
		f.looked <- name
	}
	return f.enrichment, nil
}

func (f *fakeEnricher) PlayerImage(ctx context.Context, name string) (string, error) {
	if f.enrichment.ImageURL == nil {
		return "", nil
	}
	return *f.enrichment.ImageURL, nil
}

func (f *fakeEnricher) PlayerTeam(ctx context.Context, name string) (string, error) {
	if f.enrichment.Team == nil {
		return "", nil
	}
	return *f.enrichment.Team, nil
}
