package core

import (
	"context"

	"kukuys-master/internal/game"
)

// BackfillResult reports one player's backfill outcome.
type BackfillResult struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
}

// RefreshImage synchronously re-fetches one player's portrait. Unlike the
// post-recruit hook this is user-initiated, so lookup errors surface.
func (s *Service) RefreshImage(ctx context.Context, playerID string) (game.Player, error) {
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return game.Player{}, err
	}
	if s.enrich != nil {
		if img, err := s.enrich.PlayerImage(ctx, p.Name); err == nil && img != "" {
			if err := s.store.ApplyEnrichment(ctx, p.ID, Enrichment{ImageURL: &img}); err != nil {
				return game.Player{}, err
			}
		}
	}
	return s.store.Player(ctx, playerID)
}

// RefreshTeam synchronously re-fetches one player's current team.
func (s *Service) RefreshTeam(ctx context.Context, playerID string) (game.Player, error) {
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return game.Player{}, err
	}
	if s.enrich != nil {
		if team, err := s.enrich.PlayerTeam(ctx, p.Name); err == nil && team != "" {
			if err := s.store.ApplyEnrichment(ctx, p.ID, Enrichment{Team: &team}); err != nil {
				return game.Player{}, err
			}
		}
	}
	return s.store.Player(ctx, playerID)
}

// BackfillTeams fills in team for every player missing one.
func (s *Service) BackfillTeams(ctx context.Context) ([]game.Player, error) {
	players, err := s.store.Players(ctx)
	if err != nil {
		return nil, err
	}
	if s.enrich != nil {
		for _, p := range players {
			if p.Team != nil && *p.Team != "" {
				continue
			}
			team, err := s.enrich.PlayerTeam(ctx, p.Name)
			if err != nil || team == "" {
				continue
			}
			if err := s.store.ApplyEnrichment(ctx, p.ID, Enrichment{Team: &team}); err != nil {
				return nil, err
			}
		}
	}
	return s.store.Players(ctx)
}

// BackfillPhotos fills in portraits for every player missing one and
// reports per-player success.
func (s *Service) BackfillPhotos(ctx context.Context) ([]game.Player, []BackfillResult, error) {
	players, err := s.store.Players(ctx)
	if err != nil {
		return nil, nil, err
	}
	var results []BackfillResult
	if s.enrich != nil {
		for _, p := range players {
			if p.ImageURL != nil && *p.ImageURL != "" {
				continue
			}
			img, err := s.enrich.PlayerImage(ctx, p.Name)
			if err != nil || img == "" {
				results = append(results, BackfillResult{Name: p.Name, OK: false})
				continue
			}
			if err := s.store.ApplyEnrichment(ctx, p.ID, Enrichment{ImageURL: &img}); err != nil {
				return nil, nil, err
			}
			results = append(results, BackfillResult{Name: p.Name, OK: true})
		}
	}
	all, err := s.store.Players(ctx)
	return all, results, err
}
