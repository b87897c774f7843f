// Package api is the HTTP glue: gin handlers over the core service. No
// game rules live here.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kukuys-master/internal/core"
	"kukuys-master/internal/game"
)

var preconditionErrs = []error{
	core.ErrInsufficientFunds,
	core.ErrCollectionFull,
	core.ErrExpandFunds,
	core.ErrNotEnoughRoster,
	core.ErrStillGrinding,
	core.ErrTooTired,
	core.ErrGrindingBusy,
	core.ErrSleepingBusy,
	core.ErrAlreadySleeping,
	core.ErrAtTierCap,
	core.ErrRosterFull,
	core.ErrDuplicateRoster,
	core.ErrUnknownAction,
}

// fail maps core errors onto HTTP statuses: not-found is 404, precondition
// violations are 400 with their message surfaced verbatim, everything else
// is an opaque 500.
func fail(c *gin.Context, err error) {
	if errors.Is(err, core.ErrPlayerNotFound) {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	for _, pe := range preconditionErrs {
		if errors.Is(err, pe) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(500, gin.H{"error": "db"})
}

func playersOrEmpty(players []game.Player) []game.Player {
	if players == nil {
		return []game.Player{}
	}
	return players
}

func State(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, players, err := svc.Snapshot(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"state": state, "players": playersOrEmpty(players)})
	}
}

func Recruit(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Recruit(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"player": p})
	}
}

func ExpandCollection(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svc.ExpandCollection(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "state": state})
	}
}

func Action(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID string `json:"playerId"`
			Action   string `json:"action"`
		}
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}
		state, players, err := svc.Action(c.Request.Context(), req.PlayerID, req.Action)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "state": state, "players": playersOrEmpty(players)})
	}
}

func RecyclePlayer(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID string `json:"playerId"`
		}
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(400, gin.H{"error": "Missing player ID"})
			return
		}
		if err := svc.Recycle(c.Request.Context(), req.PlayerID); err != nil {
			fail(c, err)
			return
		}
		state, players, err := svc.Snapshot(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "state": state, "players": playersOrEmpty(players)})
	}
}

func RunTournament(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.RunTournament(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, result)
	}
}

// RecruitConfig exposes the live roll tables so the rates display can
// never drift from what the roller uses.
func RecruitConfig(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := svc.Config()
		c.JSON(200, gin.H{"rates": cfg.RecruitRates, "pool": cfg.RecruitPool})
	}
}

func Teams() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"teams": game.RealTeams})
	}
}

func Tournaments() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"tournaments": game.RealTournaments})
	}
}

func AddTestCoins(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const amount = 10000
		state, err := svc.AddCoins(c.Request.Context(), amount)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "state": state, "added": amount})
	}
}

func ResetCollection(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Reset(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		state, players, err := svc.Snapshot(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "state": state, "players": playersOrEmpty(players)})
	}
}

func RefreshPlayerImage(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Query("playerId")
		if playerID == "" {
			c.JSON(400, gin.H{"error": "Missing playerId"})
			return
		}
		p, err := svc.RefreshImage(c.Request.Context(), playerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "player": p, "image_url": p.ImageURL})
	}
}

func RefreshPlayerTeam(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Query("playerId")
		if playerID == "" {
			c.JSON(400, gin.H{"error": "Missing playerId"})
			return
		}
		p, err := svc.RefreshTeam(c.Request.Context(), playerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "player": p, "team": p.Team})
	}
}

func BackfillTeams(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := svc.BackfillTeams(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "players": playersOrEmpty(players)})
	}
}

func BackfillPhotos(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, results, err := svc.BackfillPhotos(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		if results == nil {
			results = []core.BackfillResult{}
		}
		c.JSON(200, gin.H{"success": true, "players": playersOrEmpty(players), "results": results})
	}
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
