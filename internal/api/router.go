package api

import (
	"github.com/gin-gonic/gin"

	"kukuys-master/internal/core"
)

// cors allows the separately-deployed frontend to call this API.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// Router wires every game operation onto gin.
func Router(svc *core.Service) *gin.Engine {
	r := gin.Default()
	r.Use(cors())

	r.GET("/health", Health())

	api := r.Group("/api")
	{
		api.GET("/state", State(svc))
		api.POST("/recruit", Recruit(svc))
		api.POST("/expand-collection", ExpandCollection(svc))
		api.POST("/action", Action(svc))
		api.POST("/recycle-player", RecyclePlayer(svc))
		api.POST("/tournament-run", RunTournament(svc))
		api.GET("/recruit-config", RecruitConfig(svc))
		api.GET("/teams", Teams())
		api.GET("/tournaments", Tournaments())

		api.POST("/add-test-coins", AddTestCoins(svc))
		api.GET("/add-test-coins", AddTestCoins(svc))
		api.POST("/reset-collection", ResetCollection(svc))

		api.GET("/refresh-player-image", RefreshPlayerImage(svc))
		api.GET("/refresh-player-team", RefreshPlayerTeam(svc))
		api.POST("/backfill-teams", BackfillTeams(svc))
		api.POST("/backfill-photos", BackfillPhotos(svc))
		api.GET("/image-proxy", ImageProxy())
	}

	return r
}
