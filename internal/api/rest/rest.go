package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/greenhollow/gh-game-core/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Player actions (require a JWT whose subject is the acting account)
		actions := v1.Group("/actions", middleware.Auth(authCfg))
		{
			actions.POST("/claim", handler.Claim)
			actions.POST("/upgrade-item", handler.UpgradeItem)
			actions.POST("/upgrade-farm", handler.UpgradeFarm)
			actions.POST("/swap", handler.Swap)
			actions.POST("/withdraw", handler.Withdraw)
		}

		// Governance
		v1.POST("/votings", middleware.Auth(authCfg), handler.CreateVoting)
		v1.POST("/votings/:id/votes", middleware.Auth(authCfg), handler.Vote)
		v1.GET("/votings/:id", handler.GetProposal)

		// Administrative endpoints (require API key authentication)
		admin := v1.Group("/admin", middleware.APIKeyAuth(authCfg))
		{
			admin.POST("/blends", handler.AddBlend)
			admin.PUT("/ratios", handler.SetRatio)
		}

		// Public read access
		v1.GET("/players/:owner/resources", handler.GetResources)
		v1.GET("/players/:owner/tokens", handler.GetTokenBalance)
		v1.GET("/players/:owner/stats", handler.GetStats)
		v1.GET("/players/:owner/equipment", handler.GetEquipment)
		v1.GET("/players/:owner/assemblies", handler.GetAssemblies)
		v1.GET("/blends", handler.ListRecipes)
		v1.GET("/ratios/:resource", handler.GetRatio)
		v1.GET("/leaderboards/:board", handler.GetLeaderboard)
	}
}
