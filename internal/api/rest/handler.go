package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/greenhollow/gh-game-core/internal/api/middleware"
	"github.com/greenhollow/gh-game-core/internal/api/rest/dto"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/game"
)

const defaultLeaderboardLimit = 100

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Claim credits the accrued production of a staked farming item
	// POST /api/v1/actions/claim
	Claim(c *gin.Context)

	// UpgradeItem attempts a level upgrade of a staked item
	// POST /api/v1/actions/upgrade-item
	UpgradeItem(c *gin.Context)

	// UpgradeFarm attempts a level upgrade of a farming item
	// POST /api/v1/actions/upgrade-farm
	UpgradeFarm(c *gin.Context)

	// Swap converts resource units into tokens at the current ratio
	// POST /api/v1/actions/swap
	Swap(c *gin.Context)

	// Withdraw pays out tokens through the external token ledger
	// POST /api/v1/actions/withdraw
	Withdraw(c *gin.Context)

	// AddBlend registers a blend recipe (requires API key)
	// POST /api/v1/admin/blends
	AddBlend(c *gin.Context)

	// SetRatio creates or replaces an exchange ratio (requires API key)
	// PUT /api/v1/admin/ratios
	SetRatio(c *gin.Context)

	// CreateVoting opens a ratio change proposal
	// POST /api/v1/votings
	CreateVoting(c *gin.Context)

	// Vote casts the caller's token balance on a proposal
	// POST /api/v1/votings/:id/votes
	Vote(c *gin.Context)

	// GetResources retrieves an owner's resource balances
	// GET /api/v1/players/:owner/resources
	GetResources(c *gin.Context)

	// GetTokenBalance retrieves an owner's token balance
	// GET /api/v1/players/:owner/tokens
	GetTokenBalance(c *gin.Context)

	// GetStats retrieves an owner's aggregated equipment stats
	// GET /api/v1/players/:owner/stats
	GetStats(c *gin.Context)

	// GetEquipment retrieves an owner's equipped items
	// GET /api/v1/players/:owner/equipment
	GetEquipment(c *gin.Context)

	// GetAssemblies retrieves an owner's staked farming items
	// GET /api/v1/players/:owner/assemblies
	GetAssemblies(c *gin.Context)

	// ListRecipes retrieves all registered blend recipes
	// GET /api/v1/blends
	ListRecipes(c *gin.Context)

	// GetRatio retrieves the exchange ratio of a resource
	// GET /api/v1/ratios/:resource
	GetRatio(c *gin.Context)

	// GetProposal retrieves a voting proposal
	// GET /api/v1/votings/:id
	GetProposal(c *gin.Context)

	// GetLeaderboard retrieves the highest ranked entries of a board
	// GET /api/v1/leaderboards/:board?limit=<limit>
	GetLeaderboard(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface over the game service
type handler struct {
	svc game.Service
}

// NewHandler creates a new REST API handler
func NewHandler(svc game.Service) Handler {
	return &handler{
		svc: svc,
	}
}

// actingOwner reads the authenticated account from the JWT subject.
// Player actions are rejected when the credential carries no subject
// (an API key, or a JWT minted without one).
func actingOwner(c *gin.Context) (domain.OwnerName, bool) {
	subject := c.GetString(string(middleware.AUTH_SUBJECT_KEY))
	if subject == "" {
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Player identity required")
		return "", false
	}
	return domain.OwnerName(subject), true
}

// Claim credits the accrued production of a staked farming item
func (h *handler) Claim(c *gin.Context) {
	owner, ok := actingOwner(c)
	if !ok {
		return
	}

	var req dto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.svc.Claim(c.Request.Context(), owner, domain.AssetID(req.SlotAssetID))
	if err != nil {
		respondActionError(c, err, "Failed to claim")
		return
	}

	c.JSON(http.StatusOK, dto.FromClaimResult(result))
}

// UpgradeItem attempts a level upgrade of a staked item
func (h *handler) UpgradeItem(c *gin.Context) {
	owner, ok := actingOwner(c)
	if !ok {
		return
	}

	var req dto.UpgradeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.svc.UpgradeItem(
		c.Request.Context(),
		owner,
		domain.AssetID(req.AssetID),
		req.TargetLevel,
		domain.AssetID(req.StakedAt),
	)
	if err != nil {
		respondActionError(c, err, "Failed to upgrade item")
		return
	}

	c.JSON(http.StatusOK, dto.FromUpgradeResult(result))
}

// UpgradeFarm attempts a level upgrade of a farming item
func (h *handler) UpgradeFarm(c *gin.Context) {
	owner, ok := actingOwner(c)
	if !ok {
		return
	}

	var req dto.UpgradeFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.svc.UpgradeFarmingItem(
		c.Request.Context(),
		owner,
		domain.AssetID(req.SlotAssetID),
		req.Staked,
	)
	if err != nil {
		respondActionError(c, err, "Failed to upgrade farming item")
		return
	}

	c.JSON(http.StatusOK, dto.FromUpgradeResult(result))
}

// Swap converts resource units into tokens at the current ratio
func (h *handler) Swap(c *gin.Context) {
	owner, ok := actingOwner(c)
	if !ok {
		return
	}

	var req dto.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	tokens, err := h.svc.Swap(c.Request.Context(), owner, req.Resource, req.Amount)
	if err != nil {
		respondActionError(c, err, "Failed to swap")
		return
	}

	c.JSON(http.StatusOK, dto.SwapResponse{Tokens: tokens.String()})
}

// Withdraw pays out tokens through the external token ledger
func (h *handler) Withdraw(c *gin.Context) {
	owner, ok := actingOwner(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	withdrawn, err := h.svc.Withdraw(c.Request.Context(), owner, domain.TokenFromFloat(req.Amount))
	if err != nil {
		respondActionError(c, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawResponse{Amount: withdrawn.String()})
}

// AddBlend registers a blend recipe (requires API key)
func (h *handler) AddBlend(c *gin.Context) {
	var req dto.AddBlendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ingredients := make([]domain.TemplateID, 0, len(req.Ingredients))
	for _, t := range req.Ingredients {
		ingredients = append(ingredients, domain.TemplateID(t))
	}

	recipeID, err := h.svc.AddBlend(c.Request.Context(), ingredients, domain.TemplateID(req.Result))
	if err != nil {
		respondActionError(c, err, "Failed to register blend recipe")
		return
	}

	c.JSON(http.StatusCreated, dto.RecipeCreatedResponse{RecipeID: recipeID})
}

// SetRatio creates or replaces an exchange ratio (requires API key)
func (h *handler) SetRatio(c *gin.Context) {
	var req dto.SetRatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.svc.SetRatio(c.Request.Context(), req.Resource, req.Ratio); err != nil {
		respondActionError(c, err, "Failed to set exchange ratio")
		return
	}

	c.JSON(http.StatusOK, dto.RatioResponse{Resource: req.Resource, Ratio: req.Ratio})
}

// CreateVoting opens a ratio change proposal
func (h *handler) CreateVoting(c *gin.Context) {
	owner, ok := actingOwner(c)
	if !ok {
		return
	}

	var req dto.CreateVotingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	proposalID, err := h.svc.CreateVoting(c.Request.Context(), owner, req.Resource, req.NewRatio)
	if err != nil {
		respondActionError(c, err, "Failed to create voting")
		return
	}

	c.JSON(http.StatusCreated, dto.VotingCreatedResponse{ProposalID: proposalID})
}

// Vote casts the caller's token balance on a proposal
func (h *handler) Vote(c *gin.Context) {
	owner, ok := actingOwner(c)
	if !ok {
		return
	}

	proposalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid proposal id")
		return
	}

	result, err := h.svc.Vote(c.Request.Context(), owner, proposalID)
	if err != nil {
		respondActionError(c, err, "Failed to vote")
		return
	}

	c.JSON(http.StatusOK, dto.FromVoteResult(result))
}

// GetResources retrieves an owner's resource balances
func (h *handler) GetResources(c *gin.Context) {
	owner := c.Param("owner")
	if owner == "" {
		respondBadRequest(c, "Owner is required")
		return
	}

	rows, err := h.svc.Resources(c.Request.Context(), domain.OwnerName(owner))
	if err != nil {
		respondInternalError(c, err, "Failed to get resources")
		return
	}

	c.JSON(http.StatusOK, dto.FromResourceBalances(rows))
}

// GetTokenBalance retrieves an owner's token balance
func (h *handler) GetTokenBalance(c *gin.Context) {
	owner := c.Param("owner")
	if owner == "" {
		respondBadRequest(c, "Owner is required")
		return
	}

	balance, err := h.svc.TokenBalance(c.Request.Context(), domain.OwnerName(owner))
	if err != nil {
		respondInternalError(c, err, "Failed to get token balance")
		return
	}

	c.JSON(http.StatusOK, dto.TokenBalanceResponse{Balance: balance.String()})
}

// GetStats retrieves an owner's aggregated equipment stats
func (h *handler) GetStats(c *gin.Context) {
	owner := c.Param("owner")
	if owner == "" {
		respondBadRequest(c, "Owner is required")
		return
	}

	stats, err := h.svc.StatsOf(c.Request.Context(), domain.OwnerName(owner))
	if err != nil {
		respondInternalError(c, err, "Failed to get stats")
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{Stats: stats})
}

// GetEquipment retrieves an owner's equipped items
func (h *handler) GetEquipment(c *gin.Context) {
	owner := c.Param("owner")
	if owner == "" {
		respondBadRequest(c, "Owner is required")
		return
	}

	rows, err := h.svc.EquipmentOf(c.Request.Context(), domain.OwnerName(owner))
	if err != nil {
		respondInternalError(c, err, "Failed to get equipment")
		return
	}

	c.JSON(http.StatusOK, dto.FromEquipmentSlots(rows))
}

// GetAssemblies retrieves an owner's staked farming items
func (h *handler) GetAssemblies(c *gin.Context) {
	owner := c.Param("owner")
	if owner == "" {
		respondBadRequest(c, "Owner is required")
		return
	}

	rows, err := h.svc.AssembliesOf(c.Request.Context(), domain.OwnerName(owner))
	if err != nil {
		respondInternalError(c, err, "Failed to get assemblies")
		return
	}

	response, err := dto.FromAssemblies(rows)
	if err != nil {
		respondInternalError(c, err, "Failed to decode assemblies")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListRecipes retrieves all registered blend recipes
func (h *handler) ListRecipes(c *gin.Context) {
	rows, err := h.svc.Recipes(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list blend recipes")
		return
	}

	response, err := dto.FromRecipes(rows)
	if err != nil {
		respondInternalError(c, err, "Failed to decode blend recipes")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRatio retrieves the exchange ratio of a resource
func (h *handler) GetRatio(c *gin.Context) {
	resource := c.Param("resource")
	if resource == "" {
		respondBadRequest(c, "Resource is required")
		return
	}

	ratio, err := h.svc.Ratio(c.Request.Context(), resource)
	if err != nil {
		respondInternalError(c, err, "Failed to get exchange ratio")
		return
	}
	if ratio == nil {
		respondNotFound(c, "No exchange ratio defined")
		return
	}

	c.JSON(http.StatusOK, dto.FromRatio(ratio))
}

// GetProposal retrieves a voting proposal
func (h *handler) GetProposal(c *gin.Context) {
	proposalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid proposal id")
		return
	}

	proposal, err := h.svc.Proposal(c.Request.Context(), proposalID)
	if err != nil {
		respondInternalError(c, err, "Failed to get proposal")
		return
	}
	if proposal == nil {
		respondNotFound(c, "Proposal not found")
		return
	}

	c.JSON(http.StatusOK, dto.FromProposal(proposal))
}

// GetLeaderboard retrieves the highest ranked entries of a board
func (h *handler) GetLeaderboard(c *gin.Context) {
	board := c.Param("board")
	if board == "" {
		respondBadRequest(c, "Board is required")
		return
	}

	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondValidationError(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	rows, err := h.svc.Leaderboard(c.Request.Context(), board, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, dto.FromLeaderboard(rows))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "gh-game-api",
	})
}
