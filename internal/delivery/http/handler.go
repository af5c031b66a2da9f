package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prepsense/backend/internal/domain"
	"github.com/prepsense/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ledger   *usecase.Ledger
	resolver *usecase.CategoryResolver
	repo     domain.PantryRepository
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(ledger *usecase.Ledger, resolver *usecase.CategoryResolver, repo domain.PantryRepository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		ledger:   ledger,
		resolver: resolver,
		repo:     repo,
		logger:   logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "prepsense-pantry",
		"version": "1.0.0",
	})
}

type matchRequest struct {
	OwnerID      string                               `json:"ownerId" binding:"required"`
	Requirements []domain.RecipeIngredientRequirement `json:"requirements" binding:"required"`
}

// MatchRecipe pairs a recipe's ingredient requirements against the owner's
// current inventory and reports coverage. Read-only.
func (h *Handler) MatchRecipe(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inventory, err := h.repo.ItemsForOwner(c.Request.Context(), req.OwnerID)
	if err != nil {
		h.logger.Error("failed to read inventory", zap.String("owner", req.OwnerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read inventory"})
		return
	}

	report, err := h.ledger.MatchAll(c.Request.Context(), req.Requirements, inventory)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "matching failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type deductRequest struct {
	OwnerID string                 `json:"ownerId" binding:"required"`
	Lines   []domain.DeductionLine `json:"lines" binding:"required"`
	Reason  string                 `json:"reason"`
}

// Deduct removes quantities from pantry items as one transactional batch
func (h *Handler) Deduct(c *gin.Context) {
	var req deductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.ledger.Deduct(c.Request.Context(), req.OwnerID, req.Lines, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrTransactionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "deduction conflicted, retry"})
		default:
			h.logger.Error("deduction failed", zap.String("owner", req.OwnerID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "deduction failed"})
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}

type cookRequest struct {
	OwnerID      string                               `json:"ownerId" binding:"required"`
	Requirements []domain.RecipeIngredientRequirement `json:"requirements" binding:"required"`
	Reason       string                               `json:"reason"`
}

// CookRecipe is the "I cooked this" flow: match, then deduct matched lines
func (h *Handler) CookRecipe(c *gin.Context) {
	var req cookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, outcome, err := h.ledger.MatchAndDeduct(c.Request.Context(), req.OwnerID, req.Requirements, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrTransactionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "deduction conflicted, retry"})
		default:
			h.logger.Error("cook flow failed", zap.String("owner", req.OwnerID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cook flow failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report, "outcome": outcome})
}

type validateUnitRequest struct {
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit" binding:"required"`
}

// ValidateUnit runs the category-aware unit validator for an item name.
// Advisory: entry pathways use it to flag or auto-correct before persisting.
func (h *Handler) ValidateUnit(c *gin.Context) {
	var req validateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, verdict := h.resolver.ValidateItemUnit(c.Request.Context(), req.Name, req.Unit)
	c.JSON(http.StatusOK, gin.H{"category": category, "verdict": verdict})
}

type addItemRequest struct {
	OwnerID    string          `json:"ownerId" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Unit       string          `json:"unit" binding:"required"`
	Expiration *time.Time      `json:"expiration"`
}

// AddItem stocks a pantry item: canonicalize the quantity, resolve the
// category, and persist. The unit verdict is returned alongside so clients
// can surface warnings; an Error-severity verdict does not block the insert.
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, verdict := h.resolver.ValidateItemUnit(c.Request.Context(), req.Name, req.Unit)
	quantity := usecase.CanonicalizeLenient(h.logger, req.Amount, req.Unit, usecase.ConversionOptions{})

	item := domain.PantryItem{
		ID:            uuid.NewString(),
		OwnerID:       req.OwnerID,
		RawName:       req.Name,
		CanonicalName: usecase.CanonicalName(req.Name),
		Category:      category,
		Quantity:      quantity,
		Expiration:    req.Expiration,
	}
	if err := h.repo.AddItem(c.Request.Context(), item); err != nil {
		h.logger.Error("failed to add pantry item", zap.String("owner", req.OwnerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item, "verdict": verdict})
}

// ListItems returns the owner's inventory snapshot
func (h *Handler) ListItems(c *gin.Context) {
	ownerID := c.Query("owner")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner query parameter is required"})
		return
	}

	items, err := h.repo.ItemsForOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("failed to list items", zap.String("owner", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListRecords returns the owner's deduction audit trail
func (h *Handler) ListRecords(c *gin.Context) {
	ownerID := c.Query("owner")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner query parameter is required"})
		return
	}

	records, err := h.repo.Records(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("failed to list records", zap.String("owner", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
