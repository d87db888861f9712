package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "promo-service/internal/handler/dto/request"
	resdto "promo-service/internal/handler/dto/response"
	"promo-service/internal/handler/httperr"
	"promo-service/internal/pkg/errs"
	"promo-service/internal/usecase/commands"
	"promo-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PromotionHandler struct {
	commands commands.PromotionCommands
	queries  queries.PromotionQueries
}

func NewPromotionHandler(cmds commands.PromotionCommands, qrys queries.PromotionQueries) *PromotionHandler {
	return &PromotionHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create promotion
// @Description Create a new promotion with either a fixed or percentage discount
// @Tags promotions
// @Accept json
// @Produce json
// @Param request body reqdto.CreatePromotionRequest true "Promotion request"
// @Success 201 {object} resdto.Envelope{data=resdto.PromotionResponse}
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req reqdto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.commands.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.OK("promotion created", resdto.FromPromotionView(view)))
}

// @Summary Update promotion
// @Description Partially update an existing promotion; omitted fields are left unchanged
// @Tags promotions
// @Accept json
// @Produce json
// @Param id path string true "Promotion ID"
// @Param request body reqdto.UpdatePromotionRequest true "Fields to update"
// @Success 200 {object} resdto.Envelope{data=resdto.PromotionResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /promotions/{id} [put]
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.Update(c.Request.Context(), id, req.ToCommand()); err != nil {
		h.abortCommandError(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.OK("promotion updated", resdto.FromPromotionView(view)))
}

// @Summary Delete promotion
// @Description Delete a promotion; one with recorded usage is deactivated instead
// @Tags promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} resdto.Envelope{data=resdto.DeletePromotionResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.commands.Delete(c.Request.Context(), id)
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	msg := "promotion deleted"
	if result.SoftDeleted {
		msg = "promotion deactivated because it has usage history"
	}
	c.JSON(http.StatusOK, resdto.OK(msg, resdto.DeletePromotionResponse{Deactivated: result.SoftDeleted}))
}

// @Summary List promotions
// @Description List promotions, optionally filtered to active or currently usable ones
// @Tags promotions
// @Produce json
// @Param active_only query bool false "Only active promotions"
// @Param usable_only query bool false "Only promotions usable right now"
// @Success 200 {object} resdto.Envelope{data=[]resdto.PromotionResponse}
// @Router /promotions [get]
func (h *PromotionHandler) List(c *gin.Context) {
	filters := queries.PromotionFilters{
		ActiveOnly: parseBoolQuery(c, "active_only"),
		UsableOnly: parseBoolQuery(c, "usable_only"),
	}

	views, err := h.queries.List(c.Request.Context(), filters)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.OK("promotions retrieved", resdto.FromPromotionViews(views)))
}

// @Summary Get promotion
// @Description Get promotion by ID
// @Tags promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} resdto.Envelope{data=resdto.PromotionResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /promotions/{id} [get]
func (h *PromotionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrPromotionNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Promotion not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.OK("promotion retrieved", resdto.FromPromotionView(view)))
}

// @Summary Get promotion by code
// @Description Get promotion by its code; lookup is case-insensitive
// @Tags promotions
// @Produce json
// @Param code path string true "Promotion code"
// @Success 200 {object} resdto.Envelope{data=resdto.PromotionResponse}
// @Failure 404 {object} httperr.Response
// @Router /promotions/by-code/{code} [get]
func (h *PromotionHandler) GetByCode(c *gin.Context) {
	view, err := h.queries.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, errs.ErrPromotionNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Promotion not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.OK("promotion retrieved", resdto.FromPromotionView(view)))
}

// @Summary List promotion usages
// @Description Page through a promotion's usage ledger, newest first
// @Tags promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Param after query string false "Cursor from the previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.Envelope{data=resdto.UsagePageResponse}
// @Failure 400 {object} httperr.Response
// @Router /promotions/{id}/usages [get]
func (h *PromotionHandler) ListUsages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, next, err := h.queries.ListUsages(c.Request.Context(), id, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.OK("usages retrieved", resdto.FromUsagePage(items, next)))
}

// @Summary Validate promotion
// @Description Check a code against an order amount without recording anything
// @Tags promotions
// @Accept json
// @Produce json
// @Param request body reqdto.ValidatePromotionRequest true "Validation request"
// @Success 200 {object} resdto.Envelope{data=resdto.ValidationResponse}
// @Failure 400 {object} httperr.Response
// @Router /promotions/validate [post]
func (h *PromotionHandler) Validate(c *gin.Context) {
	var req reqdto.ValidatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.queries.Validate(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, errs.ErrInvalidOrderAmount) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Order amount must be positive", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	// A failed check is still a successful validation call; the verdict
	// rides in the body with a 200.
	c.JSON(http.StatusOK, resdto.Envelope{
		Success: result.Valid,
		Message: result.Message,
		Data:    resdto.FromValidationResult(result),
		Errors:  []string{},
	})
}

func (h *PromotionHandler) abortCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrPromotionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Promotion not found", nil)
	case errors.Is(err, errs.ErrDuplicateCode):
		httperr.AbortWithError(c, http.StatusConflict, err, "Promotion code already exists", nil)
	case errors.Is(err, errs.ErrInvalidDiscountSpec),
		errors.Is(err, errs.ErrInvalidValidityWindow),
		errors.Is(err, errs.ErrInvalidUsageLimit),
		errors.Is(err, errs.ErrInvalidMinOrderAmount):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid promotion data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseBoolQuery(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.DefaultQuery(key, "false"))
	return err == nil && v
}
