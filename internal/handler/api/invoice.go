package api

import (
	"errors"
	"net/http"

	reqdto "promo-service/internal/handler/dto/request"
	resdto "promo-service/internal/handler/dto/response"
	"promo-service/internal/handler/httperr"
	"promo-service/internal/pkg/errs"
	"promo-service/internal/usecase/commands"
	"promo-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	commands          commands.InvoiceCommands
	promotionCommands commands.PromotionCommands
	queries           queries.InvoiceQueries
}

func NewInvoiceHandler(cmds commands.InvoiceCommands, promoCmds commands.PromotionCommands, qrys queries.InvoiceQueries) *InvoiceHandler {
	return &InvoiceHandler{
		commands:          cmds,
		promotionCommands: promoCmds,
		queries:           qrys,
	}
}

// @Summary Create invoice
// @Description Create an invoice with an optional customer identity
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body reqdto.CreateInvoiceRequest true "Invoice request"
// @Success 201 {object} resdto.Envelope{data=resdto.InvoiceResponse}
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req reqdto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.commands.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyInvoiceNumber):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invoice number is required", nil)
		case errors.Is(err, errs.ErrInvalidOrderAmount):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Subtotal must be positive", nil)
		case errors.Is(err, errs.ErrDuplicateInvoiceNumber):
			httperr.AbortWithError(c, http.StatusConflict, err, "Invoice number already exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.OK("invoice created", resdto.FromInvoiceView(view)))
}

// @Summary Get invoice
// @Description Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} resdto.Envelope{data=resdto.InvoiceResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrInvoiceNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Invoice not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.OK("invoice retrieved", resdto.FromInvoiceView(view)))
}

// @Summary Apply promotion to invoice
// @Description Validate a code against the invoice and record its use atomically
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body reqdto.ApplyPromotionRequest true "Promotion code"
// @Success 200 {object} resdto.Envelope{data=resdto.ValidationResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /invoices/{id}/apply-promotion [post]
func (h *InvoiceHandler) ApplyPromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ApplyPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.promotionCommands.Apply(c.Request.Context(), id, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvoiceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Invoice not found", nil)
		case errors.Is(err, errs.ErrPromotionAlreadyApplied):
			httperr.AbortWithError(c, http.StatusConflict, err, "Invoice already has a promotion applied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.Envelope{
		Success: result.Valid,
		Message: result.Message,
		Data:    resdto.FromValidationResult(result),
		Errors:  []string{},
	})
}
