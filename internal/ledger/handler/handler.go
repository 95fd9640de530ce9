package handler

import (
	"affiliate-ledger/internal/apierrors"
	"affiliate-ledger/internal/auth"
	"affiliate-ledger/internal/ledger/processor"
	"affiliate-ledger/internal/observability"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handler struct {
	processor processor.LedgerProcessor
	logger    *observability.Logger
}

func New(processor processor.LedgerProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

func (h *Handler) actor(c *gin.Context) (auth.Actor, bool) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
	}
	return actor, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid "+name))
		return uuid.UUID{}, false
	}
	return id, true
}

func optionalQuery(c *gin.Context, key string) *string {
	if raw := c.Query(key); raw != "" {
		return &raw
	}
	return nil
}

func optionalQueryID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid "+key))
		return nil, false
	}
	return &id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// HandleGetBalance handles GET /api/v1/partner/balance
func (h *Handler) HandleGetBalance(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.respondBalance(c, actor.UserID)
}

// HandleGetPartnerBalance handles GET /api/v1/admin/partners/:partner_id/balance
func (h *Handler) HandleGetPartnerBalance(c *gin.Context) {
	partnerID, ok := pathID(c, "partner_id")
	if !ok {
		return
	}
	h.respondBalance(c, partnerID)
}

func (h *Handler) respondBalance(c *gin.Context, partnerID uuid.UUID) {
	balance, err := h.processor.GetBalance(c.Request.Context(), partnerID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// HandleListPartnerReferrals handles GET /api/v1/partner/referrals
func (h *Handler) HandleListPartnerReferrals(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.listReferrals(c, &actor.UserID)
}

// HandleListReferrals handles GET /api/v1/admin/referrals
func (h *Handler) HandleListReferrals(c *gin.Context) {
	partnerID, ok := optionalQueryID(c, "partner_id")
	if !ok {
		return
	}
	h.listReferrals(c, partnerID)
}

func (h *Handler) listReferrals(c *gin.Context, partnerID *uuid.UUID) {
	linkID, ok := optionalQueryID(c, "link_id")
	if !ok {
		return
	}
	page, limit := pageParams(c)

	response, err := h.processor.ListReferrals(c.Request.Context(), processor.ListReferralsRequest{
		PartnerID: partnerID,
		LinkID:    linkID,
		Status:    optionalQuery(c, "status"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// TransitionStatusRequest represents the HTTP request for a review decision
type TransitionStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// HandleTransitionReferral handles POST /api/v1/admin/referrals/:referral_id/status
func (h *Handler) HandleTransitionReferral(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	referralID, ok := pathID(c, "referral_id")
	if !ok {
		return
	}

	var req TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	record, err := h.processor.TransitionReferralStatus(c.Request.Context(), referralID, actor, processor.TransitionRequest{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"referral": record})
}

// CreateWithdrawRequest represents the HTTP request for a payout
type CreateWithdrawRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	BankDetails map[string]interface{} `json:"bank_details,omitempty"`
}

// HandleCreateWithdraw handles POST /api/v1/partner/withdraws
func (h *Handler) HandleCreateWithdraw(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	request, err := h.processor.CreateWithdrawRequest(c.Request.Context(), actor.UserID, processor.CreateWithdrawRequest{
		Amount:      req.Amount,
		BankDetails: req.BankDetails,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"withdraw": request})
}

// HandleListPartnerWithdraws handles GET /api/v1/partner/withdraws
func (h *Handler) HandleListPartnerWithdraws(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.listWithdraws(c, &actor.UserID)
}

// HandleListWithdraws handles GET /api/v1/admin/withdraws
func (h *Handler) HandleListWithdraws(c *gin.Context) {
	partnerID, ok := optionalQueryID(c, "partner_id")
	if !ok {
		return
	}
	h.listWithdraws(c, partnerID)
}

func (h *Handler) listWithdraws(c *gin.Context, partnerID *uuid.UUID) {
	page, limit := pageParams(c)

	response, err := h.processor.ListWithdraws(c.Request.Context(), processor.ListWithdrawsRequest{
		PartnerID: partnerID,
		Status:    optionalQuery(c, "status"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// HandleTransitionWithdraw handles POST /api/v1/admin/withdraws/:withdraw_id/status
func (h *Handler) HandleTransitionWithdraw(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	withdrawID, ok := pathID(c, "withdraw_id")
	if !ok {
		return
	}

	var req TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	request, err := h.processor.TransitionWithdrawStatus(c.Request.Context(), withdrawID, actor, processor.TransitionRequest{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdraw": request})
}

// HandleGetProfile handles GET /api/v1/partner/profile
func (h *Handler) HandleGetProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	profile, err := h.processor.GetPartnerProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertProfileRequest represents the HTTP request for saving contact details
type UpsertProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,email"`
}

// HandleUpsertProfile handles PUT /api/v1/partner/profile
func (h *Handler) HandleUpsertProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.processor.UpsertPartnerProfile(c.Request.Context(), actor.UserID, processor.UpsertProfileRequest{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateBankDetailsRequest represents the HTTP request for replacing payout details
type UpdateBankDetailsRequest struct {
	BankDetails map[string]interface{} `json:"bank_details" binding:"required"`
}

// HandleUpdateBankDetails handles PUT /api/v1/partner/bank-details
func (h *Handler) HandleUpdateBankDetails(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req UpdateBankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.processor.UpdateBankDetails(c.Request.Context(), actor.UserID, req.BankDetails)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SetRatesRequest represents the HTTP request for configuring commission rates
type SetRatesRequest struct {
	DefaultRate  *decimal.Decimal           `json:"default_rate"`
	ProductRates map[string]decimal.Decimal `json:"product_rates,omitempty"`
}

// HandleSetPartnerRates handles PUT /api/v1/admin/partners/:partner_id/rates
func (h *Handler) HandleSetPartnerRates(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	partnerID, ok := pathID(c, "partner_id")
	if !ok {
		return
	}

	var req SetRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.processor.SetPartnerRates(c.Request.Context(), actor, partnerID, processor.SetRatesRequest{
		DefaultRate:  req.DefaultRate,
		ProductRates: req.ProductRates,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
