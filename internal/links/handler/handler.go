package handler

import (
	"affiliate-ledger/internal/apierrors"
	"affiliate-ledger/internal/auth"
	"affiliate-ledger/internal/links/processor"
	"affiliate-ledger/internal/observability"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.LinkProcessor
	logger    *observability.Logger
	baseURL   string
}

func New(processor processor.LinkProcessor, logger *observability.Logger, baseURL string) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
		baseURL:   baseURL,
	}
}

// CreateLinkRequest represents the HTTP request for creating a link
type CreateLinkRequest struct {
	TargetURL string `json:"target_url" binding:"required,url"`
}

// HandleCreateLink handles POST /api/v1/partner/links
func (h *Handler) HandleCreateLink(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	link, err := h.processor.CreateLink(ctx, actor.UserID, processor.CreateLinkRequest{TargetURL: req.TargetURL})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"link":         link,
		"redirect_url": h.baseURL + "/r/" + link.Code,
	})
}

// HandleListPartnerLinks handles GET /api/v1/partner/links
func (h *Handler) HandleListPartnerLinks(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}
	h.listLinks(c, &actor.UserID)
}

// HandleListLinks handles GET /api/v1/admin/links
func (h *Handler) HandleListLinks(c *gin.Context) {
	var ownerID *uuid.UUID
	if raw := c.Query("owner_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid owner id"))
			return
		}
		ownerID = &parsed
	}
	h.listLinks(c, ownerID)
}

func (h *Handler) listLinks(c *gin.Context, ownerID *uuid.UUID) {
	ctx := c.Request.Context()

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid is_active filter"))
			return
		}
		isActive = &parsed
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := h.processor.ListLinks(ctx, processor.ListLinksRequest{
		OwnerID:  ownerID,
		IsActive: isActive,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleGetLink handles GET /api/v1/partner/links/:link_id and
// GET /api/v1/admin/links/:link_id
func (h *Handler) HandleGetLink(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	linkID, err := uuid.Parse(c.Param("link_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid link id"))
		return
	}

	details, err := h.processor.GetLink(ctx, linkID, actor.UserID, actor.IsAdmin())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link":         details.Link,
		"click_count":  details.ClickCount,
		"redirect_url": h.baseURL + "/r/" + details.Link.Code,
	})
}

// HandleDeactivateLink handles POST /api/v1/partner/links/:link_id/deactivate
// and POST /api/v1/admin/links/:link_id/deactivate
func (h *Handler) HandleDeactivateLink(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	linkID, err := uuid.Parse(c.Param("link_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid link id"))
		return
	}

	link, err := h.processor.DeactivateLink(ctx, linkID, actor.UserID, actor.IsAdmin())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}
