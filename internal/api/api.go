package api

import (
	attributionHandler "affiliate-ledger/internal/attribution/handler"
	"affiliate-ledger/internal/auth"
	authHandler "affiliate-ledger/internal/auth/handler"
	ledgerHandler "affiliate-ledger/internal/ledger/handler"
	linksHandler "affiliate-ledger/internal/links/handler"
	"affiliate-ledger/internal/ratelimit"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type API struct {
	router             *gin.RouterGroup
	authHandler        authHandler.Handler
	linksHandler       linksHandler.Handler
	attributionHandler attributionHandler.Handler
	ledgerHandler      ledgerHandler.Handler
	limiter            *ratelimit.Service
	hookPolicy         ratelimit.Policy
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	linksHandler linksHandler.Handler,
	attributionHandler attributionHandler.Handler,
	ledgerHandler ledgerHandler.Handler,
	limiter *ratelimit.Service,
	hookPolicy ratelimit.Policy,
) API {
	return API{
		router:             router,
		authHandler:        authHandler,
		linksHandler:       linksHandler,
		attributionHandler: attributionHandler,
		ledgerHandler:      ledgerHandler,
		limiter:            limiter,
		hookPolicy:         hookPolicy,
	}
}

// actorKey throttles per authenticated caller
func actorKey(c *gin.Context) string {
	if actor, ok := auth.ActorFromContext(c); ok {
		return actor.UserID.String()
	}
	return ratelimit.ClientIPKey(c)
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.router.GET("/r/:code", a.attributionHandler.HandleRedirect)

	apiGroup := a.router.Group("/api/v1", a.authHandler.HandleJWTMiddleware)
	apiGroup.GET("/me", a.authHandler.GetActor)

	attributionGroup := apiGroup.Group("/attribution",
		authHandler.RequireRole(auth.RoleService, auth.RoleAdmin),
		a.limiter.Middleware(a.hookPolicy, actorKey),
	)
	{
		attributionGroup.POST("/orders", a.attributionHandler.HandleAttributeOrder)
	}

	partnerGroup := apiGroup.Group("/partner", authHandler.RequireRole(auth.RolePartner))
	{
		partnerGroup.POST("/links", a.linksHandler.HandleCreateLink)
		partnerGroup.GET("/links", a.linksHandler.HandleListPartnerLinks)
		partnerGroup.GET("/links/:link_id", a.linksHandler.HandleGetLink)
		partnerGroup.POST("/links/:link_id/deactivate", a.linksHandler.HandleDeactivateLink)

		partnerGroup.GET("/balance", a.ledgerHandler.HandleGetBalance)
		partnerGroup.GET("/referrals", a.ledgerHandler.HandleListPartnerReferrals)
		partnerGroup.POST("/withdraws", a.ledgerHandler.HandleCreateWithdraw)
		partnerGroup.GET("/withdraws", a.ledgerHandler.HandleListPartnerWithdraws)

		partnerGroup.GET("/profile", a.ledgerHandler.HandleGetProfile)
		partnerGroup.PUT("/profile", a.ledgerHandler.HandleUpsertProfile)
		partnerGroup.PUT("/bank-details", a.ledgerHandler.HandleUpdateBankDetails)
	}

	adminGroup := apiGroup.Group("/admin", authHandler.RequireRole(auth.RoleAdmin))
	{
		adminGroup.GET("/links", a.linksHandler.HandleListLinks)
		adminGroup.GET("/links/:link_id", a.linksHandler.HandleGetLink)
		adminGroup.POST("/links/:link_id/deactivate", a.linksHandler.HandleDeactivateLink)

		adminGroup.GET("/referrals", a.ledgerHandler.HandleListReferrals)
		adminGroup.POST("/referrals/:referral_id/status", a.ledgerHandler.HandleTransitionReferral)

		adminGroup.GET("/withdraws", a.ledgerHandler.HandleListWithdraws)
		adminGroup.POST("/withdraws/:withdraw_id/status", a.ledgerHandler.HandleTransitionWithdraw)

		adminGroup.GET("/partners/:partner_id/balance", a.ledgerHandler.HandleGetPartnerBalance)
		adminGroup.PUT("/partners/:partner_id/rates", a.ledgerHandler.HandleSetPartnerRates)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
