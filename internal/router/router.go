package router

import (
	"github.com/gin-gonic/gin"

	"oroweb/internal/handler/offer"
	"oroweb/internal/handler/ping"
	"oroweb/internal/handler/qr"
	"oroweb/internal/middleware"
)

type ApiRouter struct {
	offerHandler *offer.Handler
}

func NewApiRouter(oh *offer.Handler) *ApiRouter {
	return &ApiRouter{offerHandler: oh}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())

	// 页面入口。兑换码每次现生成，禁止缓存。
	page := g.Group("/", middleware.NoCache())
	{
		page.GET("/offer", api.offerHandler.OfferPage())
		page.GET("/qr", qr.Render())
	}

	v1 := g.Group("/api/v1")
	{
		v1.GET("/offer/redeem", api.offerHandler.RedeemAPI())
	}
}
