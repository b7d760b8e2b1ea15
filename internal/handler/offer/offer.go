package offer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oroweb/conf"
	"oroweb/internal/catalog"
	"oroweb/internal/consts"
	"oroweb/internal/geo"
	"oroweb/internal/identity"
	"oroweb/internal/model"
	"oroweb/internal/redeem"
	"oroweb/pkg/errors"
	"oroweb/pkg/errors/ecode"
	"oroweb/pkg/logger"
	"oroweb/pkg/response"
	"oroweb/pkg/validator"
	"oroweb/utils"
)

type Handler struct {
	resolver *geo.Resolver
	catalog  *catalog.Catalog
	selector *identity.Selector
	orch     *redeem.Orchestrator
	group    conf.GroupConfig
}

func NewHandler(r *geo.Resolver, c *catalog.Catalog, s *identity.Selector, o *redeem.Orchestrator, group conf.GroupConfig) *Handler {
	return &Handler{resolver: r, catalog: c, selector: s, orch: o, group: group}
}

type redeemQuery struct {
	Code    string `form:"code"`
	Id      string `form:"id"` // 旧链接用id传兑换码
	AuthKey string `form:"authKey"`
	Big     bool   `form:"big"`
}

func (q *redeemQuery) key() string {
	if q.Code != "" {
		return q.Code
	}
	return q.Id
}

// apiRedeemQuery JSON接口的入参，authKey必填
type apiRedeemQuery struct {
	Code    string `form:"code" binding:"required" label:"code"`
	AuthKey string `form:"authKey" binding:"required" label:"authKey"`
	Big     bool   `form:"big"`
}

func requestInfo(ctx *gin.Context) model.RequestInfo {
	return model.RequestInfo{
		AcceptLanguage: ctx.GetHeader(consts.HeaderAcceptLanguage),
		EdgeCountry:    ctx.GetHeader(consts.HeaderEdgeCountry),
		ForwardedFor:   ctx.GetHeader(consts.HeaderForwardedFor),
		RemoteAddr:     ctx.Request.RemoteAddr,
	}
}

// redeemFlow 一次兑换的完整管线。错误优先级是固定的：
// 地区校验先于authKey校验，authKey校验先于任何出站调用。
// 找不到优惠不算错误，是独立的展示分支。
func (h *Handler) redeemFlow(ctx *gin.Context, key, authKey string, big bool) (model.Offer, string, error) {
	region := h.resolver.Resolve(requestInfo(ctx))

	offer, found := h.catalog.Offer(key)
	if !found {
		return model.Offer{}, "", errors.WithCode(ecode.OfferNotFoundErr, consts.MsgOfferNotFound)
	}

	if !region.Allowed {
		return offer, "", errors.WithCode(ecode.RegionDeniedErr, "%s", region.Reason)
	}

	if authKey == "" || !utils.ContainsStr(offer.AuthKeys, authKey) {
		return offer, "", errors.WithCode(ecode.AuthKeyRejectedErr,
			"Esta web es de uso exclusivo para miembros del grupo %s", h.group.Name)
	}

	id, err := h.selector.Select(offer)
	if err != nil {
		return offer, "", err
	}

	code, err := h.orch.Redeem(ctx.Request.Context(), offer, id, big)
	if err != nil {
		logger.Warnf("redeem %s failed: %v", key, err)
		return offer, "", describeRedeemErr(err)
	}
	return offer, code, nil
}

// OfferPage 面向用户的兑换页面
func (h *Handler) OfferPage() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var q redeemQuery
		_ = ctx.ShouldBindQuery(&q)

		offer, code, err := h.redeemFlow(ctx, q.key(), q.AuthKey, q.Big)

		data := gin.H{
			"Group": h.group,
		}
		if errors.Code(err) != ecode.OfferNotFoundErr {
			data["Offer"] = offer
		}
		if err != nil {
			if errors.Code(err) != ecode.OfferNotFoundErr {
				_, msg := errors.DecodeErr(err)
				data["Error"] = msg
			}
		} else {
			data["UniqueCode"] = code
		}
		ctx.HTML(http.StatusOK, "offer.html", data)
	}
}

// RedeemAPI JSON变体，行为与页面一致，给程序化调用用
func (h *Handler) RedeemAPI() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var q apiRedeemQuery
		if err := ctx.ShouldBindQuery(&q); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", validator.Translate(err)), nil)
			return
		}

		offer, code, err := h.redeemFlow(ctx, q.Code, q.AuthKey, q.Big)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"offer":      offer.Name,
			"qrCode":     offer.QRCode(q.Big),
			"uniqueCode": code,
		})
	}
}

// describeRedeemErr 把编排层的阶段错误翻译成带错误码的对外提示
func describeRedeemErr(err error) error {
	e, ok := err.(*redeem.Error)
	if !ok {
		return errors.Wrap(err, ecode.InternalErr, "Se ha producido un error inesperado")
	}

	switch e.Kind {
	case redeem.KindCommunication:
		return errors.Wrap(err, ecode.CommunicationErr, "Error de comunicación con el servidor")
	case redeem.KindMalformed:
		return errors.Wrap(err, ecode.MalformedResponseErr, "Respuesta inválida del servidor")
	}

	switch e.Stage {
	case redeem.StageRegister:
		return errors.Wrap(err, ecode.RegistrationErr, "No se ha podido registrar el dispositivo")
	case redeem.StageExchange:
		return errors.Wrap(err, ecode.ExchangeErr, "Respuesta inválida: "+e.Msg)
	default:
		return errors.Wrap(err, ecode.IssuanceErr, "Respuesta inválida: "+e.Msg)
	}
}
