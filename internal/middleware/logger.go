package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"oroweb/internal/consts"
	"oroweb/pkg/logger"
)

func Logger(c *gin.Context) {
	// 请求前
	t := time.Now()
	reqPath := c.Request.URL.Path
	reqId := c.GetString(consts.RequestId)
	method := c.Request.Method
	ip := c.ClientIP()

	logger.Info("[Request Start]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("method", method))

	c.Next()
	// 请求后
	latency := time.Since(t)
	logger.Info("[Request End]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("status", c.Writer.Status()),
		logger.Pair("cost", latency))
}
