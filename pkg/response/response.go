package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oroweb/internal/consts"
	"oroweb/pkg/errors"
	"oroweb/pkg/errors/ecode"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	// code != 0 时返回http状态码400
	var httpStatus int
	if code != ecode.Success {
		httpStatus = http.StatusBadRequest
	} else {
		httpStatus = http.StatusOK
	}
	c.JSON(httpStatus, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}
