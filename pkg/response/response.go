package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务码. 0 成功, 4xxxx 客户端可修正的错误, 5xxxx 服务端错误
const (
	CodeOK           = 0
	CodeInvalidParam = 40000
	CodeUnauthorized = 40100
	CodeForbidden    = 40300
	CodeNotFound     = 40400
	CodeConflict     = 40900
	CodePromoInvalid = 42201
	CodeInternal     = 50000
	CodeUnavailable  = 50300
)

type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: CodeOK,
		Msg:  "ok",
		Data: data,
	})
}

func Fail(c *gin.Context, code int, msg string) {
	c.JSON(httpStatus(code), Response{
		Code: code,
		Msg:  msg,
	})
}

// httpStatus 业务码映射到 http 状态码, 行内提示类错误仍返回 200
func httpStatus(code int) int {
	switch code {
	case CodePromoInvalid:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	}
	if code >= 400 && code < 600 {
		return code
	}
	return http.StatusInternalServerError
}
