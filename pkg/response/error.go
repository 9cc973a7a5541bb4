package response

import (
	"github.com/gin-gonic/gin"
)

type BizError struct {
	Code int
	Msg  string
	// 原始错误, 只用于日志和 errors.Is
	Err error
}

func (e *BizError) Error() string {
	return e.Msg
}

func (e *BizError) Unwrap() error {
	return e.Err
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// Wrap 用原始错误的文案生成业务错误
func Wrap(code int, err error) *BizError {
	return &BizError{
		Code: code,
		Msg:  err.Error(),
		Err:  err,
	}
}

func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(httpStatus(code), Response{
		Code: code,
		Msg:  msg,
	})
}
