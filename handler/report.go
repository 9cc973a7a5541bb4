package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Report struct {
	Jwt           *config.Jwt
	AuthService   service.IAuthService
	ReportService service.IReportService
}

func (h *Report) RegisterRouter(r gin.IRouter) {
	admin := r.Group("/v1/admin/reports")
	admin.Use(middleware.Auth([]byte(h.Jwt.Secret), h.AuthService), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/commission", context.Wrap(h.Commission))
}

// Commission 以附件形式下载 CSV, 上传到 OSS 时在 X-Report-Location 中返回地址
func (h *Report) Commission(c *gin.Context) error {
	var req types.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	from, to, err := service.ParseReportRange(req.From, req.To)
	if err != nil {
		return bizError(err)
	}
	var buf bytes.Buffer
	location, err := h.ReportService.Export(c.Request.Context(), from, to, &buf)
	if err != nil {
		return bizError(err)
	}
	if location != "" {
		c.Header("X-Report-Location", location)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="commission_%s_%s.csv"`, req.From, req.To))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	return nil
}
