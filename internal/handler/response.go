package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"Lee_Directory/internal/pkg"
	"Lee_Directory/internal/service"
)

// Response 所有 JSON 接口的统一外形
type Response struct {
	Success            bool             `json:"success"`
	Data               any              `json:"data,omitempty"`
	Error              string           `json:"error,omitempty"`
	Message            string           `json:"message,omitempty"`
	Details            []pkg.FieldError `json:"details,omitempty"`
	RequiresAccessCode bool             `json:"requiresAccessCode,omitempty"`
}

func ok(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, Response{Success: true, Data: data, Message: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Error: msg})
}

// fail 把业务错误映射成状态码；未知错误只记日志，对外返回 fallback
func fail(c *gin.Context, err error, fallback string) {
	var ve *pkg.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, Response{Error: "数据验证失败", Details: ve.Fields})
	case errors.Is(err, service.ErrCommunityNotFound):
		c.JSON(http.StatusNotFound, Response{Error: "社区不存在"})
	case errors.Is(err, service.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, Response{Error: "成员不存在"})
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, Response{Error: "该链接标识已被使用"})
	case errors.Is(err, service.ErrAccessCodeInvalid):
		c.JSON(http.StatusForbidden, Response{Error: "访问码错误", RequiresAccessCode: true})
	case errors.Is(err, service.ErrAccessCodeRequired):
		c.JSON(http.StatusForbidden, Response{Error: "需要访问码", RequiresAccessCode: true})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, Response{Error: "用户名或密码错误"})
	case errors.Is(err, service.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, Response{Error: "登录失败次数过多，请稍后再试"})
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg(fallback)
		c.JSON(http.StatusInternalServerError, Response{Error: fallback})
	}
}

// baseURL 优先用配置，否则按请求头拼出来
func baseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	proto := c.GetHeader("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
		if c.Request.TLS != nil {
			proto = "https"
		}
	}
	host := c.Request.Host
	if host == "" {
		host = "localhost"
	}
	return proto + "://" + host
}
