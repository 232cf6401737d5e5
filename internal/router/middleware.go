package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/rarebeats-player/internal/authz"
	"github.com/rarebeats-player/internal/config"
	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/http/response"
	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	accessRoleKey   = "access_role"
	nonceQueryParam = "_wpnonce"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(buildCORSConfig(cfg))
}

func buildCORSConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{"Content-Type", requestIDHeader, constants.DefaultNonceHeader}
	}

	wildcard := len(cfg.AllowedOrigins) == 0
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			wildcard = true
			continue
		}
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	switch {
	case wildcard && cfg.AllowCredentials:
		// 携带凭据时不能回写 *，改为回显请求来源
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	case wildcard:
		corsCfg.AllowAllOrigins = true
	default:
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// NonceMiddleware 解析防伪令牌并确定访问角色
// 未强制令牌时所有调用方均为 embedded；强制时无令牌为 visitor，令牌无效直接拒绝
func NonceMiddleware(nonceService *service.NonceService, cfg config.NonceConfig) gin.HandlerFunc {
	header := strings.TrimSpace(cfg.Header)
	if header == "" {
		header = constants.DefaultNonceHeader
	}
	return func(c *gin.Context) {
		if !cfg.Required {
			c.Set(accessRoleKey, constants.RoleEmbedded)
			c.Next()
			return
		}

		token := strings.TrimSpace(c.GetHeader(header))
		if token == "" {
			token = strings.TrimSpace(c.Query(nonceQueryParam))
		}
		if token == "" {
			c.Set(accessRoleKey, constants.RoleVisitor)
			c.Next()
			return
		}
		if nonceService == nil || nonceService.Verify(token) != nil {
			logger.Warnw("nonce_invalid",
				"request_id", getRequestID(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			response.AbortWithError(c, http.StatusForbidden, response.CodeInvalidNonce, "Cookie check failed")
			return
		}
		c.Set(accessRoleKey, constants.RoleEmbedded)
		c.Next()
	}
}

// AccessMiddleware 按访问角色校验路由权限
func AccessMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("access_authz_service_unavailable")
			response.AbortWithError(c, http.StatusServiceUnavailable, response.CodeUnavailable, "Access policy unavailable")
			return
		}

		role := constants.RoleVisitor
		if value, ok := c.Get(accessRoleKey); ok {
			if text, ok := value.(string); ok && text != "" {
				role = text
			}
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("access_enforce_failed",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.AbortWithError(c, http.StatusForbidden, response.CodeForbidden, "Sorry, you are not allowed to do that.")
			return
		}
		if !allowed {
			logger.Warnw("access_denied",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authzService.RelativeObject(resource),
			)
			response.AbortWithError(c, http.StatusForbidden, response.CodeForbidden, "Sorry, you are not allowed to do that.")
			return
		}

		c.Next()
	}
}
