package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// QueryOptionalInt 读取可选整数查询参数，缺省返回 nil，非法时 ok=false
func QueryOptionalInt(c *gin.Context, key string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}

// QueryBool 读取布尔查询参数，支持 1/true/yes
func QueryBool(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// ParamUint 读取正整数路径参数
func ParamUint(c *gin.Context, key string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param(key)), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
