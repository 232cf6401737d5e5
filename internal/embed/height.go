package embed

import (
	"regexp"
	"strings"

	"github.com/rarebeats-player/internal/constants"
)

var cssLengthPattern = regexp.MustCompile(`^\d+(\.\d+)?(px|vh|vw|%|em|rem)$`)

// SanitizeHeight 仅接受简单 CSS 长度，其余退回默认值
func SanitizeHeight(raw, fallback string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if cssLengthPattern.MatchString(value) {
		return value
	}
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if cssLengthPattern.MatchString(fallback) {
		return fallback
	}
	return constants.DefaultEmbedHeight
}
