package service

import (
	"strings"

	"github.com/rarebeats-player/internal/constants"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AttributeDisplayName 去掉全局属性前缀并转为标题格式，如 pa_license-type -> License Type
func AttributeDisplayName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, constants.AttributeTaxonomyPrefix)
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	// Caser 有状态，不能跨 goroutine 共享
	return cases.Title(language.English, cases.NoLower).String(name)
}
