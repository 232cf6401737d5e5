package embed

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

const (
	cssPattern = "main.*.css"
	jsPattern  = "main.*.js"
)

// Assets 播放器构建产物（文件名带内容哈希）
type Assets struct {
	CSS string // 相对 asset_dir 的路径，未找到为空
	JS  string
}

// Locate 在 dir/static/{css,js} 下按通配符查找产物，多个匹配时取字典序第一个
func Locate(dir string) (Assets, error) {
	css, err := firstMatch(filepath.Join(dir, "static", "css"), cssPattern)
	if err != nil {
		return Assets{}, err
	}
	js, err := firstMatch(filepath.Join(dir, "static", "js"), jsPattern)
	if err != nil {
		return Assets{}, err
	}
	assets := Assets{}
	if css != "" {
		assets.CSS = path.Join("static", "css", css)
	}
	if js != "" {
		assets.JS = path.Join("static", "js", js)
	}
	return assets, nil
}

// Empty 两个产物都缺失
func (a Assets) Empty() bool {
	return a.CSS == "" && a.JS == ""
}

// URL 拼接静态资源地址
func (a Assets) URL(prefix, rel string) string {
	if rel == "" {
		return ""
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(rel, "/")
}

func firstMatch(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("embed: glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return filepath.Base(matches[0]), nil
}
