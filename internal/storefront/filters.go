package storefront

import "strings"

// FilterState 客户端筛选条件，各条件之间为 AND
type FilterState struct {
	Genre  string
	Mood   string
	Key    string
	BPMMin *int
	BPMMax *int
	Search string
}

// Active 是否设置了任一条件
func (f FilterState) Active() bool {
	return f.Genre != "" || f.Mood != "" || f.Key != "" || f.BPMMin != nil || f.BPMMax != nil || f.Search != ""
}

// Match 判断商品是否满足全部条件；无 BPM 的商品不受区间限制
func (f FilterState) Match(p Product) bool {
	if !equalFoldOrEmpty(f.Genre, p.Genre) || !equalFoldOrEmpty(f.Mood, p.Mood) || !equalFoldOrEmpty(f.Key, p.MusicKey) {
		return false
	}
	if p.BPM != nil {
		if f.BPMMin != nil && *p.BPM < *f.BPMMin {
			return false
		}
		if f.BPMMax != nil && *p.BPM > *f.BPMMax {
			return false
		}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Genre, p.Mood} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// Apply 按条件过滤，保持原有顺序
func (f FilterState) Apply(products []Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			result = append(result, p)
		}
	}
	return result
}

func equalFoldOrEmpty(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}
