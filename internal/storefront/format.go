package storefront

import (
	"fmt"
	"math"
)

// FormatTime 将秒数渲染为 m:ss，非法输入返回 0:00
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "0:00"
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
