package geo

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// ParseLanguageHeader 解析Accept-Language请求头，返回按权重降序的语言标签。
// 规则：
//   - 条目形如 tag 或 tag;q=weight，缺省权重1.0，标签统一转小写
//   - 权重相同的按原始出现顺序排列
//   - 同一标签出现多次时只保留一条，权重取最后一次（沿用线上行为，不视为bug）
//   - 空串返回空列表
func ParseLanguageHeader(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	type entry struct {
		tag    string
		weight float64
	}

	index := make(map[string]int)
	entries := make([]entry, 0, 4)

	for _, part := range strings.Split(header, ",") {
		tag, q, hasQ := strings.Cut(strings.TrimSpace(part), ";q=")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}

		weight := 1.0
		if hasQ {
			// 无法解析的权重按0处理
			w, err := cast.ToFloat64E(strings.TrimSpace(q))
			if err == nil {
				weight = w
			} else {
				weight = 0
			}
		}

		if i, ok := index[tag]; ok {
			entries[i].weight = weight
			continue
		}
		index[tag] = len(entries)
		entries = append(entries, entry{tag: tag, weight: weight})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].weight > entries[j].weight
	})

	tags := make([]string, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	return tags
}
