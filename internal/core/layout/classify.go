package layout

import (
	"regexp"
	"strings"

	"github.com/weisyn/slotlayout/pkg/types"
)

// 类型字符串末尾可能携带的数据位置限定词
var locationQualifiers = []string{
	" storage ref",
	" storage pointer",
	" memory",
	" calldata",
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Classify 将原始类型字符串映射为粗粒度分类
//
// 规则按顺序执行：含 '[' 即为数组；否则取第一个空格前的记号；
// 以 bytes 开头的记号把数字串替换为 X，其余记号删除数字串。
func Classify(typeString string) (types.Category, error) {
	s := strings.TrimSpace(typeString)
	if strings.Contains(s, "[") {
		return types.CategoryArray, nil
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}

	replacement := ""
	if strings.HasPrefix(s, "bytes") {
		replacement = "X"
	}
	category := types.Category(digitRun.ReplaceAllString(s, replacement))
	if !category.IsKnown() {
		return "", newError(KindUnrecognizedCategory, typeString, "normalized token "+string(category))
	}
	return category, nil
}

// trimQualifier 去掉末尾的数据位置限定词（最多一个）
func trimQualifier(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range locationQualifiers {
		if strings.HasSuffix(s, q) {
			return strings.TrimSpace(strings.TrimSuffix(s, q))
		}
	}
	return s
}

// leadingToken 取第一个空格前的记号
func leadingToken(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
