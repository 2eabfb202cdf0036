// Package validate 提供无副作用的字段校验器与字符串清洗
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// DateLayout 存储与传输使用的日期格式
const DateLayout = "2006-01-02"

// Weekdays 课程表允许的星期名称
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsValidEmail 邮箱形如 a@b.c
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidDate 格式为 YYYY-MM-DD 且是真实存在的日历日期
func IsValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsValidRating 1 到 5 之间的整数
func IsValidRating(v any) bool {
	n, ok := ToNumber(v)
	if !ok {
		return false
	}
	return n == float64(int64(n)) && n >= 1 && n <= 5
}

// IsPositiveNumber 数值且大于 0
func IsPositiveNumber(v any) bool {
	n, ok := ToNumber(v)
	return ok && n > 0
}

// IsNonEmptyArray 切片或数组且长度大于 0
func IsNonEmptyArray(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	default:
		return false
	}
}

// IsWeekday 是否为 Monday..Sunday 之一（大小写敏感）
func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if d == s {
			return true
		}
	}
	return false
}

// SanitizeString 字符串去除首尾空白，其他类型原样返回
func SanitizeString(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// ToNumber 将 JSON 解码得到的数值统一为 float64
// NaN 与 Inf 无法出现在 JSON 中，这里不做处理
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Sanitizer 字符串清洗器
// stripHTML 开启时先用 bluemonday StrictPolicy 去除全部标签，再去除首尾空白
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer 创建清洗器
func NewSanitizer(stripHTML bool) *Sanitizer {
	s := &Sanitizer{}
	if stripHTML {
		s.policy = bluemonday.StrictPolicy()
	}
	return s
}

// String 清洗字符串；nil 接收者仅去除首尾空白
func (s *Sanitizer) String(v string) string {
	if s != nil && s.policy != nil {
		v = s.policy.Sanitize(v)
	}
	return strings.TrimSpace(v)
}
