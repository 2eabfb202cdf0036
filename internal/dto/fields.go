package dto

import "math"

// Fields 原始 JSON 请求体
// 资源的创建与更新需要区分“未提供”与“类型错误”，因此不绑定到固定结构体，
// 由各 Service 按字段规则逐项校验
type Fields map[string]any

// Has 字段是否出现在请求体中（值为 null 也算出现）
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Get 读取原始值
func (f Fields) Get(key string) any {
	return f[key]
}

// Truthy 按 JSON 客户端的惯例判断字段是否“有值”
// 缺失、null、false、0、空字符串均视为无值
func (f Fields) Truthy(key string) bool {
	v, ok := f[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	default:
		return true
	}
}

// String 字段存在且为字符串时返回其值
func (f Fields) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

// Number 字段存在且为数值时返回其值
func (f Fields) Number(key string) (float64, bool) {
	switch n := f[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
