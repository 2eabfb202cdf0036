package service

import (
	"fmt"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"study-buddy/backend/internal/dto"
	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/validate"
)

// ── 字段校验规则 ──
//
// 创建与更新共用同一套规则，按以下顺序逐层校验，遇到第一个失败即返回：
//   1. 必填（仅创建）
//   2. 类型
//   3. 范围 / 格式（在清洗后的值上进行）
//   4. 跨字段（日期先后、课程表星期）
// 通过校验的字段以 bson.M 返回，更新时直接作为 $set 内容

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
	kindArray
)

// fieldRule 单个字段的规则
type fieldRule struct {
	key     string
	kind    valueKind
	typeMsg string
	// check 范围/格式校验，入参为清洗后的值
	check func(v any) error
	// store 写入前的类型转换（如评分转为整数）
	store func(v any) any
	// dropFalsy 创建时空字符串等无值输入视为未提供
	dropFalsy bool
	// dropEmpty 创建时先校验类型，仅空字符串视为未提供
	dropEmpty bool
}

// fieldSet 一个资源的完整规则
type fieldSet struct {
	rules       []fieldRule
	required    func(f dto.Fields) bool
	requiredMsg string
	cross       []func(values bson.M) error
}

// apply 按规则校验请求体，返回清洗后的字段集合
// creating 为 false 时跳过必填校验，所有字段均为可选
func (fs fieldSet) apply(f dto.Fields, creating bool, san *validate.Sanitizer) (bson.M, error) {
	if creating && fs.required != nil && !fs.required(f) {
		return nil, pkgerrors.Validation(fs.requiredMsg)
	}

	// 类型
	present := make([]fieldRule, 0, len(fs.rules))
	for _, r := range fs.rules {
		if !f.Has(r.key) {
			continue
		}
		if creating && r.dropFalsy && !f.Truthy(r.key) {
			continue
		}
		if !hasKind(f, r.key, r.kind) {
			return nil, pkgerrors.Validation(r.typeMsg)
		}
		if creating && r.dropEmpty {
			if s, _ := f.String(r.key); s == "" {
				continue
			}
		}
		present = append(present, r)
	}

	// 范围 / 格式
	values := bson.M{}
	for _, r := range present {
		v := f.Get(r.key)
		if s, ok := v.(string); ok {
			v = san.String(s)
		}
		if r.check != nil {
			if err := r.check(v); err != nil {
				return nil, err
			}
		}
		if r.store != nil {
			v = r.store(v)
		}
		values[r.key] = v
	}

	// 跨字段
	for _, check := range fs.cross {
		if err := check(values); err != nil {
			return nil, err
		}
	}

	return values, nil
}

func hasKind(f dto.Fields, key string, kind valueKind) bool {
	switch kind {
	case kindString:
		_, ok := f.String(key)
		return ok
	case kindNumber:
		_, ok := f.Number(key)
		return ok
	case kindArray:
		_, ok := f.Get(key).([]any)
		return ok
	default:
		return false
	}
}

// ── 规则构造 ──

// optionalString 可选字符串，仅校验类型
func optionalString(key string) fieldRule {
	return fieldRule{
		key:       key,
		kind:      kindString,
		typeMsg:   key + " must be a string",
		dropFalsy: true,
	}
}

// strictString 可选字符串，出现即校验类型（null 也不例外）
func strictString(key string) fieldRule {
	return fieldRule{
		key:       key,
		kind:      kindString,
		typeMsg:   key + " must be a string",
		dropEmpty: true,
	}
}

// lengthString 字符串长度（按字符计）须在 [min,max]
func lengthString(key string, min, max int) fieldRule {
	msg := fmt.Sprintf("%s must be between %d and %d characters", key, min, max)
	return fieldRule{
		key:     key,
		kind:    kindString,
		typeMsg: key + " must be a string",
		check: func(v any) error {
			n := utf8.RuneCountInString(v.(string))
			if n < min || n > max {
				return pkgerrors.Validation(msg)
			}
			return nil
		},
	}
}

// nonEmptyString 去除空白后不能为空
func nonEmptyString(key string) fieldRule {
	msg := key + " must be a non-empty string"
	return fieldRule{
		key:     key,
		kind:    kindString,
		typeMsg: msg,
		check: func(v any) error {
			if v.(string) == "" {
				return pkgerrors.Validation(msg)
			}
			return nil
		},
	}
}

// dateString YYYY-MM-DD 日期
func dateString(key string) fieldRule {
	msg := key + " must be a valid date in YYYY-MM-DD format"
	return fieldRule{
		key:     key,
		kind:    kindString,
		typeMsg: msg,
		check: func(v any) error {
			if !validate.IsValidDate(v.(string)) {
				return pkgerrors.Validation(msg)
			}
			return nil
		},
	}
}

// rating 1-5 的整数评分
func rating(key string) fieldRule {
	msg := key + " must be an integer between 1 and 5"
	return fieldRule{
		key:     key,
		kind:    kindNumber,
		typeMsg: msg,
		check: func(v any) error {
			if !validate.IsValidRating(v) {
				return pkgerrors.Validation(msg)
			}
			return nil
		},
		store: func(v any) any {
			n, _ := validate.ToNumber(v)
			return int(n)
		},
	}
}

// minutes 分钟数；positive 为 true 时须大于 0，否则须非负；不超过 max
func minutes(key string, positive bool, max float64, maxMsg string) fieldRule {
	signMsg := key + " must be a non-negative number (minutes)"
	if positive {
		signMsg = key + " must be a positive number (minutes)"
	}
	return fieldRule{
		key:     key,
		kind:    kindNumber,
		typeMsg: signMsg,
		check: func(v any) error {
			n, _ := validate.ToNumber(v)
			if positive && !validate.IsPositiveNumber(n) || !positive && n < 0 {
				return pkgerrors.Validation(signMsg)
			}
			if n > max {
				return pkgerrors.Validation(maxMsg)
			}
			return nil
		},
		store: func(v any) any {
			n, _ := validate.ToNumber(v)
			return n
		},
	}
}

// ownerID 可选的 userId 引用，不校验是否存在
func ownerID() fieldRule {
	return fieldRule{
		key:     "userId",
		kind:    kindString,
		typeMsg: "userId must be a string",
	}
}

// ── 值读取 ──

func stringValue(values bson.M, key string) string {
	s, _ := values[key].(string)
	return s
}

func optionalStringValue(values bson.M, key string) *string {
	s, ok := values[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optionalIntValue(values bson.M, key string) *int {
	n, ok := values[key].(int)
	if !ok {
		return nil
	}
	return &n
}

func optionalFloatValue(values bson.M, key string) *float64 {
	n, ok := values[key].(float64)
	if !ok {
		return nil
	}
	return &n
}

// parseObjectID 校验路径中的 ID，格式错误时返回 invalid
func parseObjectID(id string, invalid error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, invalid
	}
	return oid, nil
}
