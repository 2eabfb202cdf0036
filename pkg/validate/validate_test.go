package validate

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"ada.lovelace@example.org", true},
		{"no-at-sign.com", false},
		{"a@b", false},
		{"a b@c.de", false},
		{"@b.co", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.in); got != tt.want {
			t.Errorf("IsValidEmail(%q)=%v，期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2025-01-15", true},
		{"2024-02-29", true},
		{"2025-02-29", false}, // 非闰年
		{"2025-13-01", false},
		{"2025-1-15", false},
		{"2025-01-15T00:00:00Z", false},
		{"15-01-2025", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidDate(tt.in); got != tt.want {
			t.Errorf("IsValidDate(%q)=%v，期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidRating(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{float64(1), true},
		{float64(5), true},
		{3, true},
		{float64(0), false},
		{float64(6), false},
		{2.5, false},
		{"3", false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsValidRating(tt.in); got != tt.want {
			t.Errorf("IsValidRating(%v)=%v，期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestIsPositiveNumber(t *testing.T) {
	if !IsPositiveNumber(0.5) || !IsPositiveNumber(90) {
		t.Error("正数应通过")
	}
	if IsPositiveNumber(float64(0)) || IsPositiveNumber(-1.0) || IsPositiveNumber("10") || IsPositiveNumber(true) {
		t.Error("零、负数与非数值不应通过")
	}
}

func TestIsNonEmptyArray(t *testing.T) {
	if !IsNonEmptyArray([]any{"Monday"}) || !IsNonEmptyArray([1]int{1}) {
		t.Error("非空切片/数组应通过")
	}
	if IsNonEmptyArray([]any{}) || IsNonEmptyArray(nil) || IsNonEmptyArray("Monday") || IsNonEmptyArray(map[string]any{"a": 1}) {
		t.Error("空切片、nil、字符串与 map 不应通过")
	}
}

func TestIsWeekday(t *testing.T) {
	if !IsWeekday("Monday") || !IsWeekday("Sunday") {
		t.Error("合法星期应通过")
	}
	if IsWeekday("monday") || IsWeekday("Funday") {
		t.Error("大小写错误或非法名称不应通过")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  Linked list  "); got != "Linked list" {
		t.Errorf("期望去除首尾空白，实际 %q", got)
	}
	if got := SanitizeString(42.0); got != 42.0 {
		t.Errorf("非字符串应原样返回，实际 %v", got)
	}
}

func TestSanitizer(t *testing.T) {
	var nilSan *Sanitizer
	if got := nilSan.String("  <b>Algebra</b> "); got != "<b>Algebra</b>" {
		t.Errorf("nil 清洗器仅去空白，实际 %q", got)
	}

	if got := NewSanitizer(false).String(" <i>x</i> "); got != "<i>x</i>" {
		t.Errorf("未开启 strip_html 时不应修改标签，实际 %q", got)
	}

	if got := NewSanitizer(true).String("  <script>alert(1)</script><b>Algebra</b> "); got != "Algebra" {
		t.Errorf("开启 strip_html 后应去除标签，实际 %q", got)
	}
}
