package geo

import (
	"reflect"
	"testing"
)

func TestParseLanguageHeader(t *testing.T) {
	cases := []struct {
		header string
		want   []string
	}{
		{"es-ES;q=0.8,en;q=0.9", []string{"en", "es-es"}},
		{"es-ES,es;q=0.9,ca;q=0.8", []string{"es-es", "es", "ca"}},
		// 权重相同保持原始顺序
		{"ca,gl,eu", []string{"ca", "gl", "eu"}},
		{"EN-us;q=0.5", []string{"en-us"}},
		{"", nil},
		{"   ", nil},
		// 权重不可解析按0处理
		{"es;q=abc,en;q=0.1", []string{"en", "es"}},
	}
	for _, c := range cases {
		got := ParseLanguageHeader(c.header)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseLanguageHeader(%q) = %v, want %v", c.header, got, c.want)
		}
	}
}

func TestParseLanguageHeaderDuplicateTag(t *testing.T) {
	// 同一标签出现两次：只保留一条，权重取最后一次
	got := ParseLanguageHeader("en;q=0.9,es;q=0.5,en;q=0.1")
	want := []string{"es", "en"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLanguageHeader duplicate = %v, want %v", got, want)
	}
}
