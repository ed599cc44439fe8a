package pkg

import (
	"encoding/json"
	"strings"
)

// Patch 三态字段：未出现 / 显式 null / 有值，用于 PATCH 请求体
type Patch[T any] struct {
	Set   bool
	Value *T
}

func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// Some 构造一个有值的 Patch，便于调用方和测试
func Some[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: &v}
}

// Null 构造一个显式清空的 Patch
func Null[T any]() Patch[T] {
	return Patch[T]{Set: true}
}

// TrimOrNil 去首尾空白，空串视为 nil
func TrimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
