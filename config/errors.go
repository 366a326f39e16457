package config

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 配置错误类别
type Kind string

const (
	// KindInvalidValue 环境变量字符串无法转换为目标类型
	KindInvalidValue Kind = "invalid-value"
	// KindOutOfRange 转换成功但违反取值约束
	KindOutOfRange Kind = "out-of-range"
)

var (
	ErrInvalidValue = errors.New(string(KindInvalidValue))
	ErrOutOfRange   = errors.New(string(KindOutOfRange))
)

// ConfigurationError 描述单个字段的加载或校验失败
type ConfigurationError struct {
	Kind       Kind
	Key        string // 环境变量名，例如 INITIAL_CAPITAL
	Field      string // Go 字段名
	Value      string // 原始值
	Constraint string
	Err        error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s=%q is %s: %s", e.Key, e.Value, e.Kind, e.Constraint)
	if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrInvalidValue / ErrOutOfRange) 生效
func (e *ConfigurationError) Is(target error) bool {
	switch target {
	case ErrInvalidValue:
		return e.Kind == KindInvalidValue
	case ErrOutOfRange:
		return e.Kind == KindOutOfRange
	}
	return false
}
