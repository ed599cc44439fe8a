package service

import "Lee_Directory/internal/model"

// AccessDecision 访问码校验结果
type AccessDecision struct {
	Allow        bool
	RequiresCode bool
	// Supplied 调用方给了码但不对，仅用于界面提示
	Supplied bool
}

// EvaluateAccess 只用于成员列表的读取。
// 访问码是明文共享口令，按字节精确比较，不做限流。
func EvaluateAccess(c *model.Community, supplied string) AccessDecision {
	if c.AccessCode == nil {
		return AccessDecision{Allow: true}
	}
	if supplied != "" && supplied == *c.AccessCode {
		return AccessDecision{Allow: true}
	}
	return AccessDecision{RequiresCode: true, Supplied: supplied != ""}
}

// Err 拒绝时对应的错误，允许时为 nil
func (d AccessDecision) Err() error {
	switch {
	case d.Allow:
		return nil
	case d.Supplied:
		return ErrAccessCodeInvalid
	default:
		return ErrAccessCodeRequired
	}
}
