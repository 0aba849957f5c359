package service

import "time"

// Clock 时间源，便于测试中注入固定时间
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// SystemClock 系统时间源
func SystemClock() Clock {
	return realClock{}
}
