package service

import "time"

// Clock 为可见性判断提供当前时间，便于在测试中注入固定时刻。
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock returns a Clock backed by time.Now in UTC.
func SystemClock() Clock {
	return systemClock{}
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}

// FixedClock returns a Clock frozen at the given instant.
func FixedClock(at time.Time) Clock {
	return fixedClock{at: at}
}
