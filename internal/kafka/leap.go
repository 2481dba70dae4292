package kafka

import "time"

// LeapKind — вид плановой перемотки.
type LeapKind int

const (
	LeapNone LeapKind = iota
	LeapSmall
	LeapBig
)

func (k LeapKind) String() string {
	switch k {
	case LeapBig:
		return "big"
	case LeapSmall:
		return "small"
	default:
		return "none"
	}
}

const (
	DefaultBigLeap   int64 = 10_000
	DefaultSmallLeap int64 = 100
)

// LeapSchedule — предикаты времени и величины перемоток.
type LeapSchedule struct {
	IsBigLeap   func(now time.Time) bool
	IsSmallLeap func(now time.Time) bool
	BigLeap     int64
	SmallLeap   int64
}

// NewLeapSchedule — расписание по умолчанию.
// prod: большая перемотка раз в сутки в 05:00; иначе — каждый чётный час.
// Малая перемотка — в начале каждого часа. Нулевые величины заменяются значениями по умолчанию.
func NewLeapSchedule(isProd bool, bigLeap, smallLeap int64) LeapSchedule {
	if bigLeap <= 0 {
		bigLeap = DefaultBigLeap
	}
	if smallLeap <= 0 {
		smallLeap = DefaultSmallLeap
	}

	big := func(now time.Time) bool { return now.Hour()%2 == 0 && now.Minute() == 0 }
	if isProd {
		big = func(now time.Time) bool { return now.Hour() == 5 && now.Minute() == 0 }
	}

	return LeapSchedule{
		IsBigLeap:   big,
		IsSmallLeap: func(now time.Time) bool { return now.Minute() == 0 },
		BigLeap:     bigLeap,
		SmallLeap:   smallLeap,
	}
}

// Decide — какая перемотка положена в момент now. Большая важнее малой.
func (s LeapSchedule) Decide(now time.Time) (LeapKind, int64) {
	if s.IsBigLeap != nil && s.IsBigLeap(now) {
		return LeapBig, s.BigLeap
	}
	if s.IsSmallLeap != nil && s.IsSmallLeap(now) {
		return LeapSmall, s.SmallLeap
	}
	return LeapNone, 0
}
