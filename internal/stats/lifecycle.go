package stats

// Lifecycle is the coarse maturity classification of a card.
type Lifecycle string

// Lifecycle values
const (
	LifecycleNew    Lifecycle = "new"
	LifecycleYoung  Lifecycle = "young"
	LifecycleMature Lifecycle = "mature"
)

// Lifecycles lists every lifecycle in reporting order.
var Lifecycles = []Lifecycle{LifecycleNew, LifecycleYoung, LifecycleMature}

// Classify returns the lifecycle of a card. A card that was never reviewed is
// new whatever its interval; otherwise it is mature once its interval exceeds
// matureInterval days.
func Classify(reviewCount int64, interval, matureInterval float64) Lifecycle {
	switch {
	case reviewCount == 0:
		return LifecycleNew
	case interval > matureInterval:
		return LifecycleMature
	default:
		return LifecycleYoung
	}
}

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	return string(l)
}
