package cache

// Status tags the outcome of a single tier operation.
type Status int

const (
	// StatusHit means a read found the key.
	StatusHit Status = iota
	// StatusMiss means the tier was consulted and does not hold the key.
	StatusMiss
	// StatusOK means a write, delete or clear was applied.
	StatusOK
	// StatusUnavailable means the tier could not be reached and was skipped.
	StatusUnavailable
	// StatusFailed means the tier was reached but the operation failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusMiss:
		return "miss"
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what a tier reports back for one operation. Value is only set
// when Status is StatusHit; Err only for StatusFailed and StatusUnavailable.
type Result[V any] struct {
	Tier   string
	Status Status
	Value  V
	Err    error
}

func resultHit[V any](tier string, value V) Result[V] {
	return Result[V]{Tier: tier, Status: StatusHit, Value: value}
}

func resultMiss[V any](tier string) Result[V] {
	return Result[V]{Tier: tier, Status: StatusMiss}
}

func resultOK[V any](tier string) Result[V] {
	return Result[V]{Tier: tier, Status: StatusOK}
}

func resultUnavailable[V any](tier string, err error) Result[V] {
	return Result[V]{Tier: tier, Status: StatusUnavailable, Err: err}
}

func resultFailed[V any](tier string, err error) Result[V] {
	return Result[V]{Tier: tier, Status: StatusFailed, Err: err}
}

// payload carries a value to the tiers together with its encoding, computed
// once per Set. A non-nil encErr means the byte-oriented tiers must skip it.
type payload[V any] struct {
	value  V
	data   []byte
	encErr error
}

// tier is one storage layer of the cache.
type tier[V any] interface {
	name() string
	get(key string) Result[V]
	set(key string, p payload[V]) Result[V]
	delete(key string) Result[V]
	clear() Result[V]
}
