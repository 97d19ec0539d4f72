package screening

import "math/rand/v2"

const (
	DefaultMinCapacity = 10
	DefaultMaxCapacity = 100
)

// CapacitySource は上映作成時の座席数を決定する
type CapacitySource interface {
	Capacity() int
}

// RandomCapacity は [min, max] の範囲で座席数を乱数生成する
// シードを固定すれば同じ系列を再現できる。並行利用は呼び出し側で排他すること
type RandomCapacity struct {
	min int
	max int
	rng *rand.Rand
}

// NewRandomCapacity は新しい RandomCapacity を作成する
func NewRandomCapacity(min, max int, seed uint64) *RandomCapacity {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	return &RandomCapacity{
		min: min,
		max: max,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Capacity は次の座席数を返す
func (r *RandomCapacity) Capacity() int {
	return r.min + r.rng.IntN(r.max-r.min+1)
}

// FixedCapacity は常に同じ座席数を返す
type FixedCapacity int

// Capacity は固定の座席数を返す
func (f FixedCapacity) Capacity() int {
	return int(f)
}
