package successor

import (
	"time"

	"github.com/wyfcoding/unionfind/metrics"
)

type instrumentedSet struct {
	set  Set
	name string
	m    *metrics.Metrics
}

// Instrument 记录每次操作的次数、结果与耗时，Blocks 指标跟踪剩余元素个数.
func Instrument(set Set, name string, m *metrics.Metrics) Set {
	if m == nil {
		return set
	}
	m.SetBlocks(name, set.Remaining())
	return &instrumentedSet{set: set, name: name, m: m}
}

func (i *instrumentedSet) Successor(a int) (int, error) {
	start := time.Now()
	r, err := i.set.Successor(a)
	i.m.ObserveOp(i.name, "successor", start, err)
	return r, err
}

func (i *instrumentedSet) Remove(a int) error {
	start := time.Now()
	err := i.set.Remove(a)
	i.m.ObserveOp(i.name, "remove", start, err)
	if err == nil {
		i.m.SetBlocks(i.name, i.set.Remaining())
	}
	return err
}

func (i *instrumentedSet) Contains(a int) (bool, error) {
	start := time.Now()
	ok, err := i.set.Contains(a)
	i.m.ObserveOp(i.name, "contains", start, err)
	return ok, err
}

func (i *instrumentedSet) Len() int { return i.set.Len() }

func (i *instrumentedSet) Remaining() int { return i.set.Remaining() }
