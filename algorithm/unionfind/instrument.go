package unionfind

import (
	"time"

	"github.com/wyfcoding/unionfind/metrics"
)

type instrumentedUnionFind struct {
	uf   UnionFind
	name string
	m    *metrics.Metrics
}

// Instrument 为 uf 记录每次操作的次数、结果与耗时，并在合并后刷新块数量.
// name 作为指标的 structure 标签；需要并发访问时应在外层再套 Synchronized。
func Instrument(uf UnionFind, name string, m *metrics.Metrics) UnionFind {
	if m == nil {
		return uf
	}
	m.SetBlocks(name, uf.Count())
	return &instrumentedUnionFind{uf: uf, name: name, m: m}
}

func (i *instrumentedUnionFind) Union(p, q int) error {
	start := time.Now()
	err := i.uf.Union(p, q)
	i.m.ObserveOp(i.name, "union", start, err)
	if err == nil {
		i.m.SetBlocks(i.name, i.uf.Count())
	}
	return err
}

func (i *instrumentedUnionFind) Connected(p, q int) (bool, error) {
	start := time.Now()
	ok, err := i.uf.Connected(p, q)
	i.m.ObserveOp(i.name, "connected", start, err)
	return ok, err
}

func (i *instrumentedUnionFind) Find(p int) (int, error) {
	start := time.Now()
	r, err := i.uf.Find(p)
	i.m.ObserveOp(i.name, "find", start, err)
	return r, err
}

func (i *instrumentedUnionFind) Count() int { return i.uf.Count() }

func (i *instrumentedUnionFind) Len() int { return i.uf.Len() }
