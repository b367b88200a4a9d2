package unionfind

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/unionfind/xerrors"
)

// ctxCheckInterval 控制重放时检查 ctx 的频率。
const ctxCheckInterval = 1024

// Op 描述一次 Union(P, Q) 调用.
type Op struct {
	P, Q int
}

// Apply 依次重放 ops，遇到第一个错误即停止并返回带操作序号的错误.
// 已经成功的合并不会回滚。
func Apply(uf UnionFind, ops []Op) error {
	for i, op := range ops {
		if err := uf.Union(op.P, op.Q); err != nil {
			return xerrors.Wrap(err, xerrors.ErrInvalidArg, fmt.Sprintf("replay op %d", i)).
				WithContext("op", i)
		}
	}
	return nil
}

// Components 返回 uf 诱导的划分：每个块内元素升序，块按最小元素升序排列.
// 该形式与实现无关，可直接比较不同实现的结果。
func Components(uf UnionFind) ([][]int, error) {
	index := make(map[int]int, uf.Count())
	blocks := make([][]int, 0, uf.Count())
	for i := 0; i < uf.Len(); i++ {
		r, err := uf.Find(i)
		if err != nil {
			return nil, err
		}
		b, ok := index[r]
		if !ok {
			b = len(blocks)
			index[r] = b
			blocks = append(blocks, nil)
		}
		blocks[b] = append(blocks[b], i)
	}
	return blocks, nil
}

// CheckEquivalence 在每种实现的独立实例上并发重放同一组 ops，
// 比较各自诱导的划分，全部一致时返回该划分.
// variants 为空时检查全部实现。
func CheckEquivalence(ctx context.Context, n int, ops []Op, variants ...Variant) ([][]int, error) {
	if len(variants) == 0 {
		variants = Variants
	}

	results := make([][][]int, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, v := range variants {
		g.Go(func() error {
			uf, err := New(v, n)
			if err != nil {
				return err
			}
			for j, op := range ops {
				if j%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if err := uf.Union(op.P, op.Q); err != nil {
					return xerrors.Wrap(err, xerrors.ErrInvalidArg, fmt.Sprintf("replay op %d on %s", j, v)).
						WithContext("op", j).
						WithContext("variant", string(v))
				}
			}
			blocks, err := Components(uf)
			if err != nil {
				return err
			}
			results[i] = blocks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Warn("cross-variant replay aborted", "size", n, "ops", len(ops), "error", err)
		return nil, err
	}

	for i := 1; i < len(results); i++ {
		if !slices.EqualFunc(results[0], results[i], slices.Equal[[]int]) {
			slog.Warn("variants disagree on partition",
				"baseline", variants[0], "variant", variants[i], "size", n, "ops", len(ops))
			return nil, xerrors.ErrPartitionMismatch.Derive().
				WithDetail("%s and %s induce different partitions", variants[0], variants[i]).
				WithContext("baseline", string(variants[0])).
				WithContext("variant", string(variants[i]))
		}
	}
	return results[0], nil
}
