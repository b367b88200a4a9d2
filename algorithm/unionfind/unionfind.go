// Package unionfind 提供一组基于整数元素 {0, ..., n-1} 的并查集（不相交集合）实现.
//
// 五种实现遵循同一契约 UnionFind，只在找根与合并策略上不同：
//
//	QuickFind               每个元素直接保存所属块的代表，合并 O(n)，查询 O(1)。
//	QuickUnion              父指针森林，合并只链接两个根，树高无界。
//	WeightedQuickUnion      按块大小合并，树高 O(log n)。
//	PathCompressionUnion    找根时隔代压缩，按根编号大小链接。
//	WeightedPathCompression 压缩找根 + 按大小合并，均摊近似 O(1)，推荐使用。
//
// 所有实现均非并发安全：找根会改写父指针，查询同样需要独占访问，
// 并发场景请使用 Synchronized 包装。
package unionfind

import (
	"log/slog"

	"github.com/wyfcoding/unionfind/xerrors"
)

// UnionFind 是所有并查集实现共享的契约.
// 元素 ID 必须位于 [0, Len())，越界时返回 xerrors.ErrIndexOutOfRange 且不修改任何状态.
type UnionFind interface {
	// Union 合并 p 与 q 所在的块，已在同一块时为空操作。
	Union(p, q int) error
	// Connected 判断 p 与 q 是否位于同一块。
	Connected(p, q int) (bool, error)
	// Find 返回 p 所在块的代表元素。
	Find(p int) (int, error)
	// Count 返回当前块的数量。
	Count() int
	// Len 返回全集规模 n。
	Len() int
}

// Sizer 由按大小合并的实现提供，返回 p 所在块的元素个数.
type Sizer interface {
	Size(p int) (int, error)
}

// Variant 标识一种并查集实现.
type Variant string

const (
	VariantQuickFind               Variant = "quick_find"
	VariantQuickUnion              Variant = "quick_union"
	VariantWeightedQuickUnion      Variant = "weighted_quick_union"
	VariantPathCompression         Variant = "path_compression"
	VariantWeightedPathCompression Variant = "weighted_path_compression"

	// DefaultVariant 是实际使用时应选择的实现。
	DefaultVariant = VariantWeightedPathCompression
)

// Variants 按从朴素到最优的顺序列出全部实现.
var Variants = []Variant{
	VariantQuickFind,
	VariantQuickUnion,
	VariantWeightedQuickUnion,
	VariantPathCompression,
	VariantWeightedPathCompression,
}

// ParseVariant 将配置中的名称解析为 Variant，空字符串返回 DefaultVariant.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return DefaultVariant, nil
	}
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", xerrors.ErrUnknownVariant.Derive().WithContext("variant", s)
}

// New 按 Variant 创建大小为 n 的并查集.
func New(v Variant, n int) (UnionFind, error) {
	var (
		uf  UnionFind
		err error
	)
	switch v {
	case VariantQuickFind:
		uf, err = NewQuickFind(n)
	case VariantQuickUnion:
		uf, err = NewQuickUnion(n)
	case VariantWeightedQuickUnion:
		uf, err = NewWeightedQuickUnion(n)
	case VariantPathCompression:
		uf, err = NewPathCompressionUnion(n)
	case VariantWeightedPathCompression:
		uf, err = NewWeightedPathCompression(n)
	default:
		return nil, xerrors.ErrUnknownVariant.Derive().WithContext("variant", string(v))
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("unionfind initialized", "variant", v, "size", n)
	return uf, nil
}

// checkIndex 校验元素 ID 位于 [0, n).
func checkIndex(n int, ids ...int) error {
	for _, id := range ids {
		if id < 0 || id >= n {
			return xerrors.OutOfRange(id, n)
		}
	}
	return nil
}

// checkSize 校验全集规模；n == 0 表示空全集，任何元素访问都会越界.
func checkSize(n int) error {
	if n < 0 {
		return xerrors.InvalidSize(n)
	}
	return nil
}

// identity 返回 [0, 1, ..., n-1].
func identity(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

// ones 返回长度为 n、元素全为 1 的切片.
func ones(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
