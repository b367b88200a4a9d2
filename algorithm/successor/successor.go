// Package successor 提供支持删除的后继查询结构：在 {0, ..., n-1} 上删除元素，
// 并查询不小于 x 的最小剩余元素.
//
// 结构与并查集的压缩找根相同，只是把父指针换成"后继"指针：
// 被删除的元素指向更大的元素，查询沿指针走到不动点并隔代压缩路径。
package successor

import (
	"log/slog"

	"github.com/wyfcoding/unionfind/xerrors"
)

// Set 是后继删除结构的契约，便于叠加加锁与指标包装.
type Set interface {
	// Successor 返回不小于 a 的最小剩余元素。
	Successor(a int) (int, error)
	// Remove 永久删除 a。最大元素 n-1 不可删除。
	Remove(a int) error
	// Contains 判断 a 是否仍然存在。
	Contains(a int) (bool, error)
	// Len 返回全集规模 n。
	Len() int
	// Remaining 返回尚未删除的元素个数。
	Remaining() int
}

// SuccessorWithDelete 在 next 数组上维护删除链.
// next[i] == i 表示 i 仍然存在；否则沿 next 前进最终到达不小于 i 的最小剩余元素。
// 非并发安全：Successor 会改写 next，多 goroutine 共享时请使用 Synchronized。
type SuccessorWithDelete struct {
	next      []int
	remaining int
}

// New 创建全部元素都存在的后继结构，n <= 0 时返回配置错误.
func New(n int) (*SuccessorWithDelete, error) {
	if n <= 0 {
		slog.Error("successor initialization failed: size must be positive", "size", n)
		return nil, xerrors.InvalidSize(n)
	}

	next := make([]int, n)
	for i := range next {
		next[i] = i
	}
	slog.Debug("successor initialized", "size", n)
	return &SuccessorWithDelete{next: next, remaining: n}, nil
}

func (s *SuccessorWithDelete) check(a int) error {
	if a < 0 || a >= len(s.next) {
		return xerrors.OutOfRange(a, len(s.next))
	}
	return nil
}

// find 沿后继链走到不动点，并把沿途每个节点改为指向其后继的后继.
func (s *SuccessorWithDelete) find(a int) int {
	for a != s.next[a] {
		nxt := s.next[a]
		s.next[a] = s.next[nxt]
		a = nxt
	}
	return a
}

// Successor 返回不小于 a 的最小剩余元素.
// 由于 n-1 永远不会被删除，合法的 a 总能得到结果。
func (s *SuccessorWithDelete) Successor(a int) (int, error) {
	if err := s.check(a); err != nil {
		return 0, err
	}
	return s.find(a), nil
}

// Remove 删除 a：把 a 的后继指向 Successor(a+1).
// a == n-1 时 a+1 越界，返回越界错误且不做任何修改，即最大元素不可删除。
// 对已删除的元素再次调用是安全的。
func (s *SuccessorWithDelete) Remove(a int) error {
	if err := s.check(a); err != nil {
		return err
	}
	if err := s.check(a + 1); err != nil {
		return xerrors.OutOfRange(a+1, len(s.next)).
			WithDetail("element %d is the largest id and cannot be removed", a).
			WithContext("removed", a)
	}

	present := s.find(a) == a
	s.next[a] = s.find(a + 1)
	if present {
		s.remaining--
	}
	return nil
}

// Contains 判断 a 是否仍然存在.
func (s *SuccessorWithDelete) Contains(a int) (bool, error) {
	if err := s.check(a); err != nil {
		return false, err
	}
	return s.find(a) == a, nil
}

func (s *SuccessorWithDelete) Len() int { return len(s.next) }

func (s *SuccessorWithDelete) Remaining() int { return s.remaining }
