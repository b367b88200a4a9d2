package successor

import "sync"

// synchronizedSet 用互斥锁串行化所有调用，查询同样会压缩路径，因此不区分读写。
type synchronizedSet struct {
	mu  sync.Mutex
	set Set
}

// Synchronized 返回可被多个 goroutine 安全共享的包装.
func Synchronized(set Set) Set {
	return &synchronizedSet{set: set}
}

func (s *synchronizedSet) Successor(a int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Successor(a)
}

func (s *synchronizedSet) Remove(a int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Remove(a)
}

func (s *synchronizedSet) Contains(a int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Contains(a)
}

func (s *synchronizedSet) Len() int { return s.set.Len() }

func (s *synchronizedSet) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Remaining()
}
