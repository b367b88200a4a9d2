package unionfind

import "sync"

// synchronizedUnionFind 用一把互斥锁串行化所有调用.
// 压缩找根会写父指针，因此 Find/Connected 也必须独占，不能使用读锁。
type synchronizedUnionFind struct {
	mu sync.Mutex
	uf UnionFind
}

// Synchronized 返回可被多个 goroutine 安全共享的包装.
func Synchronized(uf UnionFind) UnionFind {
	return &synchronizedUnionFind{uf: uf}
}

func (s *synchronizedUnionFind) Union(p, q int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uf.Union(p, q)
}

func (s *synchronizedUnionFind) Connected(p, q int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uf.Connected(p, q)
}

func (s *synchronizedUnionFind) Find(p int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uf.Find(p)
}

func (s *synchronizedUnionFind) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uf.Count()
}

// Len 不加锁：全集规模在构造后不再变化。
func (s *synchronizedUnionFind) Len() int {
	return s.uf.Len()
}
