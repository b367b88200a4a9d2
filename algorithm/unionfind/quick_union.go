package unionfind

// QuickUnion (惰性方式) 用父指针森林表示块，合并时无条件把 p 的根挂到 q 的根下.
// 不做任何平衡，最坏情况下树退化为链，找根为 O(n)。
type QuickUnion struct {
	forest
}

// NewQuickUnion 创建包含 n 个单元素块的 QuickUnion.
func NewQuickUnion(n int) (*QuickUnion, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &QuickUnion{forest: f}, nil
}

// Union 将 root(p) 挂到 root(q) 下.
func (uf *QuickUnion) Union(p, q int) error {
	if err := uf.check(p, q); err != nil {
		return err
	}
	pRoot, qRoot := uf.root(p), uf.root(q)
	if pRoot == qRoot {
		return nil
	}
	uf.parent[pRoot] = qRoot
	uf.count--
	return nil
}

// Connected 比较两个元素的根.
func (uf *QuickUnion) Connected(p, q int) (bool, error) {
	if err := uf.check(p, q); err != nil {
		return false, err
	}
	return uf.root(p) == uf.root(q), nil
}

// Find 返回 p 的根.
func (uf *QuickUnion) Find(p int) (int, error) {
	if err := uf.check(p); err != nil {
		return 0, err
	}
	return uf.root(p), nil
}
