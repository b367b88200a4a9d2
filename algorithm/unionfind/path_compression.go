package unionfind

// PathCompressionUnion 在 QuickUnion 的基础上于每次找根时做隔代压缩，
// 合并时不看大小，而是把编号较小的根挂到编号较大的根下。
// 因此 Find 返回的代表是块内当前作为根的最大编号，跨合并并不稳定。
type PathCompressionUnion struct {
	forest
}

// NewPathCompressionUnion 创建包含 n 个单元素块的 PathCompressionUnion.
func NewPathCompressionUnion(n int) (*PathCompressionUnion, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &PathCompressionUnion{forest: f}, nil
}

// Union 把较小的根编号链接到较大的根编号下.
func (uf *PathCompressionUnion) Union(p, q int) error {
	if err := uf.check(p, q); err != nil {
		return err
	}
	pRoot, qRoot := uf.compressedRoot(p), uf.compressedRoot(q)
	if pRoot == qRoot {
		return nil
	}
	if pRoot > qRoot {
		pRoot, qRoot = qRoot, pRoot
	}
	uf.parent[pRoot] = qRoot
	uf.count--
	return nil
}

// Connected 比较压缩后的根；查询本身会改写父指针.
func (uf *PathCompressionUnion) Connected(p, q int) (bool, error) {
	if err := uf.check(p, q); err != nil {
		return false, err
	}
	return uf.compressedRoot(p) == uf.compressedRoot(q), nil
}

// Find 返回 p 的根，并压缩沿途路径.
func (uf *PathCompressionUnion) Find(p int) (int, error) {
	if err := uf.check(p); err != nil {
		return 0, err
	}
	return uf.compressedRoot(p), nil
}
