package unionfind

// WeightedQuickUnion 在 QuickUnion 的基础上记录每棵树的大小，
// 合并时总是把较小的树挂到较大的树下，树高不超过 log2(n)，Union 与 Connected 为 O(log n)。
type WeightedQuickUnion struct {
	forest
	size []int // 仅在根上有意义：以该根为根的子树元素个数。
}

// NewWeightedQuickUnion 创建包含 n 个单元素块的 WeightedQuickUnion.
func NewWeightedQuickUnion(n int) (*WeightedQuickUnion, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &WeightedQuickUnion{forest: f, size: ones(n)}, nil
}

// Union 按大小合并，大小相等时 p 的根挂到 q 的根下.
func (uf *WeightedQuickUnion) Union(p, q int) error {
	if err := uf.check(p, q); err != nil {
		return err
	}
	pRoot, qRoot := uf.root(p), uf.root(q)
	if pRoot == qRoot {
		return nil
	}
	linkBySize(uf.parent, uf.size, pRoot, qRoot)
	uf.count--
	return nil
}

func (uf *WeightedQuickUnion) Connected(p, q int) (bool, error) {
	if err := uf.check(p, q); err != nil {
		return false, err
	}
	return uf.root(p) == uf.root(q), nil
}

func (uf *WeightedQuickUnion) Find(p int) (int, error) {
	if err := uf.check(p); err != nil {
		return 0, err
	}
	return uf.root(p), nil
}

// Size 返回 p 所在块的元素个数.
func (uf *WeightedQuickUnion) Size(p int) (int, error) {
	if err := uf.check(p); err != nil {
		return 0, err
	}
	return uf.size[uf.root(p)], nil
}
