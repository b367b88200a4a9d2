package unionfind

// WeightedPathCompression 组合了隔代压缩找根与按大小合并：
// 找根使用 compressedRoot，合并使用 linkBySize。
// 任意 m 次操作的总代价为 O(m α(n))，实际使用中可视为常数，是推荐的默认实现。
type WeightedPathCompression struct {
	forest
	size []int // 初始全为 1，仅在根上有意义。
}

// NewWeightedPathCompression 创建包含 n 个单元素块的 WeightedPathCompression.
func NewWeightedPathCompression(n int) (*WeightedPathCompression, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &WeightedPathCompression{forest: f, size: ones(n)}, nil
}

// Union 在压缩后的两个根之间按大小合并，大小相等时 p 的根挂到 q 的根下.
func (uf *WeightedPathCompression) Union(p, q int) error {
	if err := uf.check(p, q); err != nil {
		return err
	}
	pRoot, qRoot := uf.compressedRoot(p), uf.compressedRoot(q)
	if pRoot == qRoot {
		return nil
	}
	linkBySize(uf.parent, uf.size, pRoot, qRoot)
	uf.count--
	return nil
}

func (uf *WeightedPathCompression) Connected(p, q int) (bool, error) {
	if err := uf.check(p, q); err != nil {
		return false, err
	}
	return uf.compressedRoot(p) == uf.compressedRoot(q), nil
}

// Find 返回压缩后的根.
func (uf *WeightedPathCompression) Find(p int) (int, error) {
	if err := uf.check(p); err != nil {
		return 0, err
	}
	return uf.compressedRoot(p), nil
}

// Size 返回 p 所在块的元素个数.
func (uf *WeightedPathCompression) Size(p int) (int, error) {
	if err := uf.check(p); err != nil {
		return 0, err
	}
	return uf.size[uf.compressedRoot(p)], nil
}
