package unionfind

// forest 是父指针森林，parent[i] == i 表示 i 为根.
// QuickUnion 系列实现都内嵌它，并在各自的方法里显式选择找根与链接策略。
type forest struct {
	parent []int
	count  int
}

func newForest(n int) (forest, error) {
	if err := checkSize(n); err != nil {
		return forest{}, err
	}
	return forest{parent: identity(n), count: n}, nil
}

func (f *forest) Count() int { return f.count }

func (f *forest) Len() int { return len(f.parent) }

func (f *forest) check(ids ...int) error {
	return checkIndex(len(f.parent), ids...)
}

// root 沿父指针走到不动点，不修改森林.
func (f *forest) root(p int) int {
	for p != f.parent[p] {
		p = f.parent[p]
	}
	return p
}

// compressedRoot 在走向根的过程中把每个经过节点的父指针改为其祖父（隔代压缩），
// 查询的副作用是让后续查询更短。
func (f *forest) compressedRoot(p int) int {
	for p != f.parent[p] {
		next := f.parent[p]
		f.parent[p] = f.parent[next]
		p = next
	}
	return p
}

// linkBySize 把较小的树挂到较大的树根下并累加大小；大小相等时 pRoot 挂到 qRoot 下.
// 调用方保证 pRoot != qRoot 且二者均为根。
func linkBySize(parent, size []int, pRoot, qRoot int) {
	if size[pRoot] > size[qRoot] {
		pRoot, qRoot = qRoot, pRoot
	}
	parent[pRoot] = qRoot
	size[qRoot] += size[pRoot]
}
