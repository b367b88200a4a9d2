package unionfind

// QuickFind (急切方式) 为每个元素直接记录其所属块的代表.
// Connected 为 O(1)，Union 需要扫描整个数组，为 O(n)。
type QuickFind struct {
	ids   []int
	count int
}

// NewQuickFind 创建包含 n 个单元素块的 QuickFind.
func NewQuickFind(n int) (*QuickFind, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	return &QuickFind{ids: identity(n), count: n}, nil
}

// Union 将所有代表等于 p 的代表的元素改写为 q 的代表.
func (uf *QuickFind) Union(p, q int) error {
	if err := checkIndex(len(uf.ids), p, q); err != nil {
		return err
	}

	// 先取出两个代表，扫描过程中 ids[p] 本身会被改写。
	pID := uf.ids[p]
	qID := uf.ids[q]
	if pID == qID {
		return nil
	}

	for i := range uf.ids {
		if uf.ids[i] == pID {
			uf.ids[i] = qID
		}
	}
	uf.count--
	return nil
}

// Connected 比较两个元素的代表.
func (uf *QuickFind) Connected(p, q int) (bool, error) {
	if err := checkIndex(len(uf.ids), p, q); err != nil {
		return false, err
	}
	return uf.ids[p] == uf.ids[q], nil
}

// Find 返回 p 记录的代表.
func (uf *QuickFind) Find(p int) (int, error) {
	if err := checkIndex(len(uf.ids), p); err != nil {
		return 0, err
	}
	return uf.ids[p], nil
}

func (uf *QuickFind) Count() int { return uf.count }

func (uf *QuickFind) Len() int { return len(uf.ids) }
