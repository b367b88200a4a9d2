package unionfind

import (
	"context"
	"errors"
	"math/bits"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wyfcoding/unionfind/metrics"
	"github.com/wyfcoding/unionfind/xerrors"
)

func mustNew(t *testing.T, v Variant, n int) UnionFind {
	t.Helper()
	uf, err := New(v, n)
	if err != nil {
		t.Fatalf("New(%s, %d) failed: %v", v, n, err)
	}
	return uf
}

func mustUnion(t *testing.T, uf UnionFind, p, q int) {
	t.Helper()
	if err := uf.Union(p, q); err != nil {
		t.Fatalf("Union(%d, %d) failed: %v", p, q, err)
	}
}

func mustConnected(t *testing.T, uf UnionFind, p, q int) bool {
	t.Helper()
	ok, err := uf.Connected(p, q)
	if err != nil {
		t.Fatalf("Connected(%d, %d) failed: %v", p, q, err)
	}
	return ok
}

// randomOps 生成可复现的合并序列。
func randomOps(seed uint64, n, m int) []Op {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ops := make([]Op, m)
	for i := range ops {
		ops[i] = Op{P: r.IntN(n), Q: r.IntN(n)}
	}
	return ops
}

// referenceLabels 用最直接的重标记方式计算划分，作为对照。
func referenceLabels(n int, ops []Op) []int {
	label := identity(n)
	for _, op := range ops {
		from, to := label[op.P], label[op.Q]
		if from == to {
			continue
		}
		for i := range label {
			if label[i] == from {
				label[i] = to
			}
		}
	}
	return label
}

func TestVariantsConnected(t *testing.T) {
	for _, v := range Variants {
		uf := mustNew(t, v, 10)

		mustUnion(t, uf, 4, 3)
		mustUnion(t, uf, 3, 8)
		mustUnion(t, uf, 6, 5)
		mustUnion(t, uf, 9, 4)
		mustUnion(t, uf, 2, 1)

		testCases := []struct {
			p, q     int
			expected bool
		}{
			{0, 0, true},
			{4, 3, true},
			{3, 4, true},
			{8, 9, true},
			{5, 6, true},
			{0, 7, false},
			{3, 1, false},
			{6, 9, false},
		}
		for _, tc := range testCases {
			result := mustConnected(t, uf, tc.p, tc.q)
			if result != tc.expected {
				t.Errorf("%s: connected(%d, %d) = %t; expected = %t", v, tc.p, tc.q, result, tc.expected)
			}
		}
		if uf.Count() != 5 {
			t.Errorf("%s: Count() = %d; expected = 5", v, uf.Count())
		}
	}
}

func TestSingletonsAfterConstruction(t *testing.T) {
	const n = 8
	for _, v := range Variants {
		uf := mustNew(t, v, n)
		if uf.Len() != n || uf.Count() != n {
			t.Errorf("%s: Len() = %d, Count() = %d; expected %d blocks", v, uf.Len(), uf.Count(), n)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if got := mustConnected(t, uf, i, j); got != (i == j) {
					t.Errorf("%s: connected(%d, %d) = %t", v, i, j, got)
				}
			}
			if r, err := uf.Find(i); err != nil || r != i {
				t.Errorf("%s: Find(%d) = %d, %v; expected own id", v, i, r, err)
			}
		}
	}
}

func TestEndToEnd(t *testing.T) {
	for _, v := range Variants {
		uf := mustNew(t, v, 5)
		mustUnion(t, uf, 0, 1)
		mustUnion(t, uf, 2, 3)

		if !mustConnected(t, uf, 0, 1) {
			t.Errorf("%s: expected 0-1 connected", v)
		}
		if mustConnected(t, uf, 0, 2) {
			t.Errorf("%s: expected 0-2 disconnected", v)
		}
		mustUnion(t, uf, 1, 2)
		if !mustConnected(t, uf, 0, 3) {
			t.Errorf("%s: expected 0-3 connected", v)
		}
		if mustConnected(t, uf, 4, 0) {
			t.Errorf("%s: expected 4-0 disconnected", v)
		}
		if uf.Count() != 2 {
			t.Errorf("%s: Count() = %d; expected = 2", v, uf.Count())
		}
	}
}

func TestCountOnlyDropsOnMerge(t *testing.T) {
	const n = 40
	ops := randomOps(7, n, 120)
	for _, v := range Variants {
		uf := mustNew(t, v, n)
		merged := 0
		for _, op := range ops {
			before := mustConnected(t, uf, op.P, op.Q)
			mustUnion(t, uf, op.P, op.Q)
			if !before {
				merged++
			}
			// 重复合并不改变任何可观察状态。
			mustUnion(t, uf, op.Q, op.P)
			if uf.Count() != n-merged {
				t.Fatalf("%s: Count() = %d; expected = %d", v, uf.Count(), n-merged)
			}
		}
	}
}

func TestMatchesReferencePartition(t *testing.T) {
	const n = 30
	ops := randomOps(42, n, 45)
	label := referenceLabels(n, ops)

	for _, v := range Variants {
		uf := mustNew(t, v, n)
		if err := Apply(uf, ops); err != nil {
			t.Fatalf("%s: Apply failed: %v", v, err)
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				ab := mustConnected(t, uf, a, b)
				if ab != (label[a] == label[b]) {
					t.Fatalf("%s: connected(%d, %d) = %t disagrees with reference", v, a, b, ab)
				}
				if ab != mustConnected(t, uf, b, a) {
					t.Fatalf("%s: connected is not symmetric for (%d, %d)", v, a, b)
				}
				for c := 0; c < n; c++ {
					if ab && mustConnected(t, uf, b, c) && !mustConnected(t, uf, a, c) {
						t.Fatalf("%s: connected is not transitive for (%d, %d, %d)", v, a, b, c)
					}
				}
			}
		}
	}
}

func TestCheckEquivalence(t *testing.T) {
	const n = 200
	ops := randomOps(2024, n, 150)

	blocks, err := CheckEquivalence(context.Background(), n, ops)
	if err != nil {
		t.Fatalf("CheckEquivalence failed: %v", err)
	}

	label := referenceLabels(n, ops)
	total := 0
	for _, block := range blocks {
		if !slices.IsSorted(block) {
			t.Errorf("block not sorted: %v", block)
		}
		for _, id := range block {
			if label[id] != label[block[0]] {
				t.Errorf("element %d grouped with %d but reference disagrees", id, block[0])
			}
		}
		total += len(block)
	}
	if total != n {
		t.Errorf("partition covers %d elements; expected = %d", total, n)
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1][0] >= blocks[i][0] {
			t.Errorf("blocks not ordered by smallest member")
		}
	}
}

func TestCheckEquivalenceErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckEquivalence(ctx, 10, randomOps(1, 10, 5)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	_, err := CheckEquivalence(context.Background(), 10, []Op{{0, 1}, {2, 10}}, VariantQuickFind, VariantWeightedPathCompression)
	if !errors.Is(err, xerrors.ErrIndexOutOfRange) {
		t.Errorf("expected out-of-range error, got %v", err)
	}

	if _, err := CheckEquivalence(context.Background(), 10, nil, Variant("bogus")); !errors.Is(err, xerrors.ErrUnknownVariant) {
		t.Errorf("expected unknown variant error, got %v", err)
	}
}

func TestOutOfRangeLeavesStateUnchanged(t *testing.T) {
	const n = 6
	for _, v := range Variants {
		uf := mustNew(t, v, n)
		mustUnion(t, uf, 0, 1)
		mustUnion(t, uf, 2, 3)
		before, err := Components(uf)
		if err != nil {
			t.Fatalf("%s: Components failed: %v", v, err)
		}

		if err := uf.Union(-1, 0); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
			t.Errorf("%s: Union(-1, 0) error = %v", v, err)
		}
		if err := uf.Union(0, n); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
			t.Errorf("%s: Union(0, n) error = %v", v, err)
		}
		if _, err := uf.Connected(n, 0); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
			t.Errorf("%s: Connected(n, 0) error = %v", v, err)
		}
		if _, err := uf.Find(-3); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
			t.Errorf("%s: Find(-3) error = %v", v, err)
		}

		after, err := Components(uf)
		if err != nil {
			t.Fatalf("%s: Components failed: %v", v, err)
		}
		if !slices.EqualFunc(before, after, slices.Equal[[]int]) || uf.Count() != n-2 {
			t.Errorf("%s: failed calls changed the partition: %v -> %v", v, before, after)
		}
	}
}

func TestConstructorErrors(t *testing.T) {
	for _, v := range Variants {
		if _, err := New(v, -1); !errors.Is(err, xerrors.ErrInvalidSize) {
			t.Errorf("%s: New(-1) error = %v", v, err)
		}
		uf := mustNew(t, v, 0)
		if uf.Count() != 0 {
			t.Errorf("%s: empty universe Count() = %d", v, uf.Count())
		}
		if _, err := uf.Find(0); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
			t.Errorf("%s: Find on empty universe error = %v", v, err)
		}
	}
	if _, err := New("quick_sort", 3); !errors.Is(err, xerrors.ErrUnknownVariant) {
		t.Errorf("expected unknown variant, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	testCases := []struct {
		in       string
		expected Variant
		ok       bool
	}{
		{"", DefaultVariant, true},
		{"quick_find", VariantQuickFind, true},
		{"weighted_path_compression", VariantWeightedPathCompression, true},
		{"path_compression", VariantPathCompression, true},
		{"weighted", "", false},
	}
	for _, tc := range testCases {
		v, err := ParseVariant(tc.in)
		if (err == nil) != tc.ok || v != tc.expected {
			t.Errorf("ParseVariant(%q) = %q, %v", tc.in, v, err)
		}
	}
}

func TestLinkDirection(t *testing.T) {
	qf, _ := NewQuickFind(4)
	_ = qf.Union(0, 1)
	if qf.ids[0] != 1 {
		t.Errorf("QuickFind: p's block should take q's id, ids = %v", qf.ids)
	}
	_ = qf.Union(1, 1)
	if qf.Count() != 3 {
		t.Errorf("QuickFind: Union(p, p) changed Count to %d", qf.Count())
	}

	qu, _ := NewQuickUnion(4)
	_ = qu.Union(0, 1)
	if qu.parent[0] != 1 {
		t.Errorf("QuickUnion: root(p) should link under root(q), parent = %v", qu.parent)
	}

	wqu, _ := NewWeightedQuickUnion(4)
	_ = wqu.Union(0, 1) // 大小相等：0 挂到 1 下
	_ = wqu.Union(1, 2) // 大小 2 对 1：2 挂到 1 下
	if wqu.parent[0] != 1 || wqu.parent[2] != 1 || wqu.size[1] != 3 {
		t.Errorf("WeightedQuickUnion: parent = %v, size = %v", wqu.parent, wqu.size)
	}

	pc, _ := NewPathCompressionUnion(6)
	_ = pc.Union(5, 2)
	_ = pc.Union(2, 0)
	if r, _ := pc.Find(0); r != 5 {
		t.Errorf("PathCompressionUnion: Find(0) = %d; expected largest root 5", r)
	}

	wpc, _ := NewWeightedPathCompression(4)
	_ = wpc.Union(3, 2)
	if wpc.parent[3] != 2 || wpc.size[2] != 2 {
		t.Errorf("WeightedPathCompression: parent = %v, size = %v", wpc.parent, wpc.size)
	}
}

// depth 不改写父指针地计算节点深度。
func depth(f *forest, p int) int {
	d := 0
	for p != f.parent[p] {
		p = f.parent[p]
		d++
	}
	return d
}

func TestPathCompressionFlattens(t *testing.T) {
	const n = 64
	uf, _ := NewPathCompressionUnion(n)
	// 按编号递增合并得到一条链 0 -> 1 -> ... -> n-1。
	for i := 0; i+1 < n; i++ {
		uf.parent[i] = i + 1
	}
	uf.count = 1

	prev := depth(&uf.forest, 0)
	if prev != n-1 {
		t.Fatalf("chain depth = %d; expected = %d", prev, n-1)
	}
	for step := 0; prev > 1; step++ {
		if r, _ := uf.Find(0); r != n-1 {
			t.Fatalf("Find(0) = %d; expected = %d", r, n-1)
		}
		d := depth(&uf.forest, 0)
		if d >= prev {
			t.Fatalf("step %d: depth did not shrink (%d -> %d)", step, prev, d)
		}
		prev = d
	}
}

func TestWeightedInvariants(t *testing.T) {
	const n = 512
	ops := randomOps(99, n, 700)
	maxHeight := bits.Len(uint(n)) - 1 // floor(log2 n)

	wqu, _ := NewWeightedQuickUnion(n)
	wpc, _ := NewWeightedPathCompression(n)
	for _, op := range ops {
		_ = wqu.Union(op.P, op.Q)
		_ = wpc.Union(op.P, op.Q)
	}

	checks := []struct {
		name string
		f    *forest
		size []int
		uf   interface {
			UnionFind
			Sizer
		}
	}{
		{"weighted_quick_union", &wqu.forest, wqu.size, wqu},
		{"weighted_path_compression", &wpc.forest, wpc.size, wpc},
	}
	for _, c := range checks {
		members := make(map[int]int)
		sum := 0
		for i := 0; i < n; i++ {
			if c.f.parent[i] == i {
				sum += c.size[i]
			}
			if d := depth(c.f, i); d > maxHeight {
				t.Errorf("%s: depth(%d) = %d exceeds log2(n) = %d", c.name, i, d, maxHeight)
			}
		}
		if sum != n {
			t.Errorf("%s: sum of root sizes = %d; expected = %d", c.name, sum, n)
		}
		for i := 0; i < n; i++ {
			r, _ := c.uf.Find(i)
			members[r]++
		}
		for i := 0; i < n; i++ {
			r, _ := c.uf.Find(i)
			if s, _ := c.uf.Size(i); s != members[r] {
				t.Errorf("%s: Size(%d) = %d; expected = %d", c.name, i, s, members[r])
			}
		}
		if _, err := c.uf.Size(n); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
			t.Errorf("%s: Size(n) error = %v", c.name, err)
		}
	}
}

func TestSizeAccumulatesOnUnion(t *testing.T) {
	uf, _ := NewWeightedPathCompression(10)
	blocks := [][2]int{{0, 1}, {2, 3}, {1, 3}, {4, 5}, {5, 0}}
	for _, b := range blocks {
		sp, _ := uf.Size(b[0])
		sq, _ := uf.Size(b[1])
		same, _ := uf.Connected(b[0], b[1])
		_ = uf.Union(b[0], b[1])
		got, _ := uf.Size(b[0])
		expected := sp + sq
		if same {
			expected = sp
		}
		if got != expected {
			t.Errorf("after Union(%d, %d): size = %d; expected = %d", b[0], b[1], got, expected)
		}
	}
}

func TestSynchronizedConcurrentUnions(t *testing.T) {
	const n = 1000
	const workers = 8
	base, _ := NewWeightedPathCompression(n)
	uf := Synchronized(base)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := w; i+1 < n; i += workers {
				if err := uf.Union(i, i+1); err != nil {
					t.Errorf("Union(%d, %d) failed: %v", i, i+1, err)
					return
				}
				if _, err := uf.Find(i); err != nil {
					t.Errorf("Find(%d) failed: %v", i, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if uf.Count() != 1 {
		t.Errorf("Count() = %d; expected = 1", uf.Count())
	}
	if !mustConnected(t, uf, 0, n-1) || uf.Len() != n {
		t.Errorf("expected a single block spanning the universe")
	}
}

func TestInstrument(t *testing.T) {
	m := metrics.NewMetrics("unionfind-test")
	base, _ := NewQuickUnion(4)
	uf := Instrument(base, "qu", m)

	if got := testutil.ToFloat64(m.Blocks.WithLabelValues("qu")); got != 4 {
		t.Errorf("initial blocks = %v; expected = 4", got)
	}
	mustUnion(t, uf, 0, 1)
	_ = uf.Union(0, 9)
	_, _ = uf.Connected(0, 1)
	_, _ = uf.Find(2)

	testCases := []struct {
		op, outcome string
		expected    float64
	}{
		{"union", metrics.OutcomeOK, 1},
		{"union", metrics.OutcomeError, 1},
		{"connected", metrics.OutcomeOK, 1},
		{"find", metrics.OutcomeOK, 1},
	}
	for _, tc := range testCases {
		if got := testutil.ToFloat64(m.OpsTotal.WithLabelValues("qu", tc.op, tc.outcome)); got != tc.expected {
			t.Errorf("%s/%s = %v; expected = %v", tc.op, tc.outcome, got, tc.expected)
		}
	}
	if got := testutil.ToFloat64(m.Blocks.WithLabelValues("qu")); got != 3 {
		t.Errorf("blocks after union = %v; expected = 3", got)
	}
	if uf.Count() != 3 || uf.Len() != 4 {
		t.Errorf("decorator must forward Count/Len")
	}
	if Instrument(base, "qu", nil) != UnionFind(base) {
		t.Errorf("nil metrics should return the structure unchanged")
	}
}

func TestApplyReportsFailingOp(t *testing.T) {
	uf, _ := NewQuickFind(3)
	err := Apply(uf, []Op{{0, 1}, {1, 5}, {1, 2}})
	var e *xerrors.Error
	if !errors.As(err, &e) || !errors.Is(err, xerrors.ErrIndexOutOfRange) {
		t.Fatalf("expected out-of-range *xerrors.Error, got %v", err)
	}
	if e.Context["op"] != 1 {
		t.Errorf("op index = %v; expected = 1", e.Context["op"])
	}
	if uf.Count() != 2 {
		t.Errorf("ops after the failure must not run, Count() = %d", uf.Count())
	}
}

func BenchmarkUnion(b *testing.B) {
	const n = 1 << 12
	ops := randomOps(3, n, n)
	for _, v := range Variants {
		b.Run(string(v), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				uf, _ := New(v, n)
				_ = Apply(uf, ops)
			}
		})
	}
}
