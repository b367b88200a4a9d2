package xerrors

var (
	// ErrInvalidConfig 配置错误。
	ErrInvalidConfig = New(ErrInvalidArg, 400005, "invalid config", "configuration failed validation", nil)
	// ErrIndexOutOfRange 元素 ID 越界。
	ErrIndexOutOfRange = New(ErrInvalidArg, 400019, "index out of range", "element id must be within [0, n)", nil)
	// ErrInvalidSize 全集规模非法。
	ErrInvalidSize = New(ErrInvalidArg, 400020, "invalid size", "universe size must be positive", nil)
	// ErrUnknownVariant 未知的并查集实现。
	ErrUnknownVariant = New(ErrInvalidArg, 400021, "unknown variant", "supported: quick_find, quick_union, weighted_quick_union, path_compression, weighted_path_compression", nil)
	// ErrPartitionMismatch 不同实现在相同操作序列下得到了不同的划分。
	ErrPartitionMismatch = New(ErrInternal, 500008, "partition mismatch", "variants disagree on the induced partition", nil)
)

// OutOfRange 构造携带越界元素与全集规模的错误实例.
func OutOfRange(id, n int) *Error {
	return ErrIndexOutOfRange.Derive().
		WithDetail("element %d is not within [0, %d)", id, n).
		WithContext("id", id).
		WithContext("n", n)
}

// InvalidSize 构造携带非法规模的错误实例.
func InvalidSize(n int) *Error {
	return ErrInvalidSize.Derive().
		WithDetail("size %d is not allowed", n).
		WithContext("n", n)
}
