package result

// State 快照状态
type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Provenance 数据来源标记：success 快照必带，UI 据此渲染"数据可能过期"提示
type Provenance string

const (
	ProvenanceCache    Provenance = "cache"
	ProvenanceRemote   Provenance = "remote"
	ProvenanceFallback Provenance = "fallback"
)

// ErrorKind 错误分类
type ErrorKind string

const (
	KindNetworkUnreachable ErrorKind = "network_unreachable"
	KindTimeout            ErrorKind = "timeout"
	KindServerError        ErrorKind = "server_error"
	KindDecodeError        ErrorKind = "decode_error"
	KindNotFound           ErrorKind = "not_found"
	KindStorageError       ErrorKind = "storage_error"
)

// Error 错误快照内容
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return string(e.Kind) + ": " + e.Message
}

// Snapshot 统一结果快照：loading / success(value, provenance) / error(kind, message)。
// 查询以快照序列形式消费：loading 在前，零或多个中间 success，终态为 success 或 error。
type Snapshot[T any] struct {
	State      State      `json:"state"`
	Provenance Provenance `json:"provenance,omitempty"`
	Value      T          `json:"value,omitempty"`
	Err        *Error     `json:"error,omitempty"`
}

// Loading 构造加载中快照
func Loading[T any]() Snapshot[T] {
	return Snapshot[T]{State: StateLoading}
}

// Success 构造成功快照
func Success[T any](value T, provenance Provenance) Snapshot[T] {
	return Snapshot[T]{State: StateSuccess, Provenance: provenance, Value: value}
}

// Failure 构造错误快照
func Failure[T any](kind ErrorKind, message string) Snapshot[T] {
	return Snapshot[T]{State: StateError, Err: &Error{Kind: kind, Message: message}}
}

// IsSuccess 是否成功快照
func (s Snapshot[T]) IsSuccess() bool {
	return s.State == StateSuccess
}

// IsTerminal 是否终态快照（success 或 error 均可作为终态，由发射方保证序列收尾）
func (s Snapshot[T]) IsTerminal() bool {
	return s.State == StateSuccess || s.State == StateError
}

// Stale 数据是否可能过期（来源非远端的成功快照）
func (s Snapshot[T]) Stale() bool {
	return s.State == StateSuccess && s.Provenance != ProvenanceRemote
}
