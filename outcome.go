package blogplatform

// Kind discriminates how an operation concluded.
type Kind int

const (
	KindOk Kind = iota
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// Outcome carries either success data or exactly one typed failure. It is
// the only channel through which resource clients and usecases report
// failure to the presentation boundary; no raw error crosses it.
type Outcome[T any] struct {
	Kind Kind
	Data T

	// Reason is a user-facing explanation, set for Invalid and Conflict.
	Reason string

	// Detail is the internal upstream detail. It is logged, never rendered.
	Detail string

	// Warnings records non-fatal degradations attached to an Ok result,
	// such as a comment list that could not be fetched.
	Warnings []string
}

func Ok[T any](data T) Outcome[T] {
	return Outcome[T]{Kind: KindOk, Data: data}
}

func Invalid[T any](reason string) Outcome[T] {
	return Outcome[T]{Kind: KindInvalid, Reason: reason}
}

func Unauthorized[T any]() Outcome[T] {
	return Outcome[T]{Kind: KindUnauthorized}
}

func Forbidden[T any]() Outcome[T] {
	return Outcome[T]{Kind: KindForbidden}
}

func NotFound[T any]() Outcome[T] {
	return Outcome[T]{Kind: KindNotFound}
}

func Conflict[T any](reason string) Outcome[T] {
	return Outcome[T]{Kind: KindConflict, Reason: reason}
}

func Upstream[T any](detail string) Outcome[T] {
	return Outcome[T]{Kind: KindUpstream, Detail: detail}
}

func (o Outcome[T]) IsOk() bool {
	return o.Kind == KindOk
}

func (o Outcome[T]) Failed() bool {
	return o.Kind != KindOk
}

// WithWarning attaches a non-fatal warning to the outcome.
func (o Outcome[T]) WithWarning(msg string) Outcome[T] {
	o.Warnings = append(o.Warnings, msg)
	return o
}

// ForwardFailure re-types a failed outcome so a usecase can surface a step's
// failure under its own result type. The data of the source is dropped.
func ForwardFailure[U, T any](o Outcome[T]) Outcome[U] {
	return Outcome[U]{Kind: o.Kind, Reason: o.Reason, Detail: o.Detail}
}
