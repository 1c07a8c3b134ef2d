package trace

import "time"

// Kind classifies a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // start of a span
	KindSpanEnd                   // end of a span
	KindPoint                     // instantaneous event
	KindHeartbeat                 // periodic liveness signal
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "span_begin"
	case KindSpanEnd:
		return "span_end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope identifies which part of the pipeline produced an event.
// The order matters: lower scopes are coarser and survive lower levels.
type Scope uint8

const (
	ScopeBatch    Scope = iota // top-level command run
	ScopeConfig                // manifest discovery, option resolution
	ScopeCache                 // result cache lookups and stores
	ScopeClassify              // per-peak probability scoring
	ScopeCSP                   // per-row shift perturbation arithmetic
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeBatch:
		return "batch"
	case ScopeConfig:
		return "config"
	case ScopeCache:
		return "cache"
	case ScopeClassify:
		return "classify"
	case ScopeCSP:
		return "csp"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number
	Kind     Kind              // event kind
	Scope    Scope             // producing scope
	SpanID   uint64            // span this event belongs to (0 for points)
	ParentID uint64            // parent span (0 if root)
	GID      uint64            // goroutine ID
	Name     string            // operation name, e.g. "score" or "parse"
	Detail   string            // free-form detail, e.g. peak ID
	Extra    map[string]string // optional structured payload
}
