package portfolio

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by ledger operations. Every error returned by a Ledger
// mutation wraps exactly one of them; test with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrNotFound          = errors.New("not found")
)

// OpError describes a rejected ledger operation. The ledger state is unchanged
// when an OpError is returned.
type OpError struct {
	Op        string // operation name, e.g. "buy"
	Portfolio string // portfolio id, if any
	Code      string // instrument code, if any
	Kind      error  // one of the Err* kinds
	Detail    string
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Code != "" {
		b.WriteString(" ")
		b.WriteString(e.Code)
	}
	if e.Portfolio != "" {
		fmt.Fprintf(&b, " in portfolio %s", e.Portfolio)
	}
	fmt.Fprintf(&b, ": %v", e.Kind)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Kind }

func opError(op, id, code string, kind error, format string, args ...any) *OpError {
	return &OpError{Op: op, Portfolio: id, Code: code, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
