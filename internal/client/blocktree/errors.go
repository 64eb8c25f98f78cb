package blocktree

import "errors"

// ErrContractViolation indicates that the document store answered in a way the
// engine cannot reconcile (an anchor missing from an append result, a cursor
// that does not advance) or that the input tree is malformed (a cycle).
// After this error the remote document order must not be assumed consistent.
var ErrContractViolation = errors.New("contract violation")
