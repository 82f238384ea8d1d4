package cycle

import "errors"

// ErrInconsistentState indicates a cycle was archived but the live ledger
// could not be cleared afterwards. The archive is intact; callers should
// retry CloseCycle (cleanup alone is idempotent) rather than treat this as
// an ordinary validation failure.
var ErrInconsistentState = errors.New("cycle archived but ledger not cleared")
