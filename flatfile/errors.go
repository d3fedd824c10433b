package flatfile

import "errors"

// ErrBadParserOption is the sentinel wrapped by configuration errors: a
// negative maxLineCount/maxCellCount, or a readBufferSize below the 4096
// byte floor.
var ErrBadParserOption = errors.New("flatfile: bad parser option")

// ErrInconsistentRFF is the sentinel wrapped by CheckConsistency failures.
// The wrapping error names the specific invariant and offending index/value.
var ErrInconsistentRFF = errors.New("flatfile: inconsistent raw flat file")
