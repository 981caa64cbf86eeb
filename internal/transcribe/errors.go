package transcribe

import "errors"

// ErrFormat is returned when a word carries a secondary stress mark but no
// primary stress mark.
var ErrFormat = errors.New("use acute accent, not grave accent, for primary stress")
