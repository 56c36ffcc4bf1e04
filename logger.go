package lzss

// logger is the narrow slice of github.com/apex/log's log.Interface this
// package actually needs for state-machine tracing. Any *log.Logger or
// *log.Entry from apex/log satisfies it structurally, so callers can pass
// log.Log (or a log.Logger configured with their own handler) straight into
// WithLogger without this package importing apex/log's concrete types.
type logger interface {
	Debugf(format string, args ...interface{})
}

// nopLogger discards every trace call; it is the default so tracing costs
// nothing unless a caller opts in with WithLogger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
