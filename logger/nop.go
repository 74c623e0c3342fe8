package logger

type nopLogger struct{}

var _ Logger = nopLogger{}

// NewNop returns a Logger that discards everything.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Fatal(string, ...any) {}

func (l nopLogger) With(...any) Logger { return l }
func (nopLogger) Level() Level         { return FatalLevel }
func (nopLogger) SetLevel(Level)       {}
