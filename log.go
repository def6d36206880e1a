package bramble

import "log/slog"

var logger *slog.Logger

// SetLogger replaces the logger used for debug diagnostics. Passing nil
// restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger = l
}

func logr() *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default().With("lib", "bramble")
}
