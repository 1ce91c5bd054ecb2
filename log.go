package gitredate

import "log/slog"

// logger used by the package. Defaults to [slog.Default], replace it with
// [SetLogger].
var logger *slog.Logger = slog.Default()

// SetLogger replaces the logger used by the package. Nil input is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
