package dhcpv4

import (
	"log/slog"

	"github.com/soypat/dhcppkt/internal"
)

type logger struct {
	log *slog.Logger
}

func (l logger) debug(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelDebug, msg, attrs...)
}

func (l logger) trace(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, internal.LevelTrace, msg, attrs...)
}

func (l logger) logenabled(lvl slog.Level) bool {
	return internal.LogEnabled(l.log, lvl)
}
