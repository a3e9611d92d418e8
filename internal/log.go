package internal

import (
	"context"
	"encoding/binary"
	"log/slog"
)

// LevelTrace is used for per-operation events such as every setting stored.
const LevelTrace slog.Level = slog.LevelDebug - 2

func LogEnabled(l *slog.Logger, lvl slog.Level) bool {
	return l != nil && l.Handler().Enabled(context.Background(), lvl)
}

// LogAttrs is the helper used by all package loggers. A nil logger is valid
// and logs nothing.
func LogAttrs(l *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if l != nil {
		l.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

// SlogAddr4 returns a slog.Attr for a 4-byte IPv4 address
// packed into a uint64 without allocating a string.
func SlogAddr4(key string, addr *[4]byte) slog.Attr {
	return slog.Uint64(key, uint64(binary.BigEndian.Uint32(addr[:])))
}

// SlogHWAddr returns a slog.Attr for a hardware address of up to 8 bytes
// packed into a uint64. Longer addresses are truncated.
func SlogHWAddr(key string, addr []byte) slog.Attr {
	var buf [8]byte
	n := min(len(addr), len(buf))
	copy(buf[len(buf)-n:], addr[:n])
	return slog.Uint64(key, binary.BigEndian.Uint64(buf[:]))
}
