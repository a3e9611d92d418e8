package dhcpv4

import (
	"log/slog"

	"github.com/soypat/dhcppkt"
	"github.com/soypat/dhcppkt/internal"
)

// Packet provides access to the settings of a DHCP packet by tag. Settings
// with a dedicated header field (see [TagYIAddr], [TagSIAddr],
// [TagTFTPServerName] and [TagBootfileName]) are read and written in place
// in the header, all other settings are kept in the options block that
// follows the header.
//
// A Packet borrows the buffer it is initialized with and is not safe for
// concurrent use.
type Packet struct {
	buf []byte
	// len is the length of the header plus the used length of the options block.
	len   int
	opts  Options
	store OptionStore
	logger
}

// Init binds the packet to buf, which must hold a DHCP header followed by
// well formed options or by zeros. The capacity of the packet is len(buf).
func (pkt *Packet) Init(buf []byte) error {
	return pkt.InitWithStore(buf, nil)
}

// InitWithStore is like [Packet.Init] but keeps options in store instead of
// the packet's own [Options]. store is initialized over the options region of buf.
// On failure the packet is left uninitialized.
func (pkt *Packet) InitWithStore(buf []byte, store OptionStore) error {
	*pkt = Packet{logger: pkt.logger, opts: Options{logger: pkt.logger}, store: store}
	if len(buf) < OptionsOffset {
		return dhcppkt.ErrShortPacket
	}
	err := pkt.options().Init(buf[OptionsOffset:])
	if err != nil {
		return err
	}
	pkt.buf = buf
	pkt.updateLen()
	pkt.trace("dhcpv4.Packet:init", slog.Int("cap", len(buf)), slog.Int("len", pkt.len))
	return nil
}

// SetLogger sets the logger of the packet and of its built-in option block.
func (pkt *Packet) SetLogger(l *slog.Logger) {
	pkt.log = l
	pkt.opts.SetLogger(l)
}

func (pkt *Packet) options() OptionStore {
	if pkt.store != nil {
		return pkt.store
	}
	return &pkt.opts
}

func (pkt *Packet) updateLen() {
	pkt.len = OptionsOffset + pkt.options().Len()
}

// Len returns the length of the packet that is in use: the fixed header
// plus the used length of the options block.
func (pkt *Packet) Len() int { return pkt.len }

// Cap returns the total capacity of the packet buffer.
func (pkt *Packet) Cap() int { return len(pkt.buf) }

// Bytes returns the in-use portion of the packet, ready to be sent.
func (pkt *Packet) Bytes() []byte { return pkt.buf[:pkt.len] }

// Frame returns a [Frame] over the in-use portion of the packet.
// It is valid only after a successful [Packet.Init].
func (pkt *Packet) Frame() Frame { return Frame{buf: pkt.buf[:pkt.len]} }

// Store sets the setting identified by tag to data. Empty data clears an
// option setting. A dedicated header field is overwritten with data only up
// to len(data) bytes, trailing bytes of the field are left as they were.
// Store fails with [dhcppkt.ErrNoSpace] if data does not fit.
func (pkt *Packet) Store(tag Tag, data []byte) error {
	if pkt.buf == nil {
		return dhcppkt.ErrNotInitialized
	}
	if f := findField(tag); f != nil {
		if len(data) > int(f.size) {
			pkt.debug("dhcpv4.Packet:store-nospace", slog.Uint64("tag", uint64(tag)), slog.Int("len", len(data)), slog.Int("size", int(f.size)))
			return dhcppkt.ErrNoSpace
		}
		copy(f.data(pkt.buf), data)
		if pkt.logenabled(internal.LevelTrace) {
			pkt.traceField("dhcpv4.Packet:store-field", f)
		}
		return nil
	}
	err := pkt.options().Store(tag, data)
	pkt.updateLen()
	if err == nil {
		pkt.trace("dhcpv4.Packet:store", slog.Uint64("tag", uint64(tag)), slog.Int("len", len(data)), slog.Int("pktlen", pkt.len))
	}
	return err
}

// Fetch copies the setting identified by tag into dst and returns the length
// of the setting. If the returned length is larger than len(dst) the setting
// was truncated. A dedicated header field that is zero valued is not set and
// yields [dhcppkt.ErrNotFound].
func (pkt *Packet) Fetch(tag Tag, dst []byte) (int, error) {
	if pkt.buf == nil {
		return 0, dhcppkt.ErrNotInitialized
	}
	if f := findField(tag); f != nil {
		data := f.data(pkt.buf)
		n := f.used.of(data)
		if n == 0 {
			return 0, dhcppkt.ErrNotFound
		}
		copy(dst, data[:n])
		return n, nil
	}
	return pkt.options().Fetch(tag, dst)
}

func (pkt *Packet) traceField(msg string, f *field) {
	data := f.data(pkt.buf)
	switch f.used {
	case usedLenIPv4:
		pkt.trace(msg, slog.Uint64("tag", uint64(f.tag)), internal.SlogAddr4("addr", (*[4]byte)(data)))
	default:
		pkt.trace(msg, slog.Uint64("tag", uint64(f.tag)), slog.Int("used", f.used.of(data)))
	}
}
