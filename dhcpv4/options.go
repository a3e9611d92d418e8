package dhcpv4

import (
	"log/slog"

	"github.com/soypat/dhcppkt"
	"github.com/soypat/dhcppkt/internal"
)

// maxOptionLen is the largest data length a single option can declare.
const maxOptionLen = 255

// OptionStore holds the settings of a DHCP packet that have no dedicated
// header field. [Options] is the implementation used by [Packet.Init].
type OptionStore interface {
	// Init binds the store to buf. An all-zero buf is a valid empty store.
	Init(buf []byte) error
	// Store sets the option for tag to data. Empty data deletes the option.
	Store(tag Tag, data []byte) error
	// Fetch copies the option's data into dst and returns the option's full
	// data length, which may exceed len(dst).
	Fetch(tag Tag, dst []byte) (int, error)
	// Len returns the number of bytes of the buffer in use by options.
	Len() int
}

var _ OptionStore = (*Options)(nil)

// Options is a block of DHCP options backed by a fixed capacity buffer.
//
// New options are inserted at the start of the block. Encapsulated options
// (see [EncapTag]) live inside their encapsulating option, which is created
// on the first store of one of its sub-options and removed when the last
// one is deleted.
type Options struct {
	buf  []byte
	used int
	logger
}

// SetLogger sets the logger for store events. A nil logger disables logging.
func (o *Options) SetLogger(l *slog.Logger) { o.log = l }

// Init binds the option block to buf and computes the used length as the end
// of the last non-pad option. buf must hold well formed options or be zeroed.
func (o *Options) Init(buf []byte) error {
	used, err := usedOptionsLen(buf)
	if err != nil {
		*o = Options{logger: o.logger}
		return err
	}
	o.buf = buf
	o.used = used
	return nil
}

// Len returns the used length of the option block, including any end option.
func (o *Options) Len() int { return o.used }

// Cap returns the capacity of the option block.
func (o *Options) Cap() int { return len(o.buf) }

// Bytes returns the used portion of the option block.
func (o *Options) Bytes() []byte { return o.buf[:o.used] }

// Fetch copies the data of the option for tag into dst and returns the data
// length of the option. If the returned length is larger than len(dst) the
// data was truncated.
func (o *Options) Fetch(tag Tag, dst []byte) (int, error) {
	off, _ := o.find(tag)
	if off < 0 {
		return 0, dhcppkt.ErrNotFound
	}
	n := int(o.buf[off+1])
	copy(dst, o.buf[off+2:off+2+n])
	return n, nil
}

// Store sets the option for tag to data. If data is empty the option is
// deleted. Store fails with [dhcppkt.ErrNoSpace] if the option does not fit
// in which case the block is left unmodified.
func (o *Options) Store(tag Tag, data []byte) (err error) {
	if !tag.storable() {
		return dhcppkt.ErrInvalidTag
	}
	if len(data) > maxOptionLen {
		err = dhcppkt.ErrNoSpace
	} else if tag.IsEncap() {
		err = o.storeEncap(tag, data)
	} else {
		err = o.storePlain(tag, data)
	}
	if err != nil {
		o.debug("dhcpv4.Options:store-failed", slog.Uint64("tag", uint64(tag)), slog.Int("len", len(data)), slog.String("err", err.Error()))
		return err
	}
	if o.logenabled(internal.LevelTrace) {
		o.trace("dhcpv4.Options:store", slog.Uint64("tag", uint64(tag)), slog.Int("len", len(data)), slog.Int("used", o.used))
	}
	return nil
}

func (o *Options) storePlain(tag Tag, data []byte) error {
	off, _ := o.find(tag)
	oldLen := o.optionLen(off)
	newLen := wireLen(data)
	if off < 0 {
		if newLen == 0 {
			return nil // Nothing to delete.
		}
		off = 0
	}
	if o.used+newLen-oldLen > len(o.buf) {
		return dhcppkt.ErrNoSpace
	}
	o.resize(off, oldLen, newLen)
	o.put(off, tag.Encapsulated(), data)
	return nil
}

func (o *Options) storeEncap(tag Tag, data []byte) error {
	off, encapOff := o.find(tag)
	newLen := wireLen(data)
	if encapOff < 0 {
		if newLen == 0 {
			return nil
		}
		// New encapsulator holds the sub-option followed by an end option.
		encLen := newLen + 1
		if encLen > maxOptionLen || o.used+2+encLen > len(o.buf) {
			return dhcppkt.ErrNoSpace
		}
		o.resize(0, 0, 2+encLen)
		o.buf[0] = byte(tag.Encapsulator())
		o.buf[1] = byte(encLen)
		o.put(2, tag.Encapsulated(), data)
		o.buf[2+newLen] = byte(OptEnd)
		return nil
	}
	oldLen := o.optionLen(off)
	if off < 0 {
		if newLen == 0 {
			return nil
		}
		off = encapOff + 2
	}
	delta := newLen - oldLen
	encLen := int(o.buf[encapOff+1]) + delta
	if encLen > maxOptionLen || o.used+delta > len(o.buf) {
		return dhcppkt.ErrNoSpace
	}
	o.resize(off, oldLen, newLen)
	o.buf[encapOff+1] = byte(encLen)
	o.put(off, tag.Encapsulated(), data)
	if encLen <= 1 {
		// Only an end option or nothing at all is left.
		o.resize(encapOff, 2+encLen, 0)
	}
	return nil
}

// put writes the option header and data at off. It is a no-op for empty data.
func (o *Options) put(off int, opt OptNum, data []byte) {
	if len(data) == 0 {
		return
	}
	o.buf[off] = byte(opt)
	o.buf[off+1] = byte(len(data))
	copy(o.buf[off+2:], data)
}

// resize changes the size of the option at off from oldLen to newLen bytes,
// moving the rest of the used block. Capacity must be checked beforehand.
func (o *Options) resize(off, oldLen, newLen int) {
	delta := newLen - oldLen
	used := o.used
	copy(o.buf[off+newLen:], o.buf[off+oldLen:used])
	if delta < 0 {
		clear(o.buf[used+delta : used])
	}
	o.used = used + delta
}

// optionLen returns the on-wire length of the option at off, or zero if off is negative.
func (o *Options) optionLen(off int) int {
	if off < 0 {
		return 0
	}
	return 2 + int(o.buf[off+1])
}

// find returns the offset of the option for tag and the offset of its
// encapsulating option. Either is -1 when not present.
func (o *Options) find(tag Tag) (off, encapOff int) {
	if !tag.storable() {
		return -1, -1
	}
	if !tag.IsEncap() {
		return o.findIn(tag.Encapsulated(), 0, o.used), -1
	}
	encapOff = o.findIn(tag.Encapsulator(), 0, o.used)
	if encapOff < 0 {
		return -1, -1
	}
	start := encapOff + 2
	end := start + int(o.buf[encapOff+1])
	return o.findIn(tag.Encapsulated(), start, end), encapOff
}

// findIn searches buf[start:end] for opt. The search stops at an end option
// or at the first option that overruns end.
func (o *Options) findIn(opt OptNum, start, end int) int {
	for off := start; off < end; {
		cur := OptNum(o.buf[off])
		if cur == OptEnd {
			break
		} else if cur == OptPad {
			off++
			continue
		}
		if off+1 >= end {
			break
		}
		n := 2 + int(o.buf[off+1])
		if off+n > end {
			break
		}
		if cur == opt {
			return off
		}
		off += n
	}
	return -1
}

// ForEach calls fn for each top level option in the used block. off is the
// offset of the option within the block.
func (o *Options) ForEach(fn func(off int, op OptNum, data []byte) error) error {
	return forEachOption(o.buf[:o.used], 0, fn)
}

// wireLen returns the on-wire length of an option holding data, zero for a deleted option.
func wireLen(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	return 2 + len(data)
}

// usedOptionsLen scans buf and returns the end offset of the last option
// that is not a pad. An option overrunning buf before the first end option
// is malformed. After an end option the scan stops at the first overrun and
// keeps the length found so far.
func usedOptionsLen(buf []byte) (int, error) {
	used := 0
	ended := false
	for off := 0; off < len(buf); {
		n := 1
		switch OptNum(buf[off]) {
		case OptPad:
			off++
			continue
		case OptEnd:
			ended = true
		default:
			if off+1 >= len(buf) || off+2+int(buf[off+1]) > len(buf) {
				if ended {
					return used, nil
				}
				return 0, dhcppkt.ErrMalformedOption
			}
			n = 2 + int(buf[off+1])
		}
		off += n
		used = off
	}
	return used, nil
}
