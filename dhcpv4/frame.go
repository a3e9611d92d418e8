package dhcpv4

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/dhcppkt"
)

const (
	sizeHeader   = 44
	sizeSName    = 64  // Server name, part of BOOTP too.
	sizeBootFile = 128 // Boot file name, Legacy.
	offsetSName  = sizeHeader
	offsetFile   = offsetSName + sizeSName
	// Magic Cookie offset measured from the start of the UDP payload.
	magicCookieOffset = offsetFile + sizeBootFile
	// Expected Magic Cookie value.
	MagicCookie uint32 = 0x63825363
	// OptionsOffset is the offset of the options region measured from the
	// start of the UDP payload. It is also the size of the fixed DHCP header.
	OptionsOffset = magicCookieOffset + 4

	DefaultClientPort = 68
	DefaultServerPort = 67
)

// NewFrame returns a new DHCPv4 Frame with data set to buf.
// An error is returned if the buffer size is smaller than 240.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < OptionsOffset {
		return Frame{}, dhcppkt.ErrShortPacket
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a DHCP packet
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [RFC2131].
//
// [RFC2131]: https://tools.ietf.org/html/rfc2131
type Frame struct {
	buf []byte
}

// RawData returns the underlying buffer of the frame.
func (frm Frame) RawData() []byte { return frm.buf }

// OptionsPayload returns the options portion of the DHCP frame. May be zero lengthed.
func (frm Frame) OptionsPayload() []byte {
	return frm.buf[OptionsOffset:]
}

func (frm Frame) Op() Op      { return Op(frm.buf[0]) }
func (frm Frame) SetOp(op Op) { frm.buf[0] = byte(op) }

func (frm Frame) Hardware() (Type, Len, Ops uint8) {
	return frm.buf[1], frm.buf[2], frm.buf[3]
}

func (frm Frame) SetHardware(Type, Len, Ops uint8) {
	frm.buf[1], frm.buf[2], frm.buf[3] = Type, Len, Ops
}

func (frm Frame) XID() uint32       { return binary.BigEndian.Uint32(frm.buf[4:8]) }
func (frm Frame) SetXID(xid uint32) { binary.BigEndian.PutUint32(frm.buf[4:8], xid) }

func (frm Frame) Secs() uint16        { return binary.BigEndian.Uint16(frm.buf[8:10]) }
func (frm Frame) SetSecs(secs uint16) { binary.BigEndian.PutUint16(frm.buf[8:10], secs) }

func (frm Frame) Flags() Flags         { return Flags(binary.BigEndian.Uint16(frm.buf[10:12])) }
func (frm Frame) SetFlags(flags Flags) { binary.BigEndian.PutUint16(frm.buf[10:12], uint16(flags)) }

// CIAddr is the client IP address. If the client has not obtained an IP
// address yet, this field is set to 0.
func (frm Frame) CIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[12:16])
}

// YIAddr is the IP address offered by the server to the client.
func (frm Frame) YIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[16:20])
}

// SIAddr is the IP address of the next server to use in bootstrap. This
// field is used in DHCPOFFER and DHCPACK messages.
func (frm Frame) SIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[20:24])
}

// GIAddr is the gateway IP address.
func (frm Frame) GIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[24:28])
}

// CHAddrAs6 returns [Frame.CHAddr] but limited to first 6 bytes.
func (frm Frame) CHAddrAs6() *[6]byte {
	return (*[6]byte)(frm.buf[28 : 28+6])
}

// CHAddr is the client hardware address. Can be up to 16 bytes in length but
// is usually 6 bytes for Ethernet.
func (frm Frame) CHAddr() *[16]byte {
	return (*[16]byte)(frm.buf[28:44])
}

// SName is the optional server host name, a null terminated string.
func (frm Frame) SName() *[sizeSName]byte {
	return (*[sizeSName]byte)(frm.buf[offsetSName:offsetFile])
}

// File is the boot file name, a null terminated string.
func (frm Frame) File() *[sizeBootFile]byte {
	return (*[sizeBootFile]byte)(frm.buf[offsetFile:magicCookieOffset])
}

func (frm Frame) MagicCookie() uint32 { return binary.BigEndian.Uint32(frm.buf[magicCookieOffset:]) }
func (frm Frame) SetMagicCookie(cookie uint32) {
	binary.BigEndian.PutUint32(frm.buf[magicCookieOffset:], cookie)
}

// ClearHeader zeros out the header contents.
func (frm Frame) ClearHeader() {
	clear(frm.buf[:OptionsOffset])
}

// ForEachOption calls fn for every option in the options region up to the
// end option. Pad options are skipped. off is the offset of the option
// measured from the start of the frame.
func (frm Frame) ForEachOption(fn func(off int, op OptNum, data []byte) error) error {
	if fn == nil {
		return errors.New("nil function to parse DHCP")
	}
	return forEachOption(frm.buf, OptionsOffset, fn)
}

// forEachOption walks the TLV options in buf starting at ptr.
func forEachOption(buf []byte, ptr int, fn func(off int, op OptNum, data []byte) error) error {
	for ptr < len(buf) {
		optnum := OptNum(buf[ptr])
		if optnum == OptEnd {
			break
		} else if optnum == OptPad {
			ptr++
			continue
		}
		if ptr+1 >= len(buf) {
			return dhcppkt.ErrMalformedOption
		}
		optlen := int(buf[ptr+1])
		if ptr+2+optlen > len(buf) {
			return dhcppkt.ErrMalformedOption
		}
		if err := fn(ptr, optnum, buf[ptr+2:ptr+2+optlen]); err != nil {
			return err
		}
		ptr += optlen + 2
	}
	return nil
}

// ValidateSize checks the frame is large enough to hold a DHCP header.
func (frm Frame) ValidateSize(v *dhcppkt.Validator) {
	if len(frm.buf) < OptionsOffset {
		v.AddError(dhcppkt.ErrShortPacket)
	}
}

var (
	errBadOp          = errors.New("DHCPv4 bad op")
	errBadHLen        = errors.New("DHCPv4 hardware length exceeds chaddr")
	errBadMagicCookie = errors.New("DHCPv4 bad magic cookie")
	errNoEndOption    = errors.New("DHCPv4 options not terminated")
)

// ValidateHeader checks the fixed header fields of the frame.
// Call after [Frame.ValidateSize] reports no error.
func (frm Frame) ValidateHeader(v *dhcppkt.Validator) {
	op := frm.Op()
	if op != OpRequest && op != OpReply {
		v.AddBitPosErr(0, 8, errBadOp)
	}
	if _, hlen, _ := frm.Hardware(); hlen > maxHLen {
		v.AddBitPosErr(2*8, 8, errBadHLen)
	}
	if frm.MagicCookie() != MagicCookie {
		v.AddBitPosErr(magicCookieOffset*8, 32, errBadMagicCookie)
	}
}

// ValidateOptions checks every option in the options region fits within the frame.
// With [dhcppkt.ValidateStrictOptions] set an end option is also required.
func (frm Frame) ValidateOptions(v *dhcppkt.Validator) {
	buf := frm.buf
	ptr := OptionsOffset
	for ptr < len(buf) {
		optnum := OptNum(buf[ptr])
		if optnum == OptEnd {
			return
		} else if optnum == OptPad {
			ptr++
			continue
		}
		if ptr+1 >= len(buf) || ptr+2+int(buf[ptr+1]) > len(buf) {
			v.AddBitPosErr(ptr*8, (len(buf)-ptr)*8, dhcppkt.ErrMalformedOption)
			return
		}
		ptr += 2 + int(buf[ptr+1])
	}
	if v.Has(dhcppkt.ValidateStrictOptions) {
		v.AddError(errNoEndOption)
	}
}
