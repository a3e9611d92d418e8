package dhcpv4

import (
	"bytes"

	"github.com/soypat/dhcppkt/internal"
)

// usedLen selects how the meaningful length of a dedicated header field is
// computed from its raw contents.
type usedLen uint8

const (
	_ usedLen = iota
	// usedLenIPv4 fields are present only when the address is non-zero.
	usedLenIPv4
	// usedLenString fields hold a string terminated by the first null byte
	// or by the end of the field.
	usedLenString
)

// of returns the used length of the raw field data.
func (u usedLen) of(data []byte) int {
	switch u {
	case usedLenIPv4:
		if internal.IsZeroed(data...) {
			return 0
		}
		return len(data)
	case usedLenString:
		if n := bytes.IndexByte(data, 0); n >= 0 {
			return n
		}
		return len(data)
	}
	panic("invalid used length kind")
}

// field is a setting held in a dedicated field of the DHCP header.
type field struct {
	tag  Tag
	off  uint16
	size uint16
	used usedLen
}

func (f *field) data(hdr []byte) []byte {
	return hdr[f.off : f.off+f.size]
}

var fields = [...]field{
	{tag: TagYIAddr, off: 16, size: 4, used: usedLenIPv4},
	{tag: TagSIAddr, off: 20, size: 4, used: usedLenIPv4},
	{tag: TagTFTPServerName, off: offsetSName, size: sizeSName, used: usedLenString},
	{tag: TagBootfileName, off: offsetFile, size: sizeBootFile, used: usedLenString},
}

// findField returns the dedicated header field for tag or nil if the
// setting lives in the options block.
func findField(tag Tag) *field {
	for i := range fields {
		if fields[i].tag == tag {
			return &fields[i]
		}
	}
	return nil
}
