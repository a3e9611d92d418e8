package dhcpv4

import (
	"encoding/binary"

	"github.com/soypat/dhcppkt"
)

// Settings is a store of tagged settings such as a [Packet] or [Options].
type Settings interface {
	Store(tag Tag, data []byte) error
	Fetch(tag Tag, dst []byte) (int, error)
}

var (
	_ Settings = (*Packet)(nil)
	_ Settings = (*Options)(nil)
)

// Clear deletes the setting. Dedicated header fields are left untouched,
// store zeros to them to clear them.
func Clear(s Settings, tag Tag) error {
	return s.Store(tag, nil)
}

func StoreString(s Settings, tag Tag, v string) error {
	return s.Store(tag, []byte(v))
}

func StoreIPv4(s Settings, tag Tag, addr [4]byte) error {
	return s.Store(tag, addr[:])
}

// StoreUint stores v as a size byte big endian integer. size must be 1, 2, 4 or 8.
func StoreUint(s Settings, tag Tag, v uint64, size int) error {
	var buf [8]byte
	switch size {
	case 1, 2, 4, 8:
	default:
		return dhcppkt.ErrBadLength
	}
	if size < 8 && v>>(8*size) != 0 {
		return dhcppkt.ErrBadLength
	}
	binary.BigEndian.PutUint64(buf[:], v)
	return s.Store(tag, buf[8-size:])
}

// FetchString returns the setting as a string.
func FetchString(s Settings, tag Tag) (string, error) {
	n, err := s.Fetch(tag, nil)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	n, err = s.Fetch(tag, buf)
	if err != nil {
		return "", err
	}
	return string(buf[:min(n, len(buf))]), nil
}

// FetchIPv4 returns the first 4 bytes of the setting as an IPv4 address.
func FetchIPv4(s Settings, tag Tag) (addr [4]byte, err error) {
	n, err := s.Fetch(tag, addr[:])
	if err != nil {
		return addr, err
	} else if n < len(addr) {
		return [4]byte{}, dhcppkt.ErrBadLength
	}
	return addr, nil
}

// FetchUint returns the setting as a big endian unsigned integer of 1 to 8 bytes.
func FetchUint(s Settings, tag Tag) (uint64, error) {
	var buf [8]byte
	n, err := s.Fetch(tag, buf[:])
	if err != nil {
		return 0, err
	} else if n == 0 || n > len(buf) {
		return 0, dhcppkt.ErrBadLength
	}
	var v uint64
	for _, b := range buf[:n] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}
