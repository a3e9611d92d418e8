// Package ltesto provides seeded random DHCP packet generation for tests.
package ltesto

import (
	"encoding/binary"
	"math/rand"
)

// DHCP wire layout, kept here so the generator does not depend on the
// packages it is used to test.
const (
	sizeDHCPHeader    = 240
	offsetYIAddr      = 16
	offsetSIAddr      = 20
	offsetCHAddr      = 28
	offsetMagicCookie = 236
	magicCookie       = 0x63825363

	optPad       = 0
	optTFTP      = 66
	optBootfile  = 67
	optEtherboot = 175
	optEnd       = 255
)

// Setting is a plain option setting as generated for tests.
type Setting struct {
	Tag  uint16
	Data []byte
}

// PacketGen generates DHCP reply packets with a fixed client identity.
type PacketGen struct {
	ClientHWAddr [6]byte
	XID          uint32
}

func (gen *PacketGen) Randomize(rng *rand.Rand) {
	rng.Read(gen.ClientHWAddr[:])
	gen.XID = rng.Uint32()
}

// AppendRandomDHCPPacket appends a DHCP reply to dst with random your/next
// server addresses, the given options and an end option. Options are
// followed by padLen zero bytes. The returned slice has the new packet at
// its end.
func (gen *PacketGen) AppendRandomDHCPPacket(dst []byte, rng *rand.Rand, opts []Setting, padLen int) []byte {
	optLen := 1 + padLen
	for i := range opts {
		if len(opts[i].Data) > 255 || opts[i].Tag > 0xff {
			panic("ltesto: option not representable as plain option")
		}
		optLen += 2 + len(opts[i].Data)
	}
	off := len(dst)
	dst = append(dst, make([]byte, sizeDHCPHeader+optLen)...)
	pkt := dst[off:]
	pkt[0] = 2 // Reply.
	pkt[1], pkt[2] = 1, 6
	binary.BigEndian.PutUint32(pkt[4:8], gen.XID)
	binary.BigEndian.PutUint32(pkt[offsetYIAddr:], rng.Uint32()|1)
	binary.BigEndian.PutUint32(pkt[offsetSIAddr:], rng.Uint32()|1)
	copy(pkt[offsetCHAddr:], gen.ClientHWAddr[:])
	binary.BigEndian.PutUint32(pkt[offsetMagicCookie:], magicCookie)
	ptr := sizeDHCPHeader
	for _, opt := range opts {
		pkt[ptr] = byte(opt.Tag)
		pkt[ptr+1] = byte(len(opt.Data))
		ptr += 2 + copy(pkt[ptr+2:], opt.Data)
	}
	pkt[ptr] = optEnd
	return dst
}

// RandomSettings returns n plain option settings with distinct tags and
// data of 1 to maxLen bytes. Tags of settings held in the DHCP header and
// the Etherboot encapsulator are never returned.
func RandomSettings(rng *rand.Rand, n, maxLen int) []Setting {
	if n > 200 {
		panic("ltesto: too many settings")
	} else if maxLen < 1 || maxLen > 255 {
		panic("ltesto: bad setting length")
	}
	var used [256]bool
	used[optPad], used[optEnd] = true, true
	used[optTFTP], used[optBootfile], used[optEtherboot] = true, true, true
	settings := make([]Setting, 0, n)
	for len(settings) < n {
		tag := rng.Intn(256)
		if used[tag] {
			continue
		}
		used[tag] = true
		data := make([]byte, 1+rng.Intn(maxLen))
		rng.Read(data)
		settings = append(settings, Setting{Tag: uint16(tag), Data: data})
	}
	return settings
}

// RandomString returns a printable string of length n without null bytes.
func RandomString(rng *rand.Rand, n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789-./"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rng.Intn(len(chars))]
	}
	return string(b)
}
