package main

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/soypat/dhcppkt"
	"github.com/soypat/dhcppkt/dhcpv4"
	"github.com/soypat/dhcppkt/internal"
)

// fileConfig describes a DHCP packet to build.
//
//	op = "reply"
//	xid = 0x1234 # Pseudo random if unset.
//	chaddr = "de:ad:be:ef:00:01"
//	message = "offer"
//
//	[[setting]]
//	name = "yiaddr"
//	ipv4 = "192.168.1.20"
//
//	[[setting]]
//	encap = 175
//	sub = 1
//	uint = 1
//	size = 1
type fileConfig struct {
	Op      string          `toml:"op"`
	XID     uint32          `toml:"xid"`
	CHAddr  string          `toml:"chaddr"`
	Message string          `toml:"message"`
	Size    int             `toml:"size"`
	Setting []settingConfig `toml:"setting"`
}

type settingConfig struct {
	// Setting identification, exactly one of name, tag or encap+sub.
	Name  string `toml:"name"`
	Tag   uint16 `toml:"tag"`
	Encap uint8  `toml:"encap"`
	Sub   uint8  `toml:"sub"`

	// Setting value, exactly one of the following. An empty string clears the setting.
	String *string `toml:"string"`
	IPv4   string  `toml:"ipv4"`
	Uint   *uint64 `toml:"uint"`
	Size   int     `toml:"size"` // Integer size in bytes, defaults to 4.
	Hex    string  `toml:"hex"`
}

// defaultPacketSize is the minimum DHCP message size every client must accept.
const defaultPacketSize = 576

var namedTags = map[string]dhcpv4.Tag{
	"yiaddr": dhcpv4.TagYIAddr,
	"siaddr": dhcpv4.TagSIAddr,
	"sname":  dhcpv4.TagTFTPServerName,
	"file":   dhcpv4.TagBootfileName,
}

func loadConfigFile(path string) (*fileConfig, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return loadConfig(fp)
}

func loadConfig(r io.Reader) (*fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys %v", undecoded)
	}
	if !meta.IsDefined("op") {
		cfg.Op = dhcpv4.OpReply.String()
	}
	if !meta.IsDefined("xid") {
		cfg.XID = internal.Prand32(uint32(time.Now().UnixNano()) | 1)
	}
	if cfg.Size == 0 {
		cfg.Size = defaultPacketSize
	} else if cfg.Size < 0 {
		return nil, fmt.Errorf("packet size %d: %w", cfg.Size, dhcppkt.ErrBadLength)
	}
	return &cfg, nil
}

func (cfg *fileConfig) op() (dhcpv4.Op, error) {
	for _, op := range []dhcpv4.Op{dhcpv4.OpRequest, dhcpv4.OpReply} {
		if cfg.Op == op.String() {
			return op, nil
		}
	}
	return 0, fmt.Errorf("invalid op %q", cfg.Op)
}

func (cfg *fileConfig) hwaddr() (net.HardwareAddr, error) {
	if cfg.CHAddr == "" {
		return nil, nil
	}
	hw, err := net.ParseMAC(cfg.CHAddr)
	if err != nil {
		return nil, err
	} else if len(hw) > 16 {
		return nil, errors.New("chaddr longer than 16 bytes")
	}
	return hw, nil
}

func (cfg *fileConfig) messageType() (dhcpv4.MessageType, error) {
	for mt := dhcpv4.MsgDiscover; mt <= dhcpv4.MsgInform; mt++ {
		if cfg.Message == mt.String() {
			return mt, nil
		}
	}
	return 0, fmt.Errorf("invalid message type %q", cfg.Message)
}

// resolve returns the tag and encoded value of the setting.
func (sc *settingConfig) resolve() (tag dhcpv4.Tag, data []byte, err error) {
	tag, err = sc.tag()
	if err != nil {
		return 0, nil, err
	}
	data, err = sc.value()
	return tag, data, err
}

func (sc *settingConfig) tag() (dhcpv4.Tag, error) {
	ids := 0
	var tag dhcpv4.Tag
	if sc.Name != "" {
		ids++
		t, ok := namedTags[sc.Name]
		if !ok {
			return 0, fmt.Errorf("unknown setting name %q", sc.Name)
		}
		tag = t
	}
	if sc.Tag != 0 {
		ids++
		tag = dhcpv4.Tag(sc.Tag)
	}
	if sc.Encap != 0 || sc.Sub != 0 {
		ids++
		if sc.Encap == 0 || sc.Sub == 0 {
			return 0, errors.New("encapsulated setting needs both encap and sub")
		}
		tag = dhcpv4.EncapTag(dhcpv4.OptNum(sc.Encap), dhcpv4.OptNum(sc.Sub))
	}
	if ids != 1 {
		return 0, errors.New("setting needs exactly one of name, tag or encap+sub")
	}
	return tag, nil
}

func (sc *settingConfig) value() ([]byte, error) {
	values := 0
	var data []byte
	if sc.String != nil {
		values++
		data = []byte(*sc.String)
	}
	if sc.IPv4 != "" {
		values++
		addr, err := netip.ParseAddr(sc.IPv4)
		if err != nil {
			return nil, err
		} else if !addr.Is4() {
			return nil, fmt.Errorf("%s is not an IPv4 address", sc.IPv4)
		}
		a4 := addr.As4()
		data = a4[:]
	}
	if sc.Uint != nil {
		values++
		size := sc.Size
		v := *sc.Uint
		switch size {
		case 0:
			size = 4
		case 1, 2, 4, 8:
		default:
			return nil, fmt.Errorf("uint size %d: %w", size, dhcppkt.ErrBadLength)
		}
		if size < 8 && v>>(8*size) != 0 {
			return nil, fmt.Errorf("uint %d in %d bytes: %w", v, size, dhcppkt.ErrBadLength)
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], v)
		data = buf[8-size:]
	}
	if sc.Hex != "" {
		values++
		b, err := hex.DecodeString(sc.Hex)
		if err != nil {
			return nil, err
		}
		data = b
	}
	if values != 1 {
		return nil, errors.New("setting needs exactly one of string, ipv4, uint or hex")
	}
	return data, nil
}
