package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/soypat/dhcppkt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

func TestLoadConfigFile(t *testing.T) {
	cfg, err := loadConfigFile("testdata/offer.toml")
	require.NoError(t, err)
	assert.Equal(t, "reply", cfg.Op)
	assert.Equal(t, uint32(0x3903f326), cfg.XID)
	assert.Equal(t, "offer", cfg.Message)
	assert.Equal(t, defaultPacketSize, cfg.Size)
	require.Len(t, cfg.Setting, 8)
	assert.Equal(t, "yiaddr", cfg.Setting[0].Name)
	require.NotNil(t, cfg.Setting[2].String)
	assert.Equal(t, "undionly.kpxe", *cfg.Setting[2].String)
	assert.Equal(t, uint8(175), cfg.Setting[7].Encap)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(`xid = 7`))
	require.NoError(t, err)
	assert.Equal(t, "reply", cfg.Op)
	assert.Equal(t, defaultPacketSize, cfg.Size)
	assert.Empty(t, cfg.Setting)
	assert.Equal(t, uint32(7), cfg.XID)

	cfg, err = loadConfig(strings.NewReader(`op = "request"`))
	require.NoError(t, err)
	assert.Equal(t, "request", cfg.Op)
	assert.NotZero(t, cfg.XID, "unset xid is randomized")

	_, err = loadConfig(strings.NewReader("size = -1"))
	require.ErrorIs(t, err, dhcppkt.ErrBadLength)

	_, err = loadConfig(strings.NewReader("xid = 7\nbogus = 1\n"))
	require.ErrorContains(t, err, "bogus")

	_, err = loadConfig(strings.NewReader("[[setting]]\ntag = 1\ncolour = \"red\"\n"))
	require.ErrorContains(t, err, "colour")
}

func TestSettingResolve(t *testing.T) {
	str := "host"
	big := uint64(256)
	small := uint64(3)
	tag, data, err := (&settingConfig{Tag: 12, String: &str}).resolve()
	require.NoError(t, err)
	assert.EqualValues(t, 12, tag)
	assert.Equal(t, []byte("host"), data)

	tag, data, err = (&settingConfig{Name: "siaddr", IPv4: "10.0.0.1"}).resolve()
	require.NoError(t, err)
	assert.EqualValues(t, 175<<8|3, tag)
	assert.Equal(t, []byte{10, 0, 0, 1}, data)

	tag, data, err = (&settingConfig{Encap: 175, Sub: 176, Uint: &small, Size: 2}).resolve()
	require.NoError(t, err)
	assert.EqualValues(t, 175<<8|176, tag)
	assert.Equal(t, []byte{0, 3}, data)

	_, data, err = (&settingConfig{Tag: 51, Uint: &small}).resolve()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 3}, data, "integers default to 4 bytes")

	for _, sc := range []settingConfig{
		{},
		{Name: "bogus", Hex: "00"},
		{Name: "file", Tag: 67, String: &str},
		{Encap: 43, Hex: "00"},
		{Tag: 1},
		{Tag: 1, IPv4: "::1"},
		{Tag: 1, IPv4: "300.1.1.1"},
		{Tag: 1, Hex: "zz"},
		{Tag: 1, Hex: "00", String: &str},
	} {
		_, _, err := sc.resolve()
		assert.Error(t, err, "%+v", sc)
	}
	for _, sc := range []settingConfig{
		{Tag: 1, Uint: &big, Size: 1},
		{Tag: 1, Uint: &small, Size: 3},
		{Tag: 1, Uint: &small, Size: -5},
		{Tag: 1, Uint: &small, Size: 16},
	} {
		_, _, err = sc.resolve()
		require.ErrorIs(t, err, dhcppkt.ErrBadLength, "size %d", sc.Size)
	}
	_, data, err = (&settingConfig{Tag: 1, Uint: &big, Size: 8}).resolve()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, data)
}

func TestBuildAndDump(t *testing.T) {
	cfg, err := loadConfigFile("testdata/offer.toml")
	require.NoError(t, err)
	pkt, err := build(cfg, discard)
	require.NoError(t, err)

	var d layers.DHCPv4
	require.NoError(t, d.DecodeFromBytes(pkt, gopacket.NilDecodeFeedback))
	assert.Equal(t, layers.DHCPOpReply, d.Operation)
	assert.Equal(t, uint32(0x3903f326), d.Xid)
	assert.Equal(t, "00:05:3c:04:8d:59", d.ClientHWAddr.String())
	assert.Equal(t, "192.168.1.100", d.YourClientIP.String())
	assert.Equal(t, "192.168.1.1", d.NextServerIP.String())
	assert.Equal(t, "undionly.kpxe", string(bytes.TrimRight(d.File, "\x00")))
	require.Len(t, d.Options, 6)
	// Newest settings come first.
	assert.Equal(t, layers.DHCPOpt(175), d.Options[0].Type)
	assert.Equal(t, layers.DHCPOptMessageType, d.Options[5].Type)
	assert.Equal(t, []byte{byte(layers.DHCPMsgTypeOffer)}, d.Options[5].Data)

	var out bytes.Buffer
	err = dump(&out, pkt, dumpConfig{strict: true}, discard)
	require.NoError(t, err)
	got := out.String()
	for _, want := range []string{
		"op=reply xid=0x3903f326",
		"chaddr=00053c048d59",
		"yiaddr=192.168.1.100",
		"siaddr=192.168.1.1",
		"file=undionly.kpxe",
		"option  51",
		"00015180",
		"7078652d6e6f6465",
		"b00101ff",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "sname=")
}

func TestBuildErrors(t *testing.T) {
	long := strings.Repeat("x", 65)
	for _, test := range []struct {
		name    string
		cfg     fileConfig
		wantErr error
	}{
		{name: "bad op", cfg: fileConfig{Op: "bogus", Size: 576}},
		{name: "bad message", cfg: fileConfig{Op: "reply", Message: "bogus", Size: 576}},
		{name: "bad chaddr", cfg: fileConfig{Op: "reply", CHAddr: "zz", Size: 576}},
		{name: "short", cfg: fileConfig{Op: "reply", Size: 100}, wantErr: dhcppkt.ErrShortPacket},
		{name: "negative size", cfg: fileConfig{Op: "reply", Size: -1}, wantErr: dhcppkt.ErrBadLength},
		{name: "long sname", wantErr: dhcppkt.ErrNoSpace, cfg: fileConfig{Op: "reply", Size: 576, Setting: []settingConfig{
			{Name: "sname", String: &long},
		}}},
		{name: "options full", wantErr: dhcppkt.ErrNoSpace, cfg: fileConfig{Op: "reply", Size: 250, Setting: []settingConfig{
			{Tag: 12, String: &long},
		}}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := build(&test.cfg, discard)
			require.Error(t, err)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestRunBuildThenDump(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"build", "-config", "testdata/offer.toml", "-hex"}, nil, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	var dumped bytes.Buffer
	err = run([]string{"dump", "-hex", "-strict", "-layer"}, &stdout, &dumped, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, dumped.String(), "yiaddr=192.168.1.100")
	assert.Contains(t, dumped.String(), "DHCPv4")

	// Raw binary through a file.
	path := filepath.Join(t.TempDir(), "offer.bin")
	err = run([]string{"build", "-config", "testdata/offer.toml", "-o", path}, nil, &stdout, &stderr)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(raw), 240)
	dumped.Reset()
	err = run([]string{"dump", path}, nil, &dumped, &stderr)
	require.NoError(t, err)
	assert.Contains(t, dumped.String(), "file=undionly.kpxe")
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.ErrorIs(t, run(nil, nil, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"frobnicate"}, nil, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"build"}, nil, &stdout, &stderr), errUsage)

	// Options that run past the end of the packet.
	bad := make([]byte, 244)
	bad[236], bad[237], bad[238], bad[239] = 0x63, 0x82, 0x53, 0x63
	bad[0] = 2
	bad[240], bad[241] = 12, 9
	err := run([]string{"dump"}, bytes.NewReader(bad), &stdout, &stderr)
	require.ErrorIs(t, err, dhcppkt.ErrMalformedOption)

	// Unterminated options only fail in strict mode.
	bad[240], bad[241], bad[242], bad[243] = 12, 2, 'h', 'i'
	stdout.Reset()
	require.NoError(t, run([]string{"dump"}, bytes.NewReader(bad), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "option  12")
	require.Error(t, run([]string{"dump", "-strict"}, bytes.NewReader(bad), &stdout, &stderr))
}

func TestDumpTrailingAfterEnd(t *testing.T) {
	cfg, err := loadConfigFile("testdata/offer.toml")
	require.NoError(t, err)
	pkt, err := build(cfg, discard)
	require.NoError(t, err)
	pkt = append(pkt, 0, 0, 1, 9)

	var out bytes.Buffer
	err = dump(&out, pkt, dumpConfig{strict: true}, discard)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "yiaddr=192.168.1.100")
	assert.Contains(t, out.String(), fmt.Sprintf("len=%d", len(pkt)-4))
}
