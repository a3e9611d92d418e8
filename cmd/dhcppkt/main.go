// Command dhcppkt builds DHCP packets from a TOML description and dumps the
// settings held in existing packets.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/soypat/dhcppkt"
	"github.com/soypat/dhcppkt/dhcpv4"
	"github.com/soypat/dhcppkt/internal"
)

const usage = `usage: dhcppkt <command> [flags]

commands:
  build -config packet.toml [-o out] [-hex]   build a packet
  dump [-hex] [-strict] [-layer] [file]       print the settings of a packet
`

var errUsage = errors.New("bad usage")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "dhcppkt:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	var (
		flagVerbose = 0
		flagHex     = false
	)
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&flagVerbose, "v", flagVerbose, "Verbosity. 1 logs debug events, 2 logs every setting stored.")
	fs.BoolVar(&flagHex, "hex", flagHex, "Packets are hex encoded instead of raw binary.")
	switch args[0] {
	case "build":
		var (
			flagConfig = ""
			flagOutput = "-"
		)
		fs.StringVar(&flagConfig, "config", flagConfig, "TOML file describing the packet.")
		fs.StringVar(&flagOutput, "o", flagOutput, "Output file. '-' writes to standard output.")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		} else if flagConfig == "" {
			return fmt.Errorf("%w: missing -config", errUsage)
		}
		logger := newLogger(stderr, flagVerbose)
		cfg, err := loadConfigFile(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		pkt, err := build(cfg, logger)
		if err != nil {
			return err
		}
		return writeOutput(stdout, flagOutput, pkt, flagHex)

	case "dump":
		var (
			flagStrict = false
			flagLayer  = false
		)
		fs.BoolVar(&flagStrict, "strict", flagStrict, "Require options to be terminated by an end option.")
		fs.BoolVar(&flagLayer, "layer", flagLayer, "Also print the packet as decoded by gopacket.")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}
		logger := newLogger(stderr, flagVerbose)
		data, err := readInput(stdin, fs.Arg(0), flagHex)
		if err != nil {
			return err
		}
		return dump(stdout, data, dumpConfig{strict: flagStrict, layer: flagLayer}, logger)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	lvl := slog.LevelInfo
	switch {
	case verbosity >= 2:
		lvl = internal.LevelTrace
	case verbosity == 1:
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// build returns the in-use bytes of a packet built from cfg.
func build(cfg *fileConfig, logger *slog.Logger) ([]byte, error) {
	op, err := cfg.op()
	if err != nil {
		return nil, err
	}
	hw, err := cfg.hwaddr()
	if err != nil {
		return nil, err
	}
	if cfg.Size < 0 {
		return nil, fmt.Errorf("packet size %d: %w", cfg.Size, dhcppkt.ErrBadLength)
	}
	buf := make([]byte, cfg.Size)
	frm, err := dhcpv4.NewFrame(buf)
	if err != nil {
		return nil, fmt.Errorf("packet size %d: %w", cfg.Size, err)
	}
	frm.SetOp(op)
	frm.SetHardware(dhcpv4.HTypeEthernet, uint8(len(hw)), 0)
	frm.SetXID(cfg.XID)
	copy(frm.CHAddr()[:], hw)
	frm.SetMagicCookie(dhcpv4.MagicCookie)
	if len(buf) > dhcpv4.OptionsOffset {
		buf[dhcpv4.OptionsOffset] = byte(dhcpv4.OptEnd)
	}

	var pkt dhcpv4.Packet
	pkt.SetLogger(logger)
	err = pkt.Init(buf)
	if err != nil {
		return nil, err
	}
	if cfg.Message != "" {
		mt, err := cfg.messageType()
		if err != nil {
			return nil, err
		}
		err = dhcpv4.StoreUint(&pkt, dhcpv4.Tag(dhcpv4.OptMessageType), uint64(mt), 1)
		if err != nil {
			return nil, fmt.Errorf("storing message type: %w", err)
		}
	}
	for i := range cfg.Setting {
		tag, data, err := cfg.Setting[i].resolve()
		if err != nil {
			return nil, fmt.Errorf("setting %d: %w", i, err)
		}
		err = pkt.Store(tag, data)
		if err != nil {
			return nil, fmt.Errorf("setting %d tag %#x: %w", i, uint16(tag), err)
		}
	}
	logger.Debug("built packet", slog.Int("len", pkt.Len()), slog.Int("cap", pkt.Cap()), slog.Int("settings", len(cfg.Setting)))
	return pkt.Bytes(), nil
}

type dumpConfig struct {
	strict bool
	layer  bool
}

// dump validates the packet in data and writes its header and settings to w.
func dump(w io.Writer, data []byte, cfg dumpConfig, logger *slog.Logger) error {
	frm, err := dhcpv4.NewFrame(data)
	if err != nil {
		return err
	}
	var v dhcppkt.Validator
	flags := dhcppkt.ValidateAllowMultiErrors
	if cfg.strict {
		flags |= dhcppkt.ValidateStrictOptions
	}
	v.SetFlags(flags)
	frm.ValidateHeader(&v)
	frm.ValidateOptions(&v)
	if v.HasError() {
		return fmt.Errorf("invalid packet: %w", v.Err())
	}
	var pkt dhcpv4.Packet
	pkt.SetLogger(logger)
	err = pkt.Init(data)
	if err != nil {
		return err
	}
	frm = pkt.Frame()
	_, hlen, _ := frm.Hardware()
	fmt.Fprintf(w, "op=%s xid=%#08x secs=%d broadcast=%t len=%d cap=%d\n",
		frm.Op(), frm.XID(), frm.Secs(), frm.Flags().Broadcast(), pkt.Len(), pkt.Cap())
	fmt.Fprintf(w, "ciaddr=%s giaddr=%s chaddr=%x\n",
		fmtIPv4(*frm.CIAddr()), fmtIPv4(*frm.GIAddr()), frm.CHAddr()[:min(int(hlen), 16)])

	for _, f := range []struct {
		name string
		tag  dhcpv4.Tag
		ip   bool
	}{
		{name: "yiaddr", tag: dhcpv4.TagYIAddr, ip: true},
		{name: "siaddr", tag: dhcpv4.TagSIAddr, ip: true},
		{name: "sname", tag: dhcpv4.TagTFTPServerName},
		{name: "file", tag: dhcpv4.TagBootfileName},
	} {
		var val string
		if f.ip {
			addr, err := dhcpv4.FetchIPv4(&pkt, f.tag)
			if err == nil {
				val = fmtIPv4(addr)
			}
		} else {
			val, _ = dhcpv4.FetchString(&pkt, f.tag)
		}
		if val != "" {
			fmt.Fprintf(w, "%s=%s\n", f.name, val)
		}
	}

	err = frm.ForEachOption(func(off int, op dhcpv4.OptNum, data []byte) error {
		fmt.Fprintf(w, "option %3d %-28s %x\n", op, layers.DHCPOpt(op).String(), data)
		return nil
	})
	if err != nil {
		return err
	}

	// Cross check against an independent decoder.
	var d layers.DHCPv4
	err = d.DecodeFromBytes(pkt.Bytes(), gopacket.NilDecodeFeedback)
	if err != nil {
		logger.Warn("gopacket decode failed", slog.String("err", err.Error()))
		return nil
	}
	logger.Debug("gopacket decoded", slog.Int("options", len(d.Options)), internal.SlogHWAddr("chaddr", d.ClientHWAddr))
	if cfg.layer {
		fmt.Fprintln(w, gopacket.LayerString(&d))
	}
	return nil
}

func fmtIPv4(addr [4]byte) string {
	return fmt.Sprintf("%d.%d.%d.%d", addr[0], addr[1], addr[2], addr[3])
}

func readInput(stdin io.Reader, path string, isHex bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if isHex {
		data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
	}
	return data, err
}

func writeOutput(stdout io.Writer, path string, pkt []byte, isHex bool) error {
	if isHex {
		pkt = []byte(hex.EncodeToString(pkt) + "\n")
	}
	if path == "-" {
		_, err := stdout.Write(pkt)
		return err
	}
	return os.WriteFile(path, pkt, 0o644)
}
