package dhcpv4

import (
	"errors"
	"testing"

	"github.com/soypat/dhcppkt"
)

func TestStoreFetchUint(t *testing.T) {
	var o Options
	o.Init(make([]byte, 64))
	for _, test := range []struct {
		v    uint64
		size int
		want []byte
	}{
		{v: 5, size: 1, want: []byte{5}},
		{v: 0x0102, size: 2, want: []byte{1, 2}},
		{v: 9001, size: 4, want: []byte{0, 0, 0x23, 0x29}},
		{v: 1 << 40, size: 8, want: []byte{0, 0, 1, 0, 0, 0, 0, 0}},
	} {
		tag := Tag(OptIPAddressLeaseTime)
		err := StoreUint(&o, tag, test.v, test.size)
		if err != nil {
			t.Fatal(err)
		}
		var got [8]byte
		n, _ := o.Fetch(tag, got[:])
		if string(got[:n]) != string(test.want) {
			t.Errorf("%d as %d bytes: want %v, got %v", test.v, test.size, test.want, got[:n])
		}
		v, err := FetchUint(&o, tag)
		if err != nil || v != test.v {
			t.Errorf("want %d, got %d, %v", test.v, v, err)
		}
	}
	for _, test := range []struct {
		v    uint64
		size int
	}{
		{v: 1, size: 3},
		{v: 1, size: 0},
		{v: 256, size: 1},
		{v: 1 << 32, size: 4},
	} {
		err := StoreUint(&o, Tag(OptRenewTimeValue), test.v, test.size)
		if !errors.Is(err, dhcppkt.ErrBadLength) {
			t.Errorf("%d as %d bytes: want ErrBadLength, got %v", test.v, test.size, err)
		}
	}
	if _, err := o.Fetch(Tag(OptRenewTimeValue), nil); !errors.Is(err, dhcppkt.ErrNotFound) {
		t.Error("bad length store modified options")
	}

	mustStore(t, &o, Tag(OptClientIdentifier), make([]byte, 9))
	_, err := FetchUint(&o, Tag(OptClientIdentifier))
	if !errors.Is(err, dhcppkt.ErrBadLength) {
		t.Errorf("want ErrBadLength for 9 byte integer, got %v", err)
	}
}

func TestStoreFetchIPv4(t *testing.T) {
	var o Options
	o.Init(make([]byte, 64))
	addr := [4]byte{192, 168, 0, 1}
	err := StoreIPv4(&o, Tag(OptRouter), addr)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FetchIPv4(&o, Tag(OptRouter))
	if err != nil || got != addr {
		t.Errorf("want %v, got %v, %v", addr, got, err)
	}
	// Multiple routers, first one is returned.
	mustStore(t, &o, Tag(OptRouter), []byte{10, 0, 0, 1, 10, 0, 0, 2})
	got, _ = FetchIPv4(&o, Tag(OptRouter))
	if got != [4]byte{10, 0, 0, 1} {
		t.Errorf("want first router, got %v", got)
	}
	mustStore(t, &o, Tag(OptRouter), []byte{10, 0})
	_, err = FetchIPv4(&o, Tag(OptRouter))
	if !errors.Is(err, dhcppkt.ErrBadLength) {
		t.Errorf("want ErrBadLength for short address, got %v", err)
	}
	_, err = FetchIPv4(&o, Tag(OptSubnetMask))
	if !errors.Is(err, dhcppkt.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestStoreFetchString(t *testing.T) {
	pkt, _ := newTestPacket(t, 512)
	for _, tag := range []Tag{Tag(OptHostName), TagTFTPServerName, TagBootfileName, EncapTag(OptEtherboot, 8)} {
		const want = "boot.example.org"
		err := StoreString(pkt, tag, want)
		if err != nil {
			t.Fatal(err)
		}
		got, err := FetchString(pkt, tag)
		if err != nil || got != want {
			t.Errorf("tag %#x: want %q, got %q, %v", tag, want, got, err)
		}
	}
	err := Clear(pkt, Tag(OptHostName))
	if err != nil {
		t.Fatal(err)
	}
	_, err = FetchString(pkt, Tag(OptHostName))
	if !errors.Is(err, dhcppkt.ErrNotFound) {
		t.Errorf("want ErrNotFound after clear, got %v", err)
	}
	// Clear leaves header fields in place.
	err = Clear(pkt, TagBootfileName)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := FetchString(pkt, TagBootfileName); got == "" {
		t.Error("clear erased header field")
	}
}
