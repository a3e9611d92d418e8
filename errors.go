package dhcppkt

//go:generate stringer -type=errGeneric -linecomment -output stringers.go .

type errGeneric uint8

// Generic errors common to DHCP packet settings access.
const (
	_                  errGeneric = iota // non-initialized err
	ErrNoSpace                           // no space for setting
	ErrNotFound                          // setting not found
	ErrShortPacket                       // short DHCP packet
	ErrInvalidTag                        // invalid setting tag
	ErrMalformedOption                   // malformed DHCP option
	ErrNotInitialized                    // packet not initialized
	ErrBadLength                         // bad setting length
)

func (err errGeneric) Error() string {
	return err.String()
}
