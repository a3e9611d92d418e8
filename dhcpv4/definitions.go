package dhcpv4

//go:generate stringer -type=Op,MessageType -linecomment -output stringers.go

// OptNum is a DHCP option number as it appears on the wire.
type OptNum uint8

// DHCP options. Taken from https://help.sonicwall.com/help/sw/eng/6800/26/2/3/content/Network_DHCP_Server.042.12.htm.
const (
	OptPad                         OptNum = 0   // pad
	OptSubnetMask                  OptNum = 1   // subnet mask
	OptTimeOffset                  OptNum = 2   // Time offset in seconds from UTC
	OptRouter                      OptNum = 3   // N/4 router addresses
	OptTimeServers                 OptNum = 4   // N/4 time server addresses
	OptNameServers                 OptNum = 5   // N/4 IEN-116 server addresses
	OptDNSServers                  OptNum = 6   // N/4 DNS server addresses
	OptLogServers                  OptNum = 7   // N/4 logging server addresses
	OptCookieServers               OptNum = 8   // N/4 quote server addresses
	OptLPRServers                  OptNum = 9   // N/4 printer server addresses
	OptImpressServers              OptNum = 10  // N/4 impress server addresses
	OptRLPServers                  OptNum = 11  // N/4 RLP server addresses
	OptHostName                    OptNum = 12  // Hostname string
	OptBootFileSize                OptNum = 13  // Size of boot file in 512 byte chunks
	OptMeritDumpFile               OptNum = 14  // Client to dump and name of file to dump to
	OptDomainName                  OptNum = 15  // The DNS domain name of the client
	OptSwapServer                  OptNum = 16  // Swap server addresses
	OptRootPath                    OptNum = 17  // Path name for root disk
	OptExtensionFile               OptNum = 18  // Patch name for more BOOTP info
	OptIPLayerForwarding           OptNum = 19  // Enable or disable IP forwarding
	OptSrcrouteenabler             OptNum = 20  // Enable or disable source routing
	OptPolicyFilter                OptNum = 21  // Routing policy filters
	OptMaximumDGReassemblySize     OptNum = 22  // Maximum datagram reassembly size
	OptDefaultIPTTL                OptNum = 23  // Default IP time-to-live
	OptPathMTUAgingTimeout         OptNum = 24  // Path MTU aging timeout
	OptMTUPlateau                  OptNum = 25  // Path MTU plateau table
	OptInterfaceMTUSize            OptNum = 26  // Interface MTU size
	OptAllSubnetsAreLocal          OptNum = 27  // All subnets are local
	OptBroadcastAddress            OptNum = 28  // Broadcast address
	OptPerformMaskDiscovery        OptNum = 29  // Perform mask discovery
	OptProvideMasktoOthers         OptNum = 30  // Provide mask to others
	OptPerformRouterDiscovery      OptNum = 31  // Perform router discovery
	OptRouterSolicitationAddress   OptNum = 32  // Router solicitation address
	OptStaticRoutingTable          OptNum = 33  // Static routing table
	OptTrailerEncapsulation        OptNum = 34  // Trailer encapsulation
	OptARPCacheTimeout             OptNum = 35  // ARP cache timeout
	OptEthernetEncapsulation       OptNum = 36  // Ethernet encapsulation
	OptDefaultTCPTimetoLive        OptNum = 37  // Default TCP time to live
	OptTCPKeepaliveInterval        OptNum = 38  // TCP keepalive interval
	OptTCPKeepaliveGarbage         OptNum = 39  // TCP keepalive garbage
	OptNISDomainName               OptNum = 40  // NIS domain name
	OptNISServerAddresses          OptNum = 41  // NIS server addresses
	OptNTPServersAddresses         OptNum = 42  // NTP servers addresses
	OptVendorSpecificInformation   OptNum = 43  // Vendor specific information
	OptNetBIOSNameServer           OptNum = 44  // NetBIOS name server
	OptNetBIOSDatagramDistribution OptNum = 45  // NetBIOS datagram distribution
	OptNetBIOSNodeType             OptNum = 46  // NetBIOS node type
	OptNetBIOSScope                OptNum = 47  // NetBIOS scope
	OptXWindowFontServer           OptNum = 48  // X window font server
	OptXWindowDisplayManager       OptNum = 49  // X window display manager
	OptRequestedIPaddress          OptNum = 50  // Requested IP address
	OptIPAddressLeaseTime          OptNum = 51  // IP address lease time
	OptOptionOverload              OptNum = 52  // Overload “sname” or “file”
	OptMessageType                 OptNum = 53  // DHCP message type.
	OptServerIdentification        OptNum = 54  // DHCP server identification
	OptParameterRequestList        OptNum = 55  // Parameter request list
	OptMessage                     OptNum = 56  // DHCP error message
	OptMaximumMessageSize          OptNum = 57  // DHCP maximum message size
	OptRenewTimeValue              OptNum = 58  // DHCP renewal (T1) time
	OptRebindingTimeValue          OptNum = 59  // DHCP rebinding (T2) time
	OptClassIdentifier             OptNum = 60  // Vendor class identifier
	OptClientIdentifier            OptNum = 61  // Client identifier
	OptTFTPServerName              OptNum = 66  // TFTP server name
	OptBootfileName                OptNum = 67  // Bootfile name
	OptUserClass                   OptNum = 77  // User class information
	OptRelayAgentInformation       OptNum = 82  // Relay agent information
	OptClientArchitecture          OptNum = 93  // Client system architecture
	OptDomainSearch                OptNum = 119 // Domain search list
	OptClasslessStaticRoute        OptNum = 121 // Classless static routes
	OptEtherboot                   OptNum = 175 // Etherboot encapsulated options
	OptEnd                         OptNum = 255 // end of options
)

// Tag identifies a setting stored in a DHCP packet. Tags share a single
// namespace between dedicated header fields and options. A plain option's
// tag is its option number. Encapsulated options carry the encapsulating
// option number in the high byte and the sub-option number in the low byte.
type Tag uint16

// EncapTag returns the tag of sub-option sub encapsulated within option encap.
func EncapTag(encap, sub OptNum) Tag { return Tag(encap)<<8 | Tag(sub) }

// Encapsulator returns the encapsulating option number, or zero if the tag
// is not encapsulated.
func (t Tag) Encapsulator() OptNum { return OptNum(t >> 8) }

// Encapsulated returns the option number within its encapsulator. For plain
// options this is the option number itself.
func (t Tag) Encapsulated() OptNum { return OptNum(t) }

// IsEncap returns true if the tag refers to an encapsulated sub-option.
func (t Tag) IsEncap() bool { return t.Encapsulator() != 0 }

// storable returns true if the tag can be represented as an option in the options block.
func (t Tag) storable() bool {
	sub := t.Encapsulated()
	if sub == OptPad || sub == OptEnd {
		return false
	}
	return !t.IsEncap() || t.Encapsulator() != OptEnd
}

// Tags of settings held in dedicated fields of the DHCP header.
const (
	// TagYIAddr is the "your" IP address field, the address assigned to the client.
	TagYIAddr Tag = Tag(OptEtherboot)<<8 | 1
	// TagSIAddr is the next server IP address field.
	TagSIAddr Tag = Tag(OptEtherboot)<<8 | 3
	// TagTFTPServerName is the legacy BOOTP server host name field (sname).
	TagTFTPServerName Tag = Tag(OptTFTPServerName)
	// TagBootfileName is the legacy BOOTP boot file name field (file).
	TagBootfileName Tag = Tag(OptBootfileName)
)

type Op byte

const (
	opUndefined Op = iota // undefined
	OpRequest             // request
	OpReply               // reply
)

type MessageType uint8

const (
	msgUndefined MessageType = iota // undefined
	MsgDiscover                     // discover
	MsgOffer                        // offer
	MsgRequest                      // request
	MsgDecline                      // decline
	MsgAck                          // ack
	MsgNack                         // nak
	MsgRelease                      // release
	MsgInform                       // inform
)

type Flags uint16

// Broadcast returns true if the client requested replies be broadcast.
func (f Flags) Broadcast() bool { return f&0x8000 != 0 }

// Hardware types. See RFC 1700 ARP section.
const (
	HTypeEthernet uint8 = 1
	HLenEthernet  uint8 = 6
	maxHLen             = 16
)
