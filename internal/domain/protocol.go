package domain

import "fmt"

// Protocol identifies the pricing formula of a liquidity protocol.
type Protocol uint8

const (
	// ProtocolSoroswap is the default constant-product formula with a 0.3%
	// fee taken from the input side.
	ProtocolSoroswap Protocol = iota
	// ProtocolPhoenix taxes the output side; the tax is burned from the
	// pool's tracked reserve.
	ProtocolPhoenix
	// ProtocolAquarius charges its fee on the output side.
	ProtocolAquarius
)

func (p Protocol) String() string {
	switch p {
	case ProtocolSoroswap:
		return "soroswap"
	case ProtocolPhoenix:
		return "phoenix"
	case ProtocolAquarius:
		return "aquarius"
	default:
		return "UNKNOWN"
	}
}

// ParseProtocol maps a protocol name onto its enum value.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "soroswap":
		return ProtocolSoroswap, nil
	case "phoenix":
		return ProtocolPhoenix, nil
	case "aquarius":
		return ProtocolAquarius, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, s)
	}
}

// TradeType selects which side of a trade is fixed.
type TradeType uint8

const (
	ExactInput TradeType = iota
	ExactOutput
)

func (t TradeType) String() string {
	if t == ExactInput {
		return "EXACT_INPUT"
	}
	return "EXACT_OUTPUT"
}
