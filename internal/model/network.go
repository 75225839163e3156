package model

import "strings"

// Network is the ledger network targeted by the session.
type Network string

const (
	NetworkBetanet Network = "betanet"
	NetworkTestnet Network = "testnet"
	NetworkMainnet Network = "mainnet"
)

// Networks lists the selectable networks in display order.
var Networks = []Network{NetworkBetanet, NetworkTestnet, NetworkMainnet}

// ParseNetwork parses a network name, ignoring case and surrounding spaces.
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", Errorf(KindInvalidNetwork, "unknown network %q", s)
	}
	return n, nil
}

// Valid reports whether n is one of the known networks.
func (n Network) Valid() bool {
	switch n {
	case NetworkBetanet, NetworkTestnet, NetworkMainnet:
		return true
	}
	return false
}

func (n Network) String() string {
	return string(n)
}
