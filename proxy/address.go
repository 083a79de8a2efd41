package proxy

import "encoding/hex"

// TRON hex addresses carry a fixed 0x41 version byte ahead of the same
// 20-byte payload that Ethereum addresses use bare.
const tronAddressPrefix = "41"

const ethHexAddressLength = 42 // "0x" + 40 hex chars

// ToTronHexAddress inserts the TRON version byte right after the "0x" marker.
// Anything that is not exactly a 0x-prefixed 20-byte hex string is returned
// unchanged, which also makes already-converted values a no-op; the converter
// never fails.
func ToTronHexAddress(addr string) string {
	if len(addr) != ethHexAddressLength || addr[0] != '0' || addr[1] != 'x' {
		return addr
	}
	if _, err := hex.DecodeString(addr[2:]); err != nil {
		return addr
	}
	return "0x" + tronAddressPrefix + addr[2:]
}
