package models

// Counter keys produced by the /proc/net/dev reader.
const (
	KeyRxBytes   = "rx_bytes"
	KeyRxPackets = "rx_pack"
	KeyRxErrors  = "rx_err"
	KeyRxDrops   = "rx_drop"
	KeyTxBytes   = "tx_bytes"
	KeyTxPackets = "tx_pack"
	KeyTxErrors  = "tx_err"
	KeyTxDrops   = "tx_drop"

	KeyBitRate = "bit_rate"
)

// UnknownBitRate is reported when the link rate can't be determined.
const UnknownBitRate = "- Mb/s"

// InterfaceInfo holds per-interface counters. Byte counts are in bytes,
// packet, error and drop counts are raw.
type InterfaceInfo struct {
	RxPackets int64  `json:"rx_pack"`
	RxBytes   int64  `json:"rx_bytes"`
	RxErrors  int64  `json:"rx_err"`
	RxDrops   int64  `json:"rx_drop"`
	TxPackets int64  `json:"tx_pack"`
	TxBytes   int64  `json:"tx_bytes"`
	TxErrors  int64  `json:"tx_err"`
	TxDrops   int64  `json:"tx_drop"`
	BitRate   string `json:"bit_rate"`
}

// NewInterfaceInfo builds an InterfaceInfo from raw counters and extra
// link data. Missing counters are Unknown.
func NewInterfaceInfo(counters map[string]int64, extra map[string]string) *InterfaceInfo {
	get := func(key string) int64 {
		if v, ok := counters[key]; ok {
			return v
		}
		return Unknown
	}

	iface := &InterfaceInfo{
		RxPackets: get(KeyRxPackets),
		RxBytes:   get(KeyRxBytes),
		RxErrors:  get(KeyRxErrors),
		RxDrops:   get(KeyRxDrops),
		TxPackets: get(KeyTxPackets),
		TxBytes:   get(KeyTxBytes),
		TxErrors:  get(KeyTxErrors),
		TxDrops:   get(KeyTxDrops),
		BitRate:   UnknownBitRate,
	}
	if rate := extra[KeyBitRate]; rate != "" {
		iface.BitRate = rate
	}

	return iface
}

// AsMap converts the interface counters to the API payload. Only byte
// counts are converted to unit.
func (i *InterfaceInfo) AsMap(unit string) map[string]any {
	return map[string]any{
		KeyRxPackets: i.RxPackets,
		KeyRxBytes:   AsUnit(i.RxBytes, unit),
		KeyRxErrors:  i.RxErrors,
		KeyRxDrops:   i.RxDrops,
		KeyTxPackets: i.TxPackets,
		KeyTxBytes:   AsUnit(i.TxBytes, unit),
		KeyTxErrors:  i.TxErrors,
		KeyTxDrops:   i.TxDrops,
		KeyBitRate:   i.BitRate,
	}
}
