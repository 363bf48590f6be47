package respondd

import (
	"strings"

	"github.com/k3v1n-eu/unifi-respondd/internal/inventory"
)

// NodeID derives the canonical node identifier from a hardware address:
// separators stripped, lowercased. Consumers correlate records by exact
// string match, so both record kinds must use this one derivation.
func NodeID(mac string) string {
	return strings.ToLower(strings.ReplaceAll(mac, ":", ""))
}

// NodeInfos maps every access point to its identity record.
func NodeInfos(aps []inventory.AccessPoint) []Record {
	records := make([]Record, 0, len(aps))
	for _, ap := range aps {
		records = append(records, NodeInfo{
			Firmware: FirmwareInfo{Base: ap.Firmware},
			Hostname: ap.Name,
			NodeID:   NodeID(ap.MAC),
			Location: LocationInfo{Latitude: ap.Latitude, Longitude: ap.Longitude},
			Hardware: HardwareInfo{Model: ap.Model},
			Owner:    OwnerInfo{Contact: ap.Contact},
		})
	}
	return records
}

// Statistics maps every access point to its telemetry record. Memory
// counters arrive as bytes and go out as kibibytes, truncated. Only
// wireless clients are tracked upstream, so wifi equals total.
func Statistics(aps []inventory.AccessPoint) []Record {
	records := make([]Record, 0, len(aps))
	for _, ap := range aps {
		records = append(records, StatisticsInfo{
			Clients: ClientInfo{Total: ap.ClientCount, Wifi: ap.ClientCount},
			Uptime:  ap.Uptime,
			NodeID:  NodeID(ap.MAC),
			LoadAvg: ap.LoadAvg,
			Memory: MemoryInfo{
				Total:   ap.MemTotal / 1024,
				Free:    (ap.MemTotal - ap.MemUsed) / 1024,
				Buffers: ap.MemBuffer / 1024,
			},
		})
	}
	return records
}
