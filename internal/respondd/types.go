package respondd

// Record is one per-node fragment of a reply, correlated with fragments of
// other kinds through the node identifier.
type Record interface {
	Node() string
}

type FirmwareInfo struct {
	Base    string `json:"base"`
	Release string `json:"release"`
}

type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type HardwareInfo struct {
	Model string `json:"model"`
}

type OwnerInfo struct {
	Contact string `json:"contact"`
}

// NodeInfo is the static identity record of one node.
type NodeInfo struct {
	Firmware FirmwareInfo `json:"firmware"`
	Hostname string       `json:"hostname"`
	NodeID   string       `json:"node_id"`
	Location LocationInfo `json:"location"`
	Hardware HardwareInfo `json:"hardware"`
	Owner    OwnerInfo    `json:"owner"`
}

func (n NodeInfo) Node() string { return n.NodeID }

type ClientInfo struct {
	Total int `json:"total"`
	Wifi  int `json:"wifi"`
}

// MemoryInfo counters are kibibytes.
type MemoryInfo struct {
	Total   int64 `json:"total"`
	Free    int64 `json:"free"`
	Buffers int64 `json:"buffers"`
}

// StatisticsInfo is the live telemetry record of one node.
type StatisticsInfo struct {
	Clients ClientInfo `json:"clients"`
	Uptime  int64      `json:"uptime"`
	NodeID  string     `json:"node_id"`
	LoadAvg float64    `json:"loadavg"`
	Memory  MemoryInfo `json:"memory"`
}

func (s StatisticsInfo) Node() string { return s.NodeID }
