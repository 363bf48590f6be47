package inventory

import "context"

// AccessPoint is one managed wireless node as reported by the backing
// controller, with byte-exact memory counters and the single client count
// the controller exposes.
type AccessPoint struct {
	MAC         string
	Name        string
	Firmware    string
	Model       string
	Contact     string
	Latitude    float64
	Longitude   float64
	ClientCount int
	Uptime      int64
	LoadAvg     float64
	MemTotal    int64
	MemUsed     int64
	MemBuffer   int64
}

// Provider lists the current access points. Implementations may block on
// network I/O; callers own retry and caching policy.
type Provider interface {
	AccessPoints(ctx context.Context) ([]AccessPoint, error)
}
