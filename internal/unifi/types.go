package unifi

import "encoding/json"

// Device is one entry of the controller's stat/device listing. Only the
// fields the responder consumes are mapped; access points report
// type "uap".
type Device struct {
	ID       string   `json:"_id"`
	MAC      string   `json:"mac"`
	Name     string   `json:"name"`
	Model    string   `json:"model"`
	Type     string   `json:"type"`
	Version  string   `json:"version"`
	Adopted  bool     `json:"adopted"`
	State    int      `json:"state"`
	IP       string   `json:"ip"`
	Uptime   int64    `json:"uptime"`
	NumSta   int      `json:"num_sta"`
	SysStats SysStats `json:"sys_stats"`
}

// SysStats carries the device's runtime counters. The controller encodes
// loadavg_1 as a decimal string, memory counters as byte counts.
type SysStats struct {
	LoadAvg1  json.Number `json:"loadavg_1"`
	MemTotal  int64       `json:"mem_total"`
	MemUsed   int64       `json:"mem_used"`
	MemBuffer int64       `json:"mem_buffer"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type deviceResponse struct {
	Meta struct {
		RC  string `json:"rc"`
		Msg string `json:"msg"`
	} `json:"meta"`
	Data []Device `json:"data"`
}
