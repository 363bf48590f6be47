package config

import (
	"fmt"
	"net"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMulticastAddress = "ff05::2:1001"
	DefaultMulticastPort    = 1001
	DefaultSite             = "default"
	DefaultTimeoutSec       = 10
)

// Config holds the responder and controller settings.
type Config struct {
	Respondd   *ResponddConfig   `yaml:"respondd"`
	Controller *ControllerConfig `yaml:"controller"`
}

// ResponddConfig configures the multicast listener.
type ResponddConfig struct {
	Interface        string `yaml:"interface"`
	MulticastAddress string `yaml:"multicast_address"`
	MulticastPort    int    `yaml:"multicast_port"`
	Verbose          bool   `yaml:"verbose"`
}

// ControllerConfig configures the UniFi controller the inventory is read
// from, plus fields the controller itself cannot supply (contact and GPS
// position are per-deployment, not per-device).
type ControllerConfig struct {
	URL                string  `yaml:"url"`
	Username           string  `yaml:"username"`
	Password           string  `yaml:"password"`
	Site               string  `yaml:"site"`
	InsecureSkipVerify bool    `yaml:"insecure_skip_verify"`
	TimeoutSec         int     `yaml:"timeout_sec"`
	Contact            string  `yaml:"contact"`
	Latitude           float64 `yaml:"latitude"`
	Longitude          float64 `yaml:"longitude"`
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	ApplyDefaults(&cfg)
	return cfg, nil
}

// Validate performs minimal validation for required fields.
func Validate(cfg Config) error {
	if cfg.Respondd == nil {
		return fmt.Errorf("config must contain a respondd section")
	}
	if cfg.Respondd.Interface == "" {
		return fmt.Errorf("respondd.interface is required")
	}
	group := net.ParseIP(cfg.Respondd.MulticastAddress)
	if group == nil || group.To4() != nil || !group.IsMulticast() {
		return fmt.Errorf("respondd.multicast_address %q is not an IPv6 multicast address", cfg.Respondd.MulticastAddress)
	}
	if cfg.Respondd.MulticastPort <= 0 || cfg.Respondd.MulticastPort > 65535 {
		return fmt.Errorf("respondd.multicast_port %d out of range", cfg.Respondd.MulticastPort)
	}
	if cfg.Controller == nil {
		return fmt.Errorf("config must contain a controller section")
	}
	if cfg.Controller.URL == "" {
		return fmt.Errorf("controller.url is required")
	}
	if cfg.Controller.Username == "" || cfg.Controller.Password == "" {
		return fmt.Errorf("controller.username and controller.password are required")
	}
	return nil
}

// ApplyDefaults fills in default values when empty.
func ApplyDefaults(cfg *Config) {
	if cfg.Respondd != nil {
		if cfg.Respondd.MulticastAddress == "" {
			cfg.Respondd.MulticastAddress = DefaultMulticastAddress
		}
		if cfg.Respondd.MulticastPort == 0 {
			cfg.Respondd.MulticastPort = DefaultMulticastPort
		}
	}

	if cfg.Controller != nil {
		if cfg.Controller.Site == "" {
			cfg.Controller.Site = DefaultSite
		}
		if cfg.Controller.TimeoutSec == 0 {
			cfg.Controller.TimeoutSec = DefaultTimeoutSec
		}
	}
}
