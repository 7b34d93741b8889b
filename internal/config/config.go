package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Device is one configured camera: a name and the capture source the
// snapshot service opens (an RTSP/HTTP URL or a local device index).
type Device struct {
	Name   string
	Source string
}

type Config struct {
	Port              int
	APIKey            string
	APIBaseURL        string
	Model             string
	AnalyzeTimeout    int // seconds, bounds the inference round trip
	Timezone          string
	ImageDirectory    string
	AnalysisDirectory string
	StaticDirectory   string
	LogDirectory      string
	DBPath            string
	Devices           []Device
}

func Load() *Config {
	// Optional; the environment wins over .env values already set.
	_ = godotenv.Load()

	return &Config{
		Port:              getEnvAsInt("PORT", 3120),
		APIKey:            getEnv("CLAUDE_API_KEY", ""),
		APIBaseURL:        getEnv("CLAUDE_API_BASE_URL", "https://api.anthropic.com"),
		Model:             getEnv("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		AnalyzeTimeout:    getEnvAsInt("ANALYZE_TIMEOUT", 60),
		Timezone:          getEnv("TIMEZONE", "America/New_York"),
		ImageDirectory:    getEnv("IMAGE_DIR", filepath.Join(".", "images")),
		AnalysisDirectory: getEnv("ANALYSIS_DIR", filepath.Join(".", "analysis")),
		StaticDirectory:   getEnv("STATIC_DIR", filepath.Join(".", "static")),
		LogDirectory:      getEnv("LOG_DIR", filepath.Join(".", "logs")),
		DBPath:            getEnv("DB_PATH", filepath.Join(".", "street-metrics.db")),
		Devices:           parseDevices(getEnv("DEVICES", "TATAMI=0")),
	}
}

// Device returns the configured device with the given name.
func (c *Config) Device(name string) (Device, bool) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}

// DeviceNames returns configured device names in declaration order.
func (c *Config) DeviceNames() []string {
	names := make([]string, 0, len(c.Devices))
	for _, d := range c.Devices {
		names = append(names, d.Name)
	}
	return names
}

// DefaultDevice is the first configured device, used by the bare /capture route.
func (c *Config) DefaultDevice() string {
	if len(c.Devices) == 0 {
		return "TATAMI"
	}
	return c.Devices[0].Name
}

// DeviceImageDir is where snapshots for a device live.
func (c *Config) DeviceImageDir(name string) string {
	return filepath.Join(c.ImageDirectory, name)
}

// parseDevices parses the DEVICES registry: comma-separated NAME=SOURCE
// entries, e.g. "TATAMI=rtsp://10.0.0.5/stream,CORNER=1".
func parseDevices(raw string) []Device {
	var devices []Device
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, source, found := strings.Cut(entry, "=")
		if !found || name == "" {
			continue
		}
		devices = append(devices, Device{Name: strings.TrimSpace(name), Source: strings.TrimSpace(source)})
	}
	return devices
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
