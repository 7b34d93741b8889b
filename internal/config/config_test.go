package config

import (
	"testing"
)

func TestParseDevices(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []Device
	}{
		{
			name:     "single device",
			raw:      "TATAMI=rtsp://10.0.0.5/stream",
			expected: []Device{{Name: "TATAMI", Source: "rtsp://10.0.0.5/stream"}},
		},
		{
			name: "multiple devices with spaces",
			raw:  "TATAMI=0, CORNER=rtsp://10.0.0.6/stream",
			expected: []Device{
				{Name: "TATAMI", Source: "0"},
				{Name: "CORNER", Source: "rtsp://10.0.0.6/stream"},
			},
		},
		{
			name:     "source containing equals sign",
			raw:      "TATAMI=http://cam.local/snap?auth=abc",
			expected: []Device{{Name: "TATAMI", Source: "http://cam.local/snap?auth=abc"}},
		},
		{
			name:     "malformed entries skipped",
			raw:      "TATAMI=0,,nosource,=orphan",
			expected: []Device{{Name: "TATAMI", Source: "0"}},
		},
		{
			name:     "empty registry",
			raw:      "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := parseDevices(tt.raw)
			if len(devices) != len(tt.expected) {
				t.Fatalf("parseDevices(%q) returned %d devices, expected %d", tt.raw, len(devices), len(tt.expected))
			}
			for i, d := range devices {
				if d != tt.expected[i] {
					t.Errorf("Device %d = %+v, expected %+v", i, d, tt.expected[i])
				}
			}
		})
	}
}

func TestDeviceLookup(t *testing.T) {
	cfg := &Config{Devices: []Device{
		{Name: "TATAMI", Source: "0"},
		{Name: "CORNER", Source: "1"},
	}}

	if d, ok := cfg.Device("CORNER"); !ok || d.Source != "1" {
		t.Errorf("Device(CORNER) = %+v, %v", d, ok)
	}
	if _, ok := cfg.Device("UNKNOWN"); ok {
		t.Error("Device(UNKNOWN) should not be found")
	}
	if got := cfg.DefaultDevice(); got != "TATAMI" {
		t.Errorf("DefaultDevice() = %q, expected TATAMI", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port == 0 {
		t.Error("Port should have a default")
	}
	if cfg.Timezone == "" {
		t.Error("Timezone should have a default")
	}
	if cfg.AnalyzeTimeout <= 0 {
		t.Error("AnalyzeTimeout should have a positive default")
	}
	if len(cfg.Devices) == 0 {
		t.Error("Devices should have a default registry")
	}
}
