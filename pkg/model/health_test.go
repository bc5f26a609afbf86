package model

import "testing"

func TestHealthOf(t *testing.T) {
	tests := []struct {
		status Status
		want   Health
	}{
		{StatusActive, HealthHealthy},
		{StatusConnected, HealthHealthy},
		{StatusOK, HealthHealthy},
		{StatusPaused, HealthCaution},
		{StatusInactive, HealthDormant},
		{"Active", HealthDefault},
		{"OK", HealthDefault},
		{"error", HealthDefault},
		{"", HealthDefault},
	}
	for _, tt := range tests {
		if got := HealthOf(tt.status); got != tt.want {
			t.Errorf("HealthOf(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestResolveHealthPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		status     Status
		lastStatus Status
		want       Health
	}{
		{"status only", StatusPaused, "", HealthCaution},
		{"last status only", "", StatusOK, HealthHealthy},
		{"status wins", StatusInactive, StatusOK, HealthDormant},
		{"unknown status still wins", "weird", StatusOK, HealthDefault},
		{"neither", "", "", HealthDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveHealth(tt.status, tt.lastStatus); got != tt.want {
				t.Errorf("ResolveHealth(%q, %q) = %v, want %v", tt.status, tt.lastStatus, got, tt.want)
			}
		})
	}
}

func TestHealthHex(t *testing.T) {
	want := map[Health]string{
		HealthHealthy: "#00ff88",
		HealthCaution: "#ffaa00",
		HealthDormant: "#666666",
		HealthDefault: "#00ffff",
	}
	for h, hex := range want {
		if h.Hex() != hex {
			t.Errorf("%v.Hex() = %s, want %s", h, h.Hex(), hex)
		}
	}
}
