package model

// Health is the display bucket a status falls into.
type Health int

const (
	HealthDefault Health = iota
	HealthHealthy
	HealthCaution
	HealthDormant
)

func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "healthy"
	case HealthCaution:
		return "caution"
	case HealthDormant:
		return "dormant"
	default:
		return "default"
	}
}

// Healths lists every bucket in display order.
var Healths = []Health{HealthHealthy, HealthCaution, HealthDormant, HealthDefault}

// HealthOf maps a single status. Matching is exact and case sensitive.
func HealthOf(s Status) Health {
	switch s {
	case StatusActive, StatusConnected, StatusOK:
		return HealthHealthy
	case StatusPaused:
		return HealthCaution
	case StatusInactive:
		return HealthDormant
	default:
		return HealthDefault
	}
}

// ResolveHealth applies the status/lastStatus precedence: a present status
// decides alone, otherwise lastStatus, otherwise the default bucket.
func ResolveHealth(status, lastStatus Status) Health {
	if !status.IsZero() {
		return HealthOf(status)
	}
	if !lastStatus.IsZero() {
		return HealthOf(lastStatus)
	}
	return HealthDefault
}

// Palette hex values, shared by the terminal view and every exporter.
const (
	HexHealthy = "#00ff88"
	HexCaution = "#ffaa00"
	HexDormant = "#666666"
	HexDefault = "#00ffff"
)

// Hex returns the palette colour for h.
func (h Health) Hex() string {
	switch h {
	case HealthHealthy:
		return HexHealthy
	case HealthCaution:
		return HexCaution
	case HealthDormant:
		return HexDormant
	default:
		return HexDefault
	}
}
