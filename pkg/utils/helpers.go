package utils

import (
	"strconv"
	"strings"
)

// NormalizeMAC lowercases a MAC address and unifies separators to colons.
// Blank input yields an empty string, which never matches a device.
func NormalizeMAC(mac string) string {
	mac = strings.TrimSpace(strings.ToLower(mac))
	if mac == "" {
		return ""
	}
	mac = strings.NewReplacer("-", ":", ".", "").Replace(mac)
	if !strings.Contains(mac, ":") && len(mac) == 12 {
		var b strings.Builder
		for i := 0; i < 12; i += 2 {
			if i > 0 {
				b.WriteByte(':')
			}
			b.WriteString(mac[i : i+2])
		}
		return b.String()
	}
	return mac
}

// FormatSpeed renders a link speed given in Mbps ("10G", "2.5G", "100M")
func FormatSpeed(mbps int) string {
	if mbps <= 0 {
		return "unknown"
	}
	if mbps < 1000 {
		return strconv.Itoa(mbps) + "M"
	}
	return strconv.FormatFloat(float64(mbps)/1000, 'f', -1, 64) + "G"
}

// ContainsFold reports whether s contains substr, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// JoinLimited joins up to limit items and summarizes the rest as "+N"
func JoinLimited(items []string, limit int) string {
	if limit <= 0 || len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + ", +" + strconv.Itoa(len(items)-limit)
}
