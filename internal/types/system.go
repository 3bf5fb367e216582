package types

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

type (
	// SystemInfo is a point-in-time report of the host the firewall runs on.
	SystemInfo struct {
		Hostname       string  `json:"hostname"`
		OS             string  `json:"os"`
		Platform       string  `json:"platform"`
		UptimeSeconds  uint64  `json:"uptime_seconds"`
		CPUCount       int     `json:"cpu_count"`
		CPUUsedPercent float64 `json:"cpu_used_percent"`
		MemoryTotal    uint64  `json:"memory_total"`
		MemoryUsed     uint64  `json:"memory_used"`
	}
)

// CollectSystemInfo gathers host, cpu and memory stats. Individual probe
// failures leave the corresponding fields zeroed rather than failing the
// whole report.
func CollectSystemInfo() SystemInfo {
	info := SystemInfo{}

	if hi, err := host.Info(); err == nil {
		info.Hostname = hi.Hostname
		info.OS = hi.OS
		info.Platform = hi.Platform
		info.UptimeSeconds = hi.Uptime
	}

	if count, err := cpu.Counts(true); err == nil {
		info.CPUCount = count
	}

	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		info.CPUUsedPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = vm.Total
		info.MemoryUsed = vm.Used
	}

	return info
}
