package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// SysStatsMsg carries a sampled host load for the status bar.
type SysStatsMsg sysStats

const sysStatsInterval = 2 * time.Second

func sampleSysStats() tea.Msg {
	var stats SysStatsMsg
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.cpuPercent = percents[0]
		stats.valid = true
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.memPercent = vm.UsedPercent
	} else {
		stats.valid = false
	}
	return stats
}

// SysStatsCmd samples host load once, immediately.
func SysStatsCmd() tea.Cmd {
	return sampleSysStats
}

// SysStatsTickCmd schedules the next host load sample.
func SysStatsTickCmd() tea.Cmd {
	return tea.Tick(sysStatsInterval, func(time.Time) tea.Msg {
		return sampleSysStats()
	})
}
