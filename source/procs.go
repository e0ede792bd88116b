package source

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v3/process"
)

// Processes lists running processes, busiest first. The command line column
// is long and wraps.
type Processes struct{}

func (Processes) Name() string { return "procs" }

func (Processes) Load(ctx context.Context) (Dataset, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("process list: %w", err)
	}

	rows := make([]map[string]any, 0, len(procs))
	for _, p := range procs {
		name, _ := p.NameWithContext(ctx)
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memInfo, _ := p.MemoryInfoWithContext(ctx)
		cmdline, _ := p.CmdlineWithContext(ctx)

		var rss uint64
		if memInfo != nil {
			rss = memInfo.RSS
		}
		rows = append(rows, map[string]any{
			"pid":     p.Pid,
			"name":    name,
			"cpu":     fmt.Sprintf("%.1f", cpuPct),
			"rss":     formatBytes(rss),
			"cmdline": cmdline,
			"cpuPct":  cpuPct,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i]["cpuPct"].(float64) > rows[j]["cpuPct"].(float64)
	})

	return Dataset{
		Name:    "processes",
		Columns: []string{"pid", "name", "cpu", "rss", "cmdline"},
		Rows:    rows,
	}, nil
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
