package system_healthcheck

import (
	"fmt"

	"projectdesk/internal/config"
	"projectdesk/internal/storage"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// minFreeDiskPercent is the floor before the instance reports itself
// unhealthy; a full disk takes Postgres down with it.
const minFreeDiskPercent = 5.0

type HealthcheckService struct{}

type HealthStatus struct {
	Healthy           bool    `json:"healthy"`
	DatabaseReachable bool    `json:"databaseReachable"`
	FreeDiskPercent   float64 `json:"freeDiskPercent"`
	UsedMemoryPercent float64 `json:"usedMemoryPercent"`
	UnhealthyReason   string  `json:"unhealthyReason,omitempty"`
}

func (s *HealthcheckService) CheckHealth() *HealthStatus {
	status := &HealthStatus{Healthy: true}

	if config.IsShuttingDown() {
		status.Healthy = false
		status.UnhealthyReason = "instance is shutting down"
	}

	status.DatabaseReachable = s.checkDatabase()
	if !status.DatabaseReachable {
		status.Healthy = false
		status.UnhealthyReason = "database is not reachable"
	}

	if usage, err := disk.Usage("/"); err == nil {
		status.FreeDiskPercent = 100.0 - usage.UsedPercent
		if status.FreeDiskPercent < minFreeDiskPercent {
			status.Healthy = false
			status.UnhealthyReason = fmt.Sprintf(
				"free disk space below %.0f%%",
				minFreeDiskPercent,
			)
		}
	}

	if memory, err := mem.VirtualMemory(); err == nil {
		status.UsedMemoryPercent = memory.UsedPercent
	}

	return status
}

func (s *HealthcheckService) checkDatabase() bool {
	db := storage.GetDb()

	sqlDb, err := db.DB()
	if err != nil {
		return false
	}

	return sqlDb.Ping() == nil
}
