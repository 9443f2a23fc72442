package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"

	"github.com/bajakarsa/bilahstore/internal/store"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if err := a.bus.Subscribe(store.TopicProductsChanged, func(count int) {
		zap.L().Info("catalog updated", zap.Int("products", count))
	}); err != nil {
		zap.S().Errorf("bus subscribe error %s", err.Error())
	}

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedBackupTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err != nil || len(_cpuuse) == 0 {
		return
	}
	_meminfo, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	zap.L().Debug("system monitor",
		zap.Float64("cpu_percent", _cpuuse[0]),
		zap.Uint64("mem_used_mb", _meminfo.Used/1024/1024))
}

// SchedBackupTask writes a dated snapshot of the product collection.
func (a *Application) SchedBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if a.appConfig.Storage.ReadOnly {
		return
	}
	name := fmt.Sprintf("products-%s.json", time.Now().Format("20060102"))
	path := filepath.Join(a.appConfig.System.Workdir, "backup", name)
	if err := a.pstore.BackupTo(path); err != nil {
		zap.L().Error("catalog backup failed", zap.Error(err))
		return
	}
	zap.L().Info("catalog backup written", zap.String("file", path))
}
