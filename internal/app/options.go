package app

import (
	"os"
	"time"

	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/logger"

	"go.uber.org/zap"
)

// 进程可以只跑 API、只跑配送 worker，或二者同进程
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Options 进程启动参数
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// withDefaults 为未填写的字段补默认值
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = 10 * time.Second
	}
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	return o
}

// wantsAPI 是否需要启动 HTTP API
func (o Options) wantsAPI() bool {
	return o.Mode == ModeAll || o.Mode == ModeAPI
}

// wantsWorker 是否需要启动队列 worker
func (o Options) wantsWorker() bool {
	return o.Mode == ModeAll || o.Mode == ModeWorker
}
