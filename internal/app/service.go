package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service 可被统一托管的长驻服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// group 一组服务的统一生命周期管理
type group struct {
	services []Service
}

func newGroup(services ...Service) *group {
	return &group{services: services}
}

// Run 并发启动所有服务，任一退出或收到信号后统一停机
func (g *group) Run(opts Options) error {
	if g == nil || len(g.services) == 0 {
		return errors.New("no services to run")
	}
	opts = opts.withDefaults()

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(g.services))
	for _, svc := range g.services {
		go g.startOne(ctx, svc, opts.Logger, errCh)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-errCh:
		runErr = err
	}
	cancel()

	g.stopAll(opts.ShutdownTimeout, opts.Logger)

	// 信号触发的退出属于正常停机
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (g *group) startOne(ctx context.Context, svc Service, log *zap.SugaredLogger, errCh chan<- error) {
	if svc == nil {
		errCh <- errors.New("service is nil")
		return
	}
	if log != nil {
		log.Infow("service_start", "service", svc.Name())
	}
	errCh <- svc.Start(ctx)
	if log != nil {
		log.Infow("service_exit", "service", svc.Name())
	}
}

// stopAll 按注册顺序停机，先停 HTTP 停止接收新请求，再停队列 worker
func (g *group) stopAll(timeout time.Duration, log *zap.SugaredLogger) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), timeout)
	defer stopCancel()

	for _, svc := range g.services {
		if svc == nil {
			continue
		}
		if err := svc.Stop(stopCtx); err != nil {
			if log != nil {
				log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			}
		}
	}
}
