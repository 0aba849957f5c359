package app

import (
	"errors"

	"github.com/healer-next/internal/provider"
	"github.com/healer-next/internal/router"
	"github.com/healer-next/internal/worker"
)

// buildServices 按启动模式组装本进程要运行的服务
func buildServices(opts Options) ([]Service, error) {
	container := provider.NewContainer(opts.Config)

	var services []Service

	if opts.wantsAPI() {
		engine := router.SetupRouter(opts.Config, container)
		addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if opts.wantsWorker() {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&opts.Config.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errors.New("no services for mode " + opts.Mode)
	}
	return services, nil
}

// Run 进程入口，启动服务并阻塞到退出信号或任一服务出错
func Run(opts Options) error {
	opts = opts.withDefaults()
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	services, err := buildServices(opts)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Host+":"+opts.Config.Server.Port,
		"mode", opts.Mode,
		"services", len(services),
	)
	return newGroup(services...).Run(opts)
}
