package deviceregistry

import (
	"log/slog"

	httpadapter "giggles/contexts/contest/device-registry/adapters/http"
	"giggles/contexts/contest/device-registry/adapters/memory"
	"giggles/contexts/contest/device-registry/application/commands"
	"giggles/contexts/contest/device-registry/application/queries"
	"giggles/contexts/contest/device-registry/domain/entities"
	"giggles/contexts/contest/device-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Register: commands.RegisterTokenUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Flush: commands.FlushUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Queries: queries.DeviceQueryUseCase{Repository: deps.Repository},
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Device, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
