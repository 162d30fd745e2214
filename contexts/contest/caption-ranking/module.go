package captionranking

import (
	"log/slog"

	httpadapter "giggles/contexts/contest/caption-ranking/adapters/http"
	"giggles/contexts/contest/caption-ranking/adapters/memory"
	"giggles/contexts/contest/caption-ranking/application/commands"
	"giggles/contexts/contest/caption-ranking/application/queries"
	"giggles/contexts/contest/caption-ranking/domain/entities"
	"giggles/contexts/contest/caption-ranking/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Submissions ports.SubmissionLookup
	Audio       ports.AudioIntake
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Publisher   ports.EventPublisher
	Observer    ports.RatingObserver
	ListLimit   int
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Create: commands.CreateCaptionUseCase{
				Repository:  deps.Repository,
				Submissions: deps.Submissions,
				Audio:       deps.Audio,
				Clock:       deps.Clock,
				IDGen:       deps.IDGen,
				Publisher:   deps.Publisher,
				Logger:      deps.Logger,
			},
			Rate: commands.RateCaptionUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Publisher:  deps.Publisher,
				Observer:   deps.Observer,
				Logger:     deps.Logger,
			},
			Flush: commands.FlushUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Queries: queries.CaptionQueryUseCase{
				Repository:  deps.Repository,
				Submissions: deps.Submissions,
				Limit:       deps.ListLimit,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Caption, deps Dependencies) Module {
	store := memory.NewStore(seed)
	deps.Repository = store
	deps.Clock = store
	deps.IDGen = store
	module := NewModule(deps)
	module.Store = store
	return module
}
