package submissionqueue

import (
	"log/slog"
	"time"

	httpadapter "giggles/contexts/contest/submission-queue/adapters/http"
	"giggles/contexts/contest/submission-queue/adapters/memory"
	"giggles/contexts/contest/submission-queue/application/commands"
	"giggles/contexts/contest/submission-queue/application/queries"
	"giggles/contexts/contest/submission-queue/domain/entities"
	"giggles/contexts/contest/submission-queue/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository    ports.Repository
	Images        ports.ImageIntake
	Verifiers     map[entities.ReceiptPlatform]ports.ReceiptVerifier
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Publisher     ports.EventPublisher
	Observer      ports.PromotionObserver
	SkipProductID string
	VerifyTimeout time.Duration
	ListLimit     int
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	promoteUseCase := commands.PromoteUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Publisher:  deps.Publisher,
		Observer:   deps.Observer,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Create: commands.CreateSubmissionUseCase{
				Repository: deps.Repository,
				Images:     deps.Images,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Publisher:  deps.Publisher,
				Logger:     deps.Logger,
			},
			Promote: promoteUseCase,
			JumpQueue: commands.JumpQueueUseCase{
				Repository:    deps.Repository,
				Verifiers:     deps.Verifiers,
				SkipProductID: deps.SkipProductID,
				VerifyTimeout: deps.VerifyTimeout,
				Promoter:      promoteUseCase,
				Logger:        deps.Logger,
			},
			Report: commands.ReportSubmissionUseCase{Logger: deps.Logger},
			Flush: commands.FlushUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Queries: queries.SubmissionQueryUseCase{
				Repository: deps.Repository,
				Limit:      deps.ListLimit,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule backs the module with a memory store. Persistence fields
// of deps are overwritten; everything else is used as given.
func NewInMemoryModule(seed []entities.Submission, deps Dependencies) Module {
	store := memory.NewStore(seed)
	deps.Repository = store
	deps.Clock = store
	deps.IDGen = store
	module := NewModule(deps)
	module.Store = store
	return module
}
