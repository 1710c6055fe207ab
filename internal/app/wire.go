//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/studyhub/internal/adapter/connectrpc"
	"github.com/eslsoft/studyhub/internal/adapter/repository"
	"github.com/eslsoft/studyhub/internal/adapter/rest"
	"github.com/eslsoft/studyhub/internal/infrastructure/config"
	"github.com/eslsoft/studyhub/internal/infrastructure/database"
	"github.com/eslsoft/studyhub/internal/infrastructure/sanitize"
	"github.com/eslsoft/studyhub/internal/infrastructure/scheduler"
	"github.com/eslsoft/studyhub/internal/infrastructure/server"
	domain "github.com/eslsoft/studyhub/internal/repository"
	"github.com/eslsoft/studyhub/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
	providePageLimits,
)

var databaseSet = wire.NewSet(
	database.NewDriver,
	repository.NewStore,
	wire.Bind(new(domain.Transactor), new(*repository.Store)),
)

var repositorySet = wire.NewSet(
	repository.NewDeckRepository,
	repository.NewFlashcardRepository,
	repository.NewReviewRepository,
	repository.NewDailyProgressRepository,
	repository.NewStudySessionRepository,
)

var usecaseSet = wire.NewSet(
	sanitize.NewHTMLSanitizer,
	wire.Bind(new(usecase.ContentSanitizer), new(*sanitize.HTMLSanitizer)),
	usecase.NewDeckUsecase,
	usecase.NewFlashcardUsecase,
	usecase.NewReviewUsecase,
	usecase.NewProgressUsecase,
	usecase.NewStudySessionUsecase,
)

var serviceSet = wire.NewSet(
	rest.NewHandler,
	connectrpc.NewReviewServiceServer,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
	scheduler.New,
	wire.Bind(new(scheduler.StreakRefresher), new(usecase.ProgressUsecase)),
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
