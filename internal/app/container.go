package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/adapter/repository"
	"github.com/eslsoft/studyhub/internal/infrastructure/config"
	"github.com/eslsoft/studyhub/internal/infrastructure/scheduler"
	"github.com/eslsoft/studyhub/internal/infrastructure/server"
	"github.com/eslsoft/studyhub/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Store     *repository.Store
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Decks     usecase.DeckUsecase
	Cards     usecase.FlashcardUsecase
}

func providePageLimits(cfg *config.Config) mapping.PageLimits {
	return mapping.PageLimits{Default: cfg.API.DefaultPageSize, Max: cfg.API.MaxPageSize}
}
