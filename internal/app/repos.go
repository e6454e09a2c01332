package app

import (
	"gorm.io/gorm"

	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/repos"
)

type Repos struct {
	Content repos.ContentRepo
	History repos.HistoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Content: repos.NewContentRepo(db, log),
		History: repos.NewHistoryRepo(db, log),
	}
}
