package service

import (
	"github.com/doublemix/msche-team-visit/internal/service/browse"
	"github.com/doublemix/msche-team-visit/internal/service/importer"
)

type Services struct {
	ImporterService *importer.ImporterService
	BrowseService   *browse.BrowseService
}
