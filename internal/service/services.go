package service

import (
	"github.com/raceboard/backend/internal/lib/job"
	"github.com/raceboard/backend/internal/repository"
	"github.com/raceboard/backend/internal/server"
)

type Services struct {
	Auth            *AuthService
	DriverDocuments *DriverDocumentService
	Catalog         *CatalogService
	Job             *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(
		repos.Users,
		repos.Sessions,
		repos.Codes,
		s.Job,
		s.Tokens,
		s.Config.Auth,
		s.Logger,
	)

	return &Services{
		Auth:            authService,
		DriverDocuments: NewDriverDocumentService(repos.DriverDocuments),
		Catalog:         NewCatalogService(repos.DriverRecords, repos.LocationConfigs, repos.Classifiers, repos.Events),
		Job:             s.Job,
	}, nil
}
