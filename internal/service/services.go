package service

import (
	"github.com/MKhiriev/go-bookmarks/internal/broker"
	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/store"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
)

type Services struct {
	AuthService     AuthService
	BookmarkService BookmarkService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, b broker.Broker, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	bookmarks := NewBookmarkService(storages.BookmarkRepository, b, utils.NewUUIDGenerator(), logger)

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		BookmarkService: NewBookmarkValidationService().Wrap(bookmarks),
		AppInfoService:  appInfo,
	}, nil
}
