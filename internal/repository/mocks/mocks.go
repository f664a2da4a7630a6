package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/runlog"
	"github.com/lumafolio/studio-core/internal/domain/shotlist"
	"github.com/lumafolio/studio-core/internal/repository"
)

// ShotListRepository is a mock for repository.ShotListRepository.
type ShotListRepository struct {
	mock.Mock
}

func (m *ShotListRepository) Create(ctx context.Context, tenantID string, list *shotlist.ShotList) error {
	args := m.Called(ctx, tenantID, list)
	return args.Error(0)
}

func (m *ShotListRepository) Get(ctx context.Context, tenantID, id string) (*shotlist.ShotList, error) {
	args := m.Called(ctx, tenantID, id)
	if list, ok := args.Get(0).(*shotlist.ShotList); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ShotListRepository) GetByShoot(ctx context.Context, tenantID, shootID string) (*shotlist.ShotList, error) {
	args := m.Called(ctx, tenantID, shootID)
	if list, ok := args.Get(0).(*shotlist.ShotList); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ShotListRepository) Update(ctx context.Context, tenantID string, list *shotlist.ShotList) error {
	args := m.Called(ctx, tenantID, list)
	return args.Error(0)
}

// GalleryRepository is a mock for repository.GalleryRepository.
type GalleryRepository struct {
	mock.Mock
}

func (m *GalleryRepository) Create(ctx context.Context, tenantID string, g *gallery.Gallery) error {
	args := m.Called(ctx, tenantID, g)
	return args.Error(0)
}

func (m *GalleryRepository) Get(ctx context.Context, tenantID, id string) (*gallery.Gallery, error) {
	args := m.Called(ctx, tenantID, id)
	if g, ok := args.Get(0).(*gallery.Gallery); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GalleryRepository) List(ctx context.Context, tenantID string) ([]repository.GallerySummary, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]repository.GallerySummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GalleryRepository) SaveCurationRun(ctx context.Context, tenantID string, g *gallery.Gallery, photos []*gallery.Photo) error {
	args := m.Called(ctx, tenantID, g, photos)
	return args.Error(0)
}

// PhotoRepository is a mock for repository.PhotoRepository.
type PhotoRepository struct {
	mock.Mock
}

func (m *PhotoRepository) Create(ctx context.Context, tenantID string, photo *gallery.Photo) error {
	args := m.Called(ctx, tenantID, photo)
	return args.Error(0)
}

func (m *PhotoRepository) Get(ctx context.Context, tenantID, id string) (*gallery.Photo, error) {
	args := m.Called(ctx, tenantID, id)
	if photo, ok := args.Get(0).(*gallery.Photo); ok {
		return photo, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PhotoRepository) ListByGallery(ctx context.Context, tenantID, galleryID string) ([]*gallery.Photo, error) {
	args := m.Called(ctx, tenantID, galleryID)
	if photos, ok := args.Get(0).([]*gallery.Photo); ok {
		return photos, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PhotoRepository) SetHumanDecision(ctx context.Context, tenantID, id string, selected, rejected bool, rejectionReason string) error {
	args := m.Called(ctx, tenantID, id, selected, rejected, rejectionReason)
	return args.Error(0)
}

// RunLogRepository is a mock for repository.RunLogRepository.
type RunLogRepository struct {
	mock.Mock
}

func (m *RunLogRepository) Log(ctx context.Context, tenantID string, entry *runlog.Entry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *RunLogRepository) List(ctx context.Context, tenantID string, opts runlog.ListOptions) ([]runlog.Entry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]runlog.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
