package catalog

import (
	"context"

	domain "github.com/barberhub/booking-api/internal/domain/booking"
	"github.com/barberhub/booking-api/internal/models"
)

// Read-only catalog accessors. Results are a snapshot; concurrent admin
// edits may not be visible until the next read.

type ListActiveBarbers struct {
	repo domain.Repository
}

func NewListActiveBarbers(repo domain.Repository) *ListActiveBarbers {
	return &ListActiveBarbers{repo: repo}
}

func (uc *ListActiveBarbers) Execute(ctx context.Context) ([]models.Barber, error) {
	return uc.repo.ListActiveBarbers(ctx)
}

type ListActiveServices struct {
	repo domain.Repository
}

func NewListActiveServices(repo domain.Repository) *ListActiveServices {
	return &ListActiveServices{repo: repo}
}

func (uc *ListActiveServices) Execute(ctx context.Context) ([]models.Service, error) {
	return uc.repo.ListActiveServices(ctx)
}
