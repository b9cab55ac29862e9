package medications

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type AddInput struct {
	MedicationName string
	Dosage         string
}

// Add guarda una entrada nueva. Campos vacíos => ErrInvalidInput sin tocar el storage.
// Solo se mira presencia: " " es un valor válido y se guarda tal cual llega.
func (s *Service) Add(ctx context.Context, in AddInput) (Entry, error) {
	if in.MedicationName == "" || in.Dosage == "" {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		MedicationName: in.MedicationName,
		Dosage:         in.Dosage,
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}
