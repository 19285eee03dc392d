package lender

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidLender = errors.New("lender id and display name are required")

// Lender maps the id used by offer providers to a name people recognise.
type Lender struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time
}

type Repository interface {
	FindNames(ctx context.Context, ids []string) (map[string]string, error)
	Upsert(ctx context.Context, l Lender) error
	List(ctx context.Context) ([]Lender, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Names resolves display names for the given lender ids. Unknown ids resolve
// to themselves.
func (s *Service) Names(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	found, err := s.repo.FindNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		names[id] = id
		if name, ok := found[id]; ok && name != "" {
			names[id] = name
		}
	}

	return names, nil
}

// Register creates or renames a lender.
func (s *Service) Register(ctx context.Context, id, displayName string) error {
	id = strings.TrimSpace(id)
	displayName = strings.TrimSpace(displayName)

	if id == "" || displayName == "" {
		return ErrInvalidLender
	}

	return s.repo.Upsert(ctx, Lender{ID: id, DisplayName: displayName})
}

func (s *Service) List(ctx context.Context) ([]Lender, error) {
	return s.repo.List(ctx)
}
