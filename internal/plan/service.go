package plan

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=plan
type Repository interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	GetSnapshot(ctx context.Context, ownerID string, id uuid.UUID) (*Snapshot, error)
	ListSnapshots(ctx context.Context, ownerID string) ([]*Snapshot, error)
	DeleteSnapshot(ctx context.Context, ownerID string, id uuid.UUID) error
}

// OfferProvider fetches lender quotes. Implementations own retries and caching.
type OfferProvider interface {
	GetQuotes(ctx context.Context, req QuoteRequest) ([]Quote, error)
}

type QuoteRequest struct {
	Principal  int64
	TermMonths int
	Category   CreditCategory
}

func (r QuoteRequest) Validate() error {
	switch {
	case !r.Category.Valid():
		return &ValidationError{Field: "category", Message: "must be primary or personal"}
	case r.Principal <= 0:
		return &ValidationError{Field: "principal", Message: "must be greater than zero"}
	case r.TermMonths < 1:
		return &ValidationError{Field: "term_months", Message: "must be at least 1"}
	}

	return nil
}

type Service struct {
	repo   Repository
	offers OfferProvider
}

func NewService(repo Repository, offers OfferProvider) *Service {
	return &Service{repo: repo, offers: offers}
}

// Save computes the snapshot for the input and hands it to the repository,
// which assigns its ID.
func (s *Service) Save(ctx context.Context, in Input) (*Snapshot, error) {
	snap, err := Compute(in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	return snap, nil
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Snapshot, error) {
	return s.repo.GetSnapshot(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*Snapshot, error) {
	return s.repo.ListSnapshots(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.repo.DeleteSnapshot(ctx, ownerID, id)
}

// Quotes checks that the request could be granted at all, then asks the
// provider and ranks what comes back. Provider failures are wrapped in
// ErrProviderUnavailable.
func (s *Service) Quotes(ctx context.Context, req QuoteRequest) ([]Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Category == CategoryPersonal {
		if err := CheckPersonalCredit(req.Principal, req.TermMonths); err != nil {
			return nil, err
		}
	}

	quotes, err := s.offers.GetQuotes(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	return RankQuotes(quotes), nil
}
