package service

import (
	"context"

	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"github.com/volunteerhub/volunteer-server/internal/volunteer/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service implements the opportunity and application operations used by the
// handler layer. Every method performs at most one store call.
type Service struct {
	opportunities repository.Repository
	applications  repository.Repository
}

func New(opportunities, applications repository.Repository) *Service {
	return &Service{opportunities: opportunities, applications: applications}
}

// NewMemoryService returns a Service backed by in-memory repositories.
func NewMemoryService() *Service {
	return New(repository.NewMemoryRepo(), repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by two collections of db, and
// ensures the indexes list queries rely on.
func NewMongoService(ctx context.Context, db *mongo.Database, opportunities, applications string) (*Service, error) {
	opps := repository.NewMongoRepo(db.Collection(opportunities))
	apps := repository.NewMongoRepo(db.Collection(applications))
	if err := opps.EnsureIndexes(ctx, volunteer.FieldOwnerEmail, volunteer.FieldCategory, volunteer.FieldDeadline); err != nil {
		return nil, err
	}
	if err := apps.EnsureIndexes(ctx, volunteer.FieldApplicantEmail); err != nil {
		return nil, err
	}
	return New(opps, apps), nil
}

// ListOpportunities returns every opportunity, latest deadline first.
func (s *Service) ListOpportunities(ctx context.Context) ([]volunteer.Document, error) {
	return s.opportunities.Find(ctx, volunteer.Filter{}, volunteer.FindOptions{Sort: volunteer.ByDeadlineDesc})
}

// GetOpportunity returns (nil, nil) when the id is well formed but unknown.
func (s *Service) GetOpportunity(ctx context.Context, id string) (volunteer.Document, error) {
	return s.opportunities.FindByID(ctx, id)
}

func (s *Service) OpportunitiesByOwner(ctx context.Context, email string) ([]volunteer.Document, error) {
	return s.opportunities.Find(ctx, volunteer.Filter{}.Where(volunteer.FieldOwnerEmail, email), volunteer.FindOptions{})
}

func (s *Service) CreateOpportunity(ctx context.Context, d volunteer.Document) (repository.InsertResult, error) {
	if err := volunteer.ValidateOpportunity(d); err != nil {
		return repository.InsertResult{}, err
	}
	return s.opportunities.Insert(ctx, d)
}

// ReplaceOpportunity sets every supplied field, creating the document when the id is unknown.
func (s *Service) ReplaceOpportunity(ctx context.Context, id string, d volunteer.Document) (repository.UpdateResult, error) {
	return s.opportunities.Upsert(ctx, id, d)
}

func (s *Service) DeleteOpportunity(ctx context.Context, id string) (repository.DeleteResult, error) {
	return s.opportunities.Delete(ctx, id)
}

// BrowseOpportunities returns one page of the search/category listing. A page
// past the end yields an empty slice.
func (s *Service) BrowseOpportunities(ctx context.Context, search, category string, page volunteer.Page) ([]volunteer.Document, error) {
	return s.opportunities.Find(ctx, volunteer.BuildListQuery(search, category), volunteer.Paginate(page))
}

func (s *Service) CountOpportunities(ctx context.Context, search, category string) (int64, error) {
	return s.opportunities.Count(ctx, volunteer.BuildListQuery(search, category))
}

func (s *Service) CreateApplication(ctx context.Context, d volunteer.Document) (repository.InsertResult, error) {
	if err := volunteer.ValidateApplication(d); err != nil {
		return repository.InsertResult{}, err
	}
	return s.applications.Insert(ctx, d)
}

func (s *Service) ApplicationsByApplicant(ctx context.Context, email string) ([]volunteer.Document, error) {
	return s.applications.Find(ctx, volunteer.Filter{}.Where(volunteer.FieldApplicantEmail, email), volunteer.FindOptions{})
}

// SearchApplications matches the caller's exact-match query, always scoped
// to applications made by applicantEmail.
func (s *Service) SearchApplications(ctx context.Context, applicantEmail string, query map[string]interface{}) ([]volunteer.Document, error) {
	f, err := volunteer.FilterFromQuery(query)
	if err != nil {
		return nil, err
	}
	return s.applications.Find(ctx, f.Where(volunteer.FieldApplicantEmail, applicantEmail), volunteer.FindOptions{})
}

func (s *Service) DeleteApplication(ctx context.Context, id string) (repository.DeleteResult, error) {
	return s.applications.Delete(ctx, id)
}
