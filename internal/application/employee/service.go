package employee

import (
	"context"
	"errors"

	"github.com/employee-api/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event topics, one per mutating operation.
const (
	TopicEmployeeAdded   = "add-employee-topic"
	TopicEmployeeUpdated = "update-employee-topic"
	TopicEmployeeDeleted = "delete-employee-topic"
)

// Service is the employee façade consumed by the HTTP handlers. Every method
// returns an envelope plus an error: domain outcomes (including expected
// failures such as not-found or duplicates) travel inside the envelope, and
// the error is non-nil only for infrastructure faults, which the transport
// layer hands to the exception normalizer.
type Service interface {
	List(ctx context.Context) (*domain.Response, error)
	Get(ctx context.Context, employeeID uuid.UUID) (*domain.Response, error)
	Create(ctx context.Context, req *domain.AddEmployeeRequest) (*domain.Response, error)
	Update(ctx context.Context, employeeID uuid.UUID, req *domain.UpdateEmployeeRequest) (*domain.Response, error)
	Delete(ctx context.Context, employeeID uuid.UUID) (*domain.Response, error)
}

type employeeStore interface {
	Scan(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	GetByFirstName(ctx context.Context, firstName string) (*domain.Employee, error)
	Put(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, employeeID, firstName, lastName string) error
	HardDelete(ctx context.Context, employeeID string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type service struct {
	repo      employeeStore
	publisher eventPublisher // nil when eventing is disabled
	log       *zap.Logger
}

func NewService(repo employeeStore, publisher eventPublisher, log *zap.Logger) Service {
	return &service{repo: repo, publisher: publisher, log: log}
}

func (s *service) List(ctx context.Context) (*domain.Response, error) {
	employees, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return domain.Failure(domain.MsgNoEmployees), nil
	}
	return domain.Success(employees, domain.MsgSuccess), nil
}

func (s *service) Get(ctx context.Context, employeeID uuid.UUID) (*domain.Response, error) {
	e, err := s.repo.Get(ctx, employeeID.String())
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.MsgEmployeeNotFound), nil
	}
	if err != nil {
		return nil, err
	}
	return domain.Success(e, domain.MsgSuccess), nil
}

func (s *service) Create(ctx context.Context, req *domain.AddEmployeeRequest) (*domain.Response, error) {
	if req == nil {
		return domain.Failure(domain.MsgNoEmployeeData), nil
	}

	// Duplicate check. Keyed on first name only — deliberately preserved from
	// the upstream system for wire compatibility, message included.
	existing, err := s.repo.GetByFirstName(ctx, req.FirstName)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return domain.Failure(domain.MsgDuplicateCreate), nil
	}

	e := &domain.Employee{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}

	s.publish(ctx, TopicEmployeeAdded, e)

	return domain.Success(e, domain.MsgEmployeeCreated), nil
}

func (s *service) Update(ctx context.Context, employeeID uuid.UUID, req *domain.UpdateEmployeeRequest) (*domain.Response, error) {
	if employeeID == uuid.Nil {
		return domain.Failure(domain.MsgNoEmployeeID), nil
	}

	current, err := s.repo.Get(ctx, employeeID.String())
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.MsgEmployeeNotFound), nil
	}
	if err != nil {
		return nil, err
	}

	if req == nil {
		return domain.Failure(domain.MsgNoUpdateData), nil
	}
	if current.FirstName == req.FirstName && current.LastName == req.LastName {
		return domain.Failure(domain.MsgDuplicateUpdate), nil
	}

	if err := s.repo.Update(ctx, employeeID.String(), req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	updated := &domain.Employee{
		ID:        current.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	s.publish(ctx, TopicEmployeeUpdated, updated)

	return domain.Success(updated, domain.MsgEmployeeUpdated), nil
}

func (s *service) Delete(ctx context.Context, employeeID uuid.UUID) (*domain.Response, error) {
	if employeeID == uuid.Nil {
		return domain.Failure(domain.MsgNoEmployeeID), nil
	}

	e, err := s.repo.Get(ctx, employeeID.String())
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.MsgEmployeeNotFound), nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.HardDelete(ctx, employeeID.String()); err != nil {
		return nil, err
	}

	s.publish(ctx, TopicEmployeeDeleted, e)

	return domain.Success(e, domain.MsgEmployeeDeleted), nil
}

// publish emits a change event keyed by the record id. Eventing is
// fire-and-forget: the write has already committed, so a publish failure is
// logged and never rolls it back.
func (s *service) publish(ctx context.Context, topic string, e *domain.Employee) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, e.ID.String(), e); err != nil {
		s.log.Warn("could not publish employee event",
			zap.String("topic", topic),
			zap.String("employee_id", e.ID.String()),
			zap.Error(err),
		)
	}
}
