package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/employee-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- mocks ---

type mockEmployeeStore struct{ mock.Mock }

func (m *mockEmployeeStore) Scan(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if es, _ := args.Get(0).([]domain.Employee); es != nil {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEmployeeStore) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if e, _ := args.Get(0).(*domain.Employee); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEmployeeStore) GetByFirstName(ctx context.Context, firstName string) (*domain.Employee, error) {
	args := m.Called(ctx, firstName)
	if e, _ := args.Get(0).(*domain.Employee); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEmployeeStore) Put(ctx context.Context, e *domain.Employee) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockEmployeeStore) Update(ctx context.Context, employeeID, firstName, lastName string) error {
	return m.Called(ctx, employeeID, firstName, lastName).Error(0)
}
func (m *mockEmployeeStore) HardDelete(ctx context.Context, employeeID string) error {
	return m.Called(ctx, employeeID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	return m.Called(ctx, topic, key, payload).Error(0)
}

// --- helpers ---

func newService(repo *mockEmployeeStore, pub *mockPublisher) Service {
	if pub == nil {
		return NewService(repo, nil, zap.NewNop())
	}
	return NewService(repo, pub, zap.NewNop())
}

func assertFailure(t *testing.T, resp *domain.Response, message string) {
	t.Helper()
	assert.False(t, resp.IsSuccess)
	assert.Nil(t, resp.Result)
	assert.Equal(t, message, resp.Message)
	require.NotNil(t, resp.DateTimeOnFailure)
}

// --- List ---

func TestList_ReturnsEmployees(t *testing.T) {
	repo := &mockEmployeeStore{}
	employees := []domain.Employee{{ID: uuid.New(), FirstName: "Alice", LastName: "Smith"}}
	repo.On("Scan", mock.Anything).Return(employees, nil)

	resp, err := newService(repo, nil).List(context.Background())

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, domain.MsgSuccess, resp.Message)
	assert.Equal(t, employees, resp.Result)
	assert.Nil(t, resp.DateTimeOnFailure)
}

func TestList_Empty_ReturnsFailureEnvelope(t *testing.T) {
	repo := &mockEmployeeStore{}
	repo.On("Scan", mock.Anything).Return([]domain.Employee{}, nil)

	resp, err := newService(repo, nil).List(context.Background())

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgNoEmployees)
}

func TestList_StoreFault_PropagatesError(t *testing.T) {
	repo := &mockEmployeeStore{}
	repo.On("Scan", mock.Anything).Return(nil, errors.New("dynamo unavailable"))

	resp, err := newService(repo, nil).List(context.Background())

	require.Error(t, err)
	assert.Nil(t, resp)
}

// --- Get ---

func TestGet_ReturnsSameEnvelopeOnRepeat(t *testing.T) {
	repo := &mockEmployeeStore{}
	e := &domain.Employee{ID: uuid.New(), FirstName: "Alice", LastName: "Smith"}
	repo.On("Get", mock.Anything, e.ID.String()).Return(e, nil)

	svc := newService(repo, nil)
	first, err := svc.Get(context.Background(), e.ID)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), e.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.IsSuccess)
	assert.Equal(t, e, first.Result)
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockEmployeeStore{}
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	resp, err := newService(repo, nil).Get(context.Background(), uuid.New())

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgEmployeeNotFound)
}

// --- Create ---

func TestCreate_PersistsAndPublishes(t *testing.T) {
	repo := &mockEmployeeStore{}
	pub := &mockPublisher{}
	repo.On("GetByFirstName", mock.Anything, "Alice").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, TopicEmployeeAdded, mock.Anything, mock.Anything).Return(nil)

	resp, err := newService(repo, pub).Create(context.Background(), &domain.AddEmployeeRequest{
		FirstName: "Alice", LastName: "Smith",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, domain.MsgEmployeeCreated, resp.Message)

	created, ok := resp.Result.(*domain.Employee)
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Alice", created.FirstName)
	assert.Equal(t, "Smith", created.LastName)

	pub.AssertCalled(t, "Publish", mock.Anything, TopicEmployeeAdded, created.ID.String(), created)
	repo.AssertExpectations(t)
}

func TestCreate_NilRequest(t *testing.T) {
	repo := &mockEmployeeStore{}

	resp, err := newService(repo, nil).Create(context.Background(), nil)

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgNoEmployeeData)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateFirstName_NoPersistNoEvent(t *testing.T) {
	repo := &mockEmployeeStore{}
	pub := &mockPublisher{}
	repo.On("GetByFirstName", mock.Anything, "Alice").
		Return(&domain.Employee{ID: uuid.New(), FirstName: "Alice"}, nil)

	resp, err := newService(repo, pub).Create(context.Background(), &domain.AddEmployeeRequest{
		FirstName: "Alice", LastName: "Jones",
	})

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgDuplicateCreate)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_PublishFailure_StillSucceeds(t *testing.T) {
	repo := &mockEmployeeStore{}
	pub := &mockPublisher{}
	repo.On("GetByFirstName", mock.Anything, "Alice").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, TopicEmployeeAdded, mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	resp, err := newService(repo, pub).Create(context.Background(), &domain.AddEmployeeRequest{
		FirstName: "Alice", LastName: "Smith",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
}

func TestCreate_StoreFault_PropagatesError(t *testing.T) {
	repo := &mockEmployeeStore{}
	pub := &mockPublisher{}
	repo.On("GetByFirstName", mock.Anything, "Alice").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo unavailable"))

	resp, err := newService(repo, pub).Create(context.Background(), &domain.AddEmployeeRequest{
		FirstName: "Alice", LastName: "Smith",
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Update ---

func TestUpdate_NilID(t *testing.T) {
	resp, err := newService(&mockEmployeeStore{}, nil).Update(context.Background(), uuid.Nil, &domain.UpdateEmployeeRequest{})

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgNoEmployeeID)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockEmployeeStore{}
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	resp, err := newService(repo, nil).Update(context.Background(), uuid.New(), &domain.UpdateEmployeeRequest{
		FirstName: "Alice", LastName: "Smith",
	})

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgEmployeeNotFound)
}

func TestUpdate_NilRequest(t *testing.T) {
	repo := &mockEmployeeStore{}
	id := uuid.New()
	repo.On("Get", mock.Anything, id.String()).
		Return(&domain.Employee{ID: id, FirstName: "Alice", LastName: "Smith"}, nil)

	resp, err := newService(repo, nil).Update(context.Background(), id, nil)

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgNoUpdateData)
}

func TestUpdate_UnchangedValues_NoWriteNoEvent(t *testing.T) {
	repo := &mockEmployeeStore{}
	pub := &mockPublisher{}
	id := uuid.New()
	repo.On("Get", mock.Anything, id.String()).
		Return(&domain.Employee{ID: id, FirstName: "Alice", LastName: "Smith"}, nil)

	resp, err := newService(repo, pub).Update(context.Background(), id, &domain.UpdateEmployeeRequest{
		FirstName: "Alice", LastName: "Smith",
	})

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgDuplicateUpdate)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_WritesAndPublishes(t *testing.T) {
	repo := &mockEmployeeStore{}
	pub := &mockPublisher{}
	id := uuid.New()
	repo.On("Get", mock.Anything, id.String()).
		Return(&domain.Employee{ID: id, FirstName: "Alice", LastName: "Smith"}, nil)
	repo.On("Update", mock.Anything, id.String(), "Alicia", "Smith").Return(nil)
	pub.On("Publish", mock.Anything, TopicEmployeeUpdated, id.String(), mock.Anything).Return(nil)

	resp, err := newService(repo, pub).Update(context.Background(), id, &domain.UpdateEmployeeRequest{
		FirstName: "Alicia", LastName: "Smith",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, domain.MsgEmployeeUpdated, resp.Message)

	updated, ok := resp.Result.(*domain.Employee)
	require.True(t, ok)
	assert.Equal(t, "Alicia", updated.FirstName)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

// --- Delete ---

func TestDelete_NilID(t *testing.T) {
	resp, err := newService(&mockEmployeeStore{}, nil).Delete(context.Background(), uuid.Nil)

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgNoEmployeeID)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockEmployeeStore{}
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	resp, err := newService(repo, nil).Delete(context.Background(), uuid.New())

	require.NoError(t, err)
	assertFailure(t, resp, domain.MsgEmployeeNotFound)
	repo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestDelete_RemovesAndPublishes(t *testing.T) {
	repo := &mockEmployeeStore{}
	pub := &mockPublisher{}
	id := uuid.New()
	e := &domain.Employee{ID: id, FirstName: "Alice", LastName: "Smith"}
	repo.On("Get", mock.Anything, id.String()).Return(e, nil)
	repo.On("HardDelete", mock.Anything, id.String()).Return(nil)
	pub.On("Publish", mock.Anything, TopicEmployeeDeleted, id.String(), e).Return(nil)

	resp, err := newService(repo, pub).Delete(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, domain.MsgEmployeeDeleted, resp.Message)
	assert.Equal(t, e, resp.Result)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}
