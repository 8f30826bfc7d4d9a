package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/repositories"
	"github.com/JayL96/user-management/services"
	"github.com/JayL96/user-management/services/mocks"
)

// UserWorkflowsSuite runs the workflows against real services over in-memory
// repositories, so the full mutate-then-log sequences can be observed.
type UserWorkflowsSuite struct {
	suite.Suite
	workflows *UserWorkflows
	logs      services.LogService
	users     services.UserService
}

func (s *UserWorkflowsSuite) SetupTest() {
	s.users = services.NewUserService(repositories.NewMemoryUserRepository())
	s.logs = services.NewLogService(repositories.NewMemoryLogRepository())
	s.workflows = NewUserWorkflows(s.users, s.logs, zerolog.Nop())
}

func validForm() *models.UserForm {
	return &models.UserForm{
		Forename:    "Jane",
		Surname:     "Doe",
		Email:       "jane@example.com",
		DateOfBirth: "1990-04-12",
		IsActive:    true,
	}
}

func (s *UserWorkflowsSuite) TestCreateEditDeleteProducesOrderedTrail() {
	ctx := context.Background()

	user, msgs, err := s.workflows.CreateUserAndLog(ctx, validForm())
	s.Require().NoError(err)
	s.Require().Empty(msgs)
	s.Require().NotNil(user)

	form := validForm()
	form.Surname = "Smith"
	msgs, err = s.workflows.UpdateUserAndLog(ctx, user.ID, form)
	s.Require().NoError(err)
	s.Require().Empty(msgs)

	s.Require().NoError(s.workflows.DeleteUserAndLog(ctx, user.ID))

	// Exactly three entries, newest first: Deleted, Updated, Created, all
	// referencing the same user
	entries, err := s.logs.ListForUser(ctx, user.ID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(models.ActionDeleted, entries[0].Action)
	s.Equal(models.ActionUpdated, entries[1].Action)
	s.Equal(models.ActionCreated, entries[2].Action)
	for _, e := range entries {
		s.Equal(user.ID, e.UserID)
	}

	s.Contains(entries[2].Details, "Jane Doe")
}

func (s *UserWorkflowsSuite) TestCreateValidationFailureWritesNothing() {
	ctx := context.Background()

	form := validForm()
	form.Email = "not-an-email"

	user, msgs, err := s.workflows.CreateUserAndLog(ctx, form)
	s.Require().NoError(err)
	s.Nil(user)
	s.NotEmpty(msgs)

	count, err := s.users.Count(ctx)
	s.Require().NoError(err)
	s.Zero(count)

	total, err := s.logs.Count(ctx, nil, "")
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *UserWorkflowsSuite) TestUpdateValidationFailureWritesNothing() {
	ctx := context.Background()

	user, _, err := s.workflows.CreateUserAndLog(ctx, validForm())
	s.Require().NoError(err)

	form := validForm()
	form.Forename = ""
	msgs, err := s.workflows.UpdateUserAndLog(ctx, user.ID, form)
	s.Require().NoError(err)
	s.NotEmpty(msgs)

	// Only the Created entry exists; the user is unchanged
	entries, err := s.logs.ListForUser(ctx, user.ID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(models.ActionCreated, entries[0].Action)

	got, err := s.users.GetByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Jane", got.Forename)
}

func (s *UserWorkflowsSuite) TestDeleteMissingStillLogsOnce() {
	ctx := context.Background()

	s.Require().NoError(s.workflows.DeleteUserAndLog(ctx, 42))

	entries, err := s.logs.ListForUser(ctx, 42, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(models.ActionDeleted, entries[0].Action)
}

func (s *UserWorkflowsSuite) TestUpdateMissingStillLogsOnce() {
	ctx := context.Background()

	msgs, err := s.workflows.UpdateUserAndLog(ctx, 42, validForm())
	s.Require().NoError(err)
	s.Empty(msgs)

	entries, err := s.logs.ListForUser(ctx, 42, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(models.ActionUpdated, entries[0].Action)
}

func (s *UserWorkflowsSuite) TestViewRecordsEntryAndReturnsRecentLogs() {
	ctx := context.Background()

	created, _, err := s.workflows.CreateUserAndLog(ctx, validForm())
	s.Require().NoError(err)

	user, entries, err := s.workflows.ViewUserAndLog(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)

	// The Viewed entry is included in the returned listing, newest first
	s.Require().Len(entries, 2)
	s.Equal(models.ActionViewed, entries[0].Action)
	s.Equal(models.ActionCreated, entries[1].Action)
}

func (s *UserWorkflowsSuite) TestViewMissingUserWritesNothing() {
	ctx := context.Background()

	_, _, err := s.workflows.ViewUserAndLog(ctx, 42)
	s.Require().True(errors.Is(err, models.ErrNotFound))

	total, err := s.logs.Count(ctx, nil, "")
	s.Require().NoError(err)
	s.Zero(total)
}

func TestUserWorkflowsSuite(t *testing.T) {
	suite.Run(t, new(UserWorkflowsSuite))
}

// TestCreateAppendsExactlyOnce pins the exactly-once contract with mocks.
func TestCreateAppendsExactlyOnce(t *testing.T) {
	userSvc := new(mocks.MockUserService)
	logSvc := new(mocks.MockLogService)
	wf := NewUserWorkflows(userSvc, logSvc, zerolog.Nop())

	userSvc.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 5
		}).
		Return(nil).Once()
	logSvc.On("Append", mock.Anything, int64(5), models.ActionCreated, "Created user Jane Doe").
		Return(models.NewLogEntry(5, models.ActionCreated, "Created user Jane Doe"), nil).Once()

	user, msgs, err := wf.CreateUserAndLog(context.Background(), validForm())
	require.NoError(t, err)
	require.Empty(t, msgs)
	assert.EqualValues(t, 5, user.ID)

	userSvc.AssertExpectations(t)
	logSvc.AssertExpectations(t)
}

// TestMutationSurvivesLogAppendFailure pins the log-and-continue decision: a
// failed audit write after a successful mutation is not surfaced and not
// rolled back.
func TestMutationSurvivesLogAppendFailure(t *testing.T) {
	userSvc := new(mocks.MockUserService)
	logSvc := new(mocks.MockLogService)
	wf := NewUserWorkflows(userSvc, logSvc, zerolog.Nop())

	userSvc.On("Delete", mock.Anything, int64(9)).Return(nil).Once()
	logSvc.On("Append", mock.Anything, int64(9), models.ActionDeleted, "Deleted user 9").
		Return(nil, errors.New("store rejected the write")).Once()

	err := wf.DeleteUserAndLog(context.Background(), 9)
	assert.NoError(t, err)

	userSvc.AssertExpectations(t)
	logSvc.AssertExpectations(t)
}

// TestCreateFailureSkipsLog asserts nothing is appended when the mutation
// itself fails.
func TestCreateFailureSkipsLog(t *testing.T) {
	userSvc := new(mocks.MockUserService)
	logSvc := new(mocks.MockLogService)
	wf := NewUserWorkflows(userSvc, logSvc, zerolog.Nop())

	userSvc.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(errors.New("disk full")).Once()

	_, msgs, err := wf.CreateUserAndLog(context.Background(), validForm())
	require.Error(t, err)
	assert.Empty(t, msgs)

	logSvc.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
