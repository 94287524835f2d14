package services

import (
	"context"
	"testing"

	"kazicare_backend/internal/models"
	"kazicare_backend/internal/repositories"
	"kazicare_backend/internal/services/dto"
	"kazicare_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	users         *fakeUserRepo
	jobs          *fakeJobRepo
	applications  *fakeApplicationRepo
	notifications *fakeNotificationRepo
	emails        *recordingEmailProvider
	service       ApplicationService
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	setTestConfig(t)
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	applications := newFakeApplicationRepo(jobs, users)
	notifications := newFakeNotificationRepo()
	emails := newRecordingEmailProvider()
	return &applicationFixture{
		users:         users,
		jobs:          jobs,
		applications:  applications,
		notifications: notifications,
		emails:        emails,
		service:       NewApplicationService(applications, jobs, users, notifications, emails),
	}
}

func (f *applicationFixture) seed(t *testing.T) (employer, housekeeper *models.User, job *models.Job) {
	t.Helper()
	employer = &models.User{
		Name: "Employer", Email: "employer@example.com",
		PasswordHash: "hash", Role: models.UserRoleEmployer, IsVerified: true,
	}
	require.NoError(t, f.users.Create(employer))

	housekeeper = &models.User{
		Name: "Jane Wanjiku", Email: "jane@example.com",
		PasswordHash: "hash", Role: models.UserRoleHousekeeper, IsVerified: true,
	}
	require.NoError(t, f.users.Create(housekeeper))

	job = &models.Job{
		EmployerID: employer.ID,
		Title:      "Live-in Nanny",
		Location:   "Nairobi",
		IsVerified: true,
		Status:     models.JobStatusOpen,
	}
	require.NoError(t, f.jobs.Create(job))
	return employer, housekeeper, job
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newApplicationFixture(t)
	_, housekeeper, job := f.seed(t)

	message := "I have five years of experience."
	resp, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
		Message:       &message,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusPending, resp.Status)
	assert.Equal(t, job.ID, resp.JobID)
	assert.Equal(t, "Live-in Nanny", resp.JobTitle)

	// The employer gets an email and an in-app notification.
	require.Len(t, f.emails.sentTo("employer@example.com"), 1)
	notifications := f.notifications.byType(repositories.NotificationTypeNewApplication)
	require.Len(t, notifications, 1)
}

func TestApplyTwiceIsConflict(t *testing.T) {
	f := newApplicationFixture(t)
	_, housekeeper, job := f.seed(t)

	req := &dto.ApplyRequest{HousekeeperID: housekeeper.ID, JobID: job.ID}
	_, err := f.service.Apply(context.Background(), req)
	require.NoError(t, err)

	_, err = f.service.Apply(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	count, err := f.applications.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestApplyToUnverifiedJobLooksMissing(t *testing.T) {
	f := newApplicationFixture(t)
	employer, housekeeper, _ := f.seed(t)

	hidden := &models.Job{
		EmployerID: employer.ID,
		Title:      "Hidden",
		Location:   "Nairobi",
		Status:     models.JobStatusOpen,
	}
	require.NoError(t, f.jobs.Create(hidden))

	_, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         hidden.ID,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestApplyToClosedJobRejected(t *testing.T) {
	f := newApplicationFixture(t)
	_, housekeeper, job := f.seed(t)
	require.NoError(t, f.jobs.UpdateStatus(job.ID, models.JobStatusClosed))

	_, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestApplyRequiresVerifiedHousekeeper(t *testing.T) {
	f := newApplicationFixture(t)
	_, _, job := f.seed(t)

	pending := &models.User{
		Name: "Pending", Email: "pending@example.com",
		PasswordHash: "hash", Role: models.UserRoleHousekeeper,
	}
	require.NoError(t, f.users.Create(pending))

	_, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: pending.ID,
		JobID:         job.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotVerified)
}

func TestApplyEmailFailureDoesNotFailApplication(t *testing.T) {
	f := newApplicationFixture(t)
	f.emails.fail = true
	_, housekeeper, job := f.seed(t)

	resp, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, resp.Status)
}

func TestListJobApplicationsScopedToOwner(t *testing.T) {
	f := newApplicationFixture(t)
	employer, housekeeper, job := f.seed(t)

	_, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
	})
	require.NoError(t, err)

	other := &models.User{
		Name: "Other Employer", Email: "other@example.com",
		PasswordHash: "hash", Role: models.UserRoleEmployer, IsVerified: true,
	}
	require.NoError(t, f.users.Create(other))

	_, err = f.service.ListJobApplications(context.Background(), job.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	applications, err := f.service.ListJobApplications(context.Background(), job.ID, employer.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, "Jane Wanjiku", applications[0].HousekeeperName)
}

func TestDecideApplicationAccept(t *testing.T) {
	f := newApplicationFixture(t)
	employer, housekeeper, job := f.seed(t)

	created, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
	})
	require.NoError(t, err)

	decided, err := f.service.DecideApplication(
		context.Background(), created.ID, employer.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, decided.Status)

	// The housekeeper is notified of the outcome.
	require.Len(t, f.emails.sentTo("jane@example.com"), 1)
	notifications := f.notifications.byType(repositories.NotificationTypeApplicationDecided)
	require.Len(t, notifications, 1)
	assert.Equal(t, housekeeper.ID, notifications[0].UserID)
}

func TestDecideApplicationTwiceIsConflict(t *testing.T) {
	f := newApplicationFixture(t)
	employer, housekeeper, job := f.seed(t)

	created, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
	})
	require.NoError(t, err)

	_, err = f.service.DecideApplication(
		context.Background(), created.ID, employer.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)

	_, err = f.service.DecideApplication(
		context.Background(), created.ID, employer.ID, models.ApplicationStatusAccepted)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestDecideApplicationRequiresOwnership(t *testing.T) {
	f := newApplicationFixture(t)
	_, housekeeper, job := f.seed(t)

	created, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
	})
	require.NoError(t, err)

	other := &models.User{
		Name: "Other Employer", Email: "other@example.com",
		PasswordHash: "hash", Role: models.UserRoleEmployer, IsVerified: true,
	}
	require.NoError(t, f.users.Create(other))

	_, err = f.service.DecideApplication(
		context.Background(), created.ID, other.ID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestDecideApplicationRejectsInvalidDecision(t *testing.T) {
	f := newApplicationFixture(t)
	employer, housekeeper, job := f.seed(t)

	created, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
		HousekeeperID: housekeeper.ID,
		JobID:         job.ID,
	})
	require.NoError(t, err)

	_, err = f.service.DecideApplication(
		context.Background(), created.ID, employer.ID, models.ApplicationStatusPending)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestListMyApplications(t *testing.T) {
	f := newApplicationFixture(t)
	employer, housekeeper, job := f.seed(t)

	second := &models.Job{
		EmployerID: employer.ID,
		Title:      "Cook",
		Location:   "Nakuru",
		IsVerified: true,
		Status:     models.JobStatusOpen,
	}
	require.NoError(t, f.jobs.Create(second))

	for _, jobID := range []string{job.ID, second.ID} {
		_, err := f.service.Apply(context.Background(), &dto.ApplyRequest{
			HousekeeperID: housekeeper.ID,
			JobID:         jobID,
		})
		require.NoError(t, err)
	}

	applications, err := f.service.ListMyApplications(context.Background(), housekeeper.ID)
	require.NoError(t, err)
	require.Len(t, applications, 2)
	for _, application := range applications {
		assert.NotEmpty(t, application.JobTitle, "list view joins the job")
	}
}
