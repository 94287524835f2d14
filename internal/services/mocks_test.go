package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"kazicare_backend/internal/email"
	"kazicare_backend/internal/models"
	"kazicare_backend/internal/repositories"
)

// In-memory repository fakes. They mirror the query semantics the real
// repositories get from Postgres, including guarded updates and the
// unique constraints, so service behavior can be tested without a
// database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("user-%04d", r.seq)
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = r.nextID()
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateProfile(userID, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != userID && existing.Email == email {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.Name = name
	user.Email = email
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) SetResetToken(userID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ResetToken = token
	user.ResetTokenExp = &expiresAt
	return nil
}

func (r *fakeUserRepo) FindByResetToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ResetToken == token && user.ResetToken != "" &&
			user.ResetTokenExp != nil && user.ResetTokenExp.After(time.Now()) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ClearResetToken(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.ResetToken = ""
		user.ResetTokenExp = nil
	}
	return nil
}

func (r *fakeUserRepo) Verify(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.IsVerified {
		return 0, nil
	}
	user.IsVerified = true
	return 1, nil
}

func (r *fakeUserRepo) FindUnverified(limit, offset int) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var unverified []models.User
	for _, user := range r.users {
		if !user.IsVerified {
			unverified = append(unverified, *user)
		}
	}
	sort.Slice(unverified, func(i, j int) bool {
		if unverified[i].CreatedAt.Equal(unverified[j].CreatedAt) {
			return unverified[i].ID < unverified[j].ID
		}
		return unverified[i].CreatedAt.Before(unverified[j].CreatedAt)
	})
	total := int64(len(unverified))
	return paginate(unverified, limit, offset), total, nil
}

func (r *fakeUserRepo) CountByRole(role models.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountVerified() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.users {
		if user.IsVerified {
			count++
		}
	}
	return count, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
	seq  int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%04d", r.seq)
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) FindVerifiedByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || !job.IsVerified {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) FindByEmployer(employerID string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []models.Job
	for _, job := range r.jobs {
		if job.EmployerID == employerID {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

func (r *fakeJobRepo) UpdateStatus(jobID string, status models.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.Status = status
	return nil
}

// FindVerifiedWithFilter reproduces the browse predicate: conjunction of
// the supplied filters, NULL salary passing any bound, insertion order.
func (r *fakeJobRepo) FindVerifiedWithFilter(filter repositories.JobFilter) ([]models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Job
	for _, job := range r.jobs {
		if !job.IsVerified {
			continue
		}
		if filter.Location != "" &&
			!strings.Contains(strings.ToLower(job.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.SalaryMin != nil && job.Salary != nil && *job.Salary < *filter.SalaryMin {
			continue
		}
		if filter.SalaryMax != nil && job.Salary != nil && *job.Salary > *filter.SalaryMax {
			continue
		}
		matched = append(matched, *job)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.PageSize
	return paginate(matched, filter.PageSize, offset), total, nil
}

func (r *fakeJobRepo) Verify(jobID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok || job.IsVerified {
		return 0, nil
	}
	job.IsVerified = true
	return 1, nil
}

func (r *fakeJobRepo) FindUnverified(limit, offset int) ([]models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var unverified []models.Job
	for _, job := range r.jobs {
		if !job.IsVerified {
			unverified = append(unverified, *job)
		}
	}
	sort.Slice(unverified, func(i, j int) bool {
		if unverified[i].CreatedAt.Equal(unverified[j].CreatedAt) {
			return unverified[i].ID < unverified[j].ID
		}
		return unverified[i].CreatedAt.Before(unverified[j].CreatedAt)
	})
	total := int64(len(unverified))
	return paginate(unverified, limit, offset), total, nil
}

func (r *fakeJobRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

func (r *fakeJobRepo) CountVerified() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, job := range r.jobs {
		if job.IsVerified {
			count++
		}
	}
	return count, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]*models.Application
	jobRepo      *fakeJobRepo
	userRepo     *fakeUserRepo
	seq          int
}

func newFakeApplicationRepo(jobRepo *fakeJobRepo, userRepo *fakeUserRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[string]*models.Application),
		jobRepo:      jobRepo,
		userRepo:     userRepo,
	}
}

func (r *fakeApplicationRepo) Create(application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.JobID == application.JobID && existing.HousekeeperID == application.HousekeeperID {
			return repositories.ErrDuplicateApplication
		}
	}
	r.seq++
	if application.ID == "" {
		application.ID = fmt.Sprintf("app-%04d", r.seq)
	}
	application.CreatedAt = time.Now()
	copied := *application
	copied.Job = nil
	copied.Housekeeper = nil
	r.applications[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) FindByID(id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	copied := *application
	if job, err := r.jobRepo.FindByID(copied.JobID); err == nil {
		copied.Job = job
	}
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByHousekeeper(housekeeperID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Application
	for _, application := range r.applications {
		if application.HousekeeperID != housekeeperID {
			continue
		}
		copied := *application
		if job, err := r.jobRepo.FindByID(copied.JobID); err == nil {
			copied.Job = job
		}
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeApplicationRepo) FindByJob(jobID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Application
	for _, application := range r.applications {
		if application.JobID != jobID {
			continue
		}
		copied := *application
		if housekeeper, err := r.userRepo.FindByID(copied.HousekeeperID); err == nil {
			copied.Housekeeper = housekeeper
		}
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeApplicationRepo) UpdateStatus(applicationID string, from, to models.ApplicationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[applicationID]
	if !ok || application.Status != from {
		return 0, nil
	}
	application.Status = to
	return 1, nil
}

func (r *fakeApplicationRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.applications)), nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = fmt.Sprintf("token-%04d", len(r.tokens)+1)
	}
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *fakeRefreshTokenRepo) FindByToken(tokenString string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenString]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	copied := *token
	return &copied, nil
}

func (r *fakeRefreshTokenRepo) DeleteByToken(tokenString string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[tokenString]; !ok {
		return repositories.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenString)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) CleanExpired() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	now := time.Now()
	for key, token := range r.tokens {
		if token.ExpiresAt.Before(now) {
			delete(r.tokens, key)
			deleted++
		}
	}
	return deleted, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	seq           int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if notification.ID == "" {
		notification.ID = fmt.Sprintf("notif-%04d", r.seq)
	}
	notification.CreatedAt = time.Now()
	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for _, notification := range r.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		matched = append(matched, *notification)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, notification := range r.notifications {
		if notification.ID == notificationID && notification.UserID == userID {
			notification.IsRead = true
			now := time.Now()
			notification.ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) byType(notificationType string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for _, notification := range r.notifications {
		if notification.Type == notificationType {
			matched = append(matched, *notification)
		}
	}
	return matched
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// recordingEmailProvider captures sends for assertions.
type recordingEmailProvider struct {
	mu   sync.Mutex
	sent []email.Email
	fail bool
}

func newRecordingEmailProvider() *recordingEmailProvider {
	return &recordingEmailProvider{}
}

func (p *recordingEmailProvider) record(e *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("smtp unavailable")
	}
	p.sent = append(p.sent, *e)
	return nil
}

func (p *recordingEmailProvider) Send(e *email.Email) error { return p.record(e) }

func (p *recordingEmailProvider) SendAccountVerified(to, name string) error {
	return p.record(&email.Email{To: []string{to}, Subject: "Account Verified", Body: name})
}

func (p *recordingEmailProvider) SendJobVerified(to, jobTitle string) error {
	return p.record(&email.Email{To: []string{to}, Subject: "Job Verified", Body: jobTitle})
}

func (p *recordingEmailProvider) SendNewApplication(to, jobTitle, applicantName string) error {
	return p.record(&email.Email{To: []string{to}, Subject: "New Application", Body: jobTitle + " / " + applicantName})
}

func (p *recordingEmailProvider) SendApplicationDecided(to, jobTitle string, accepted bool) error {
	return p.record(&email.Email{To: []string{to}, Subject: "Application Update", Body: jobTitle})
}

func (p *recordingEmailProvider) SendPasswordReset(to, token string) error {
	return p.record(&email.Email{To: []string{to}, Subject: "Password Reset", Body: token})
}

func (p *recordingEmailProvider) Close() error { return nil }

func (p *recordingEmailProvider) sentTo(address string) []email.Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []email.Email
	for _, e := range p.sent {
		for _, to := range e.To {
			if to == address {
				matched = append(matched, e)
			}
		}
	}
	return matched
}

func (p *recordingEmailProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}
