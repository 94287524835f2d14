package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"kazicare_backend/internal/auth"
	"kazicare_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly, hashing the given password.
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string, role models.UserRole, verified bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   verified,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// LoginUser logs in through the API and returns the access token.
func LoginUser(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+body)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

// CreateAndLoginUser seeds a verified user and returns their token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, email, password string, role models.UserRole) (string, *models.User) {
	t.Helper()
	user := CreateUser(t, ts.DB, name, email, password, role, true)
	token := LoginUser(t, ts, email, password)
	return token, user
}

// CreateVerifiedJob inserts a live job for an employer.
func CreateVerifiedJob(t *testing.T, db *gorm.DB, employerID, title, location string, salary *float64) *models.Job {
	t.Helper()

	job := &models.Job{
		EmployerID: employerID,
		Title:      title,
		Location:   location,
		Salary:     salary,
		IsVerified: true,
		Status:     models.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
