package dto

// AdminOverview is the admin dashboard summary block.
type AdminOverview struct {
	TotalUsers        int64 `json:"total_users"`
	Employers         int64 `json:"employers"`
	Housekeepers      int64 `json:"housekeepers"`
	VerifiedUsers     int64 `json:"verified_users"`
	UnverifiedUsers   int64 `json:"unverified_users"`
	TotalJobs         int64 `json:"total_jobs"`
	VerifiedJobs      int64 `json:"verified_jobs"`
	UnverifiedJobs    int64 `json:"unverified_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
