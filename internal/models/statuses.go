package models

type UserRole string
type JobStatus string
type ApplicationStatus string

const (
	UserRoleEmployer    UserRole = "employer"
	UserRoleHousekeeper UserRole = "housekeeper"
	UserRoleAdmin       UserRole = "admin"

	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)
