package models

// Job is a posting created by an employer. It is invisible to housekeepers
// until an admin flips IsVerified. Salary is a pointer: nil means the
// employer chose not to specify one, and such jobs match any salary filter.
type Job struct {
	BaseModel
	EmployerID  string `gorm:"type:uuid;not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Location    string    `gorm:"not null;index"`
	Salary      *float64  `gorm:"check:salary >= 0"`
	IsVerified  bool      `gorm:"default:false"`
	Status      JobStatus `gorm:"type:varchar(20);default:'open'"`

	Employer *User `gorm:"foreignKey:EmployerID"`
}
