package models

// Application links a housekeeper to a job. The composite unique index is
// what turns a double-apply into a constraint violation instead of a
// silent second row.
type Application struct {
	BaseModel
	JobID         string  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_housekeeper"`
	HousekeeperID string  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_housekeeper"`
	Message       *string
	Status        ApplicationStatus `gorm:"type:varchar(20);default:'pending'"`

	Job         *Job  `gorm:"foreignKey:JobID"`
	Housekeeper *User `gorm:"foreignKey:HousekeeperID"`
}
