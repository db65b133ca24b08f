package model

// Application keeps the applicant snapshot taken at submission; only status and
// updated_at change afterwards.
type Application struct {
	ApplicationID   uint64  `gorm:"column:application_id;primaryKey;autoIncrement"`
	PostingID       uint64  `gorm:"column:posting_id;not null;index"`
	SubmitterRef    string  `gorm:"column:submitter_ref;type:text;not null;index"`
	ApplicantName   string  `gorm:"column:applicant_name;type:text;not null"`
	ApplicantEmail  string  `gorm:"column:applicant_email;type:text;not null"`
	ApplicantPhone  string  `gorm:"column:applicant_phone;type:text;not null"`
	Attachment1URL  string  `gorm:"column:attachment1_url;type:text;not null"`
	Attachment1Name string  `gorm:"column:attachment1_name;type:text;not null"`
	Attachment2URL  *string `gorm:"column:attachment2_url;type:text"`
	Attachment2Name *string `gorm:"column:attachment2_name;type:text"`
	Referral        *string `gorm:"column:referral;type:text"`
	Status          string  `gorm:"column:status;type:text;not null;index"`
	CreatedAt       string  `gorm:"column:created_at;type:text;not null;index"`
	UpdatedAt       string  `gorm:"column:updated_at;type:text;not null"`
}

func (Application) TableName() string {
	return "applications"
}
