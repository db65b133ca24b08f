package model

type Program struct {
	ProgramID uint64 `gorm:"column:program_id;primaryKey"`
	Name      string `gorm:"column:name;type:text;not null"`
	StartDate string `gorm:"column:start_date;type:text;not null"`
	EndDate   string `gorm:"column:end_date;type:text;not null"`
}

func (Program) TableName() string {
	return "programs"
}

type Posting struct {
	PostingID    uint64  `gorm:"column:posting_id;primaryKey"`
	ProgramID    *uint64 `gorm:"column:program_id;index"`
	Title        string  `gorm:"column:title;type:text;not null"`
	Published    bool    `gorm:"column:published;not null;default:0"`
	StartDate    string  `gorm:"column:start_date;type:text;not null"`
	EndDate      string  `gorm:"column:end_date;type:text;not null"`
	ManualStatus *string `gorm:"column:manual_status;type:text"`
}

func (Posting) TableName() string {
	return "postings"
}

type Reviewer struct {
	ReviewerRef string `gorm:"column:reviewer_ref;type:text;primaryKey"`
	DisplayName string `gorm:"column:display_name;type:text;not null"`
}

func (Reviewer) TableName() string {
	return "reviewers"
}
