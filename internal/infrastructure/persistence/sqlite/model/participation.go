package model

import "gorm.io/datatypes"

// Participation is derived from an application holding final_pass.
// The unique index on application_id makes duplicate provisioning impossible.
type Participation struct {
	ParticipationID uint64            `gorm:"column:participation_id;primaryKey;autoIncrement"`
	SubmitterRef    string            `gorm:"column:submitter_ref;type:text;not null;index"`
	PostingID       uint64            `gorm:"column:posting_id;not null"`
	ProgramID       uint64            `gorm:"column:program_id;not null;index"`
	ApplicationID   uint64            `gorm:"column:application_id;not null;uniqueIndex"`
	State           string            `gorm:"column:state;type:text;not null"`
	Role            *string           `gorm:"column:role;type:text"`
	EvalScores      datatypes.JSONMap `gorm:"column:eval_scores"`
	EvalTotal       *int              `gorm:"column:eval_total"`
	EvalComment     *string           `gorm:"column:eval_comment;type:text"`
	EvalBy          *string           `gorm:"column:eval_by;type:text"`
	EvalAt          *string           `gorm:"column:eval_at;type:text"`
	CreatedAt       string            `gorm:"column:created_at;type:text;not null"`
	UpdatedAt       string            `gorm:"column:updated_at;type:text;not null"`
}

func (Participation) TableName() string {
	return "participations"
}
