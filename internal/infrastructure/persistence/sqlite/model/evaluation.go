package model

type Evaluation struct {
	EvaluationID  uint64  `gorm:"column:evaluation_id;primaryKey;autoIncrement"`
	ApplicationID uint64  `gorm:"column:application_id;not null;index:idx_evaluations_app_created,priority:1"`
	Criterion1    int     `gorm:"column:criterion1;not null;check:criterion1 BETWEEN 0 AND 100"`
	Criterion2    int     `gorm:"column:criterion2;not null;check:criterion2 BETWEEN 0 AND 100"`
	Criterion3    int     `gorm:"column:criterion3;not null;check:criterion3 BETWEEN 0 AND 100"`
	Total         int     `gorm:"column:total;not null"`
	Memo          *string `gorm:"column:memo;type:text"`
	Evaluator     string  `gorm:"column:evaluator;type:text;not null"`
	CreatedAt     string  `gorm:"column:created_at;type:text;not null;index:idx_evaluations_app_created,priority:2"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
