package model

type StatusAudit struct {
	AuditID       uint64 `gorm:"column:audit_id;primaryKey;autoIncrement"`
	ApplicationID uint64 `gorm:"column:application_id;not null;index"`
	FromStatus    string `gorm:"column:from_status;type:text;not null"`
	ToStatus      string `gorm:"column:to_status;type:text;not null"`
	Actor         string `gorm:"column:actor;type:text;not null"`
	CreatedAt     string `gorm:"column:created_at;type:text;not null"`
}

func (StatusAudit) TableName() string {
	return "application_status_audits"
}
