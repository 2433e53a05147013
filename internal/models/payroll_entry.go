package models

import "time"

// PayrollEntry is one guard's computed wage line for a payroll period,
// derived from closed attendance records.
type PayrollEntry struct {
	BaseModel

	TenantID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_payroll_tenant_guard_period" json:"tenant_id"`
	GuardID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_tenant_guard_period" json:"guard_id"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_payroll_tenant_guard_period" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null" json:"period_end"`

	HoursWorked float64 `gorm:"not null" json:"hours_worked"`
	HourlyRate  float64 `gorm:"not null" json:"hourly_rate"`
	Amount      float64 `gorm:"not null" json:"amount"`
}
