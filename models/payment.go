package models

import "time"

// 缴费状态
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusPartial = "Partial"
)

// 逾期判定的当月截止日，缴费日期晚于该日视为逾期
const LateDayCutoff = 21

// Payment 表示某住户某个 (月, 年) 账期的维护费记录
// (household_id, payment_month, payment_year) 组合唯一，由数据库约束保证
type Payment struct {
	BaseModel
	HouseholdID    uint       `gorm:"not null;uniqueIndex:idx_household_period" json:"household_id"`
	PaymentMonth   int        `gorm:"not null;uniqueIndex:idx_household_period" json:"payment_month"` // 1 表示一月
	PaymentYear    int        `gorm:"not null;uniqueIndex:idx_household_period" json:"payment_year"`  // 如 2025
	AmountPaid     *float64   `json:"amount_paid"`                                                    // 实缴金额
	ExpectedAmount *float64   `json:"expected_amount"`                                                // 当月应缴金额（可选）
	PaymentDate    *time.Time `gorm:"type:date" json:"payment_date"`                                  // 缴费日期
	Status         string     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`      // Pending / Paid / Partial
	ReceiptID      *string    `gorm:"type:varchar(100)" json:"receipt_id"`                            // UPI 交易号等凭证编号
	Notes          *string    `gorm:"type:text" json:"notes"`                                         // 备注
	IsLate         bool       `gorm:"not null;default:false" json:"is_late"`                          // 是否逾期，由缴费日期派生

	// 关联
	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
}

// IsValidPaymentStatus 校验缴费状态取值
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial:
		return true
	}
	return false
}
