package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/models"
)

// 缴费服务错误
var (
	ErrInvalidAmount = errors.New("invalid amount entered, please enter a number")
	ErrInvalidDate   = errors.New("invalid payment date, expected YYYY-MM-DD")
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrInvalidPeriod = errors.New("payment month must be between 1 and 12")
)

// RecordPaymentInput 缴费录入的原始表单字段，均为字符串，空串表示未填写
type RecordPaymentInput struct {
	AmountPaid  string `json:"amount_paid"`
	PaymentDate string `json:"payment_date"` // YYYY-MM-DD
	Status      string `json:"status"`
	ReceiptID   string `json:"receipt_id"`
	Notes       string `json:"notes"`
}

// StatementEntry 月度账单中的一行：住户及其当期缴费记录
type StatementEntry struct {
	Household models.Household `json:"household"`
	Payment   models.Payment   `json:"payment"`
}

// InterfacePaymentService 定义缴费服务接口
type InterfacePaymentService interface {
	GetOrCreatePayment(householdID uint, month, year int) (*models.Payment, error)
	RecordPayment(householdID uint, year, month int, input RecordPaymentInput) (*models.Payment, error)
	GetMonthlyStatement(month, year int) ([]StatementEntry, error)
}

// PaymentService 提供缴费记录相关的服务
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceRedisService
}

// NewPaymentService 创建一个新的缴费服务
func NewPaymentService(db *gorm.DB, cfg *config.Config, cache InterfaceRedisService) InterfacePaymentService {
	return &PaymentService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
	}
}

// IsLatePayment 逾期判定
// 缴费发生在账期之后的任何月份一律算逾期；缴费发生在账期当月时，
// 晚于当月21日算逾期；缴费月份早于账期的情况不判逾期
func IsLatePayment(paymentDate time.Time, month, year int) bool {
	py, pm := paymentDate.Year(), int(paymentDate.Month())
	if py > year || (py == year && pm > month) {
		return true
	}
	if py == year && pm == month {
		return paymentDate.Day() > models.LateDayCutoff
	}
	return false
}

// 1. GetOrCreatePayment 查找或创建某住户某账期的缴费记录，幂等
// 唯一性由数据库 (household_id, month, year) 约束兜底：并发创建时
// 后到者收到唯一键冲突，按"别人已创建"处理并重新读取
func (s *PaymentService) GetOrCreatePayment(householdID uint, month, year int) (*models.Payment, error) {
	if month < 1 || month > 12 || year <= 0 {
		return nil, ErrInvalidPeriod
	}

	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var household models.Household
		if err := tx.First(&household, householdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHouseholdNotFound
			}
			return err
		}
		return s.getOrCreateTx(tx, householdID, month, year, &payment)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// getOrCreateTx 在既有事务内执行查找或创建
func (s *PaymentService) getOrCreateTx(tx *gorm.DB, householdID uint, month, year int, payment *models.Payment) error {
	err := tx.Where("household_id = ? AND payment_month = ? AND payment_year = ?", householdID, month, year).
		First(payment).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	*payment = models.Payment{
		HouseholdID:  householdID,
		PaymentMonth: month,
		PaymentYear:  year,
		Status:       models.PaymentStatusPending,
	}
	if s.Config != nil && s.Config.DefaultExpectedAmount > 0 {
		expected := s.Config.DefaultExpectedAmount
		payment.ExpectedAmount = &expected
	}

	if err := tx.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发请求抢先创建了同一账期，重新读取即可
			return tx.Where("household_id = ? AND payment_month = ? AND payment_year = ?", householdID, month, year).
				First(payment).Error
		}
		return err
	}
	return nil
}

// 2. RecordPayment 录入或更新某账期的缴费信息
// 所有字段先整体校验，任何一项校验失败都放弃整个更新，不保留部分修改
func (s *PaymentService) RecordPayment(householdID uint, year, month int, input RecordPaymentInput) (*models.Payment, error) {
	if month < 1 || month > 12 || year <= 0 {
		return nil, ErrInvalidPeriod
	}

	// 金额：未填写可接受，填了就必须是数字
	var amountPaid *float64
	if raw := strings.TrimSpace(input.AmountPaid); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		v := amount.InexactFloat64()
		amountPaid = &v
	}

	// 日期：必须是 ISO 格式
	var paymentDate *time.Time
	if raw := strings.TrimSpace(input.PaymentDate); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, ErrInvalidDate
		}
		paymentDate = &parsed
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.PaymentStatusPending
	}
	if !models.IsValidPaymentStatus(status) {
		return nil, ErrInvalidStatus
	}

	var receiptID *string
	if raw := strings.TrimSpace(input.ReceiptID); raw != "" {
		receiptID = &raw
	}
	var notes *string
	if raw := strings.TrimSpace(input.Notes); raw != "" {
		notes = &raw
	}

	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var household models.Household
		if err := tx.First(&household, householdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHouseholdNotFound
			}
			return err
		}

		if err := s.getOrCreateTx(tx, householdID, month, year, &payment); err != nil {
			return err
		}

		payment.AmountPaid = amountPaid
		payment.PaymentDate = paymentDate
		payment.Status = status
		payment.ReceiptID = receiptID
		payment.Notes = notes

		// 逾期标志每次录入都重新派生，不独立于日期持久化
		payment.IsLate = paymentDate != nil && IsLatePayment(*paymentDate, month, year)

		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.InvalidateStatement(year, month); err != nil {
			// 缓存失效失败不影响已落库的结果
			config.Warning("failed to invalidate statement cache for %d-%02d: %v", year, month, err)
		}
	}

	return &payment, nil
}

// 3. GetMonthlyStatement 生成某个月份的账单：全部住户及其当期缴费记录
// 首次访问某账期时为每个住户惰性创建 Pending 记录（原始面板视图语义）
func (s *PaymentService) GetMonthlyStatement(month, year int) ([]StatementEntry, error) {
	if month < 1 || month > 12 || year <= 0 {
		return nil, ErrInvalidPeriod
	}

	var entries []StatementEntry
	if s.Cache != nil {
		if hit, err := s.Cache.GetStatement(year, month, &entries); err == nil && hit {
			return entries, nil
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var households []models.Household
		if err := tx.Order("wing, flat_number").Find(&households).Error; err != nil {
			return err
		}

		entries = make([]StatementEntry, 0, len(households))
		for _, hh := range households {
			var payment models.Payment
			if err := s.getOrCreateTx(tx, hh.ID, month, year, &payment); err != nil {
				return err
			}
			entries = append(entries, StatementEntry{Household: hh, Payment: payment})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.CacheStatement(year, month, entries); err != nil {
			config.Warning("failed to cache statement for %d-%02d: %v", year, month, err)
		}
	}

	return entries, nil
}
