package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshvali1990/Society-maintenance-tracker/models"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

func TestGetOrCreatePaymentIdempotent(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	hh, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	first, err := payments.GetOrCreatePayment(hh.ID, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, first.Status)
	assert.False(t, first.IsLate)
	assert.Nil(t, first.AmountPaid)

	second, err := payments.GetOrCreatePayment(hh.ID, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).
		Where("household_id = ? AND payment_month = ? AND payment_year = ?", hh.ID, 1, 2025).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreatePaymentUnknownHousehold(t *testing.T) {
	db := setupTestDB(t)
	payments := services.NewPaymentService(db, testConfig(), nil)

	_, err := payments.GetOrCreatePayment(42, 1, 2025)
	assert.ErrorIs(t, err, services.ErrHouseholdNotFound)
}

func TestGetOrCreatePaymentInvalidPeriod(t *testing.T) {
	db := setupTestDB(t)
	payments := services.NewPaymentService(db, testConfig(), nil)

	_, err := payments.GetOrCreatePayment(1, 0, 2025)
	assert.ErrorIs(t, err, services.ErrInvalidPeriod)
	_, err = payments.GetOrCreatePayment(1, 13, 2025)
	assert.ErrorIs(t, err, services.ErrInvalidPeriod)
}

func TestRecordPayment(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	hh, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	payment, err := payments.RecordPayment(hh.ID, 2025, 1, services.RecordPaymentInput{
		AmountPaid:  "1500",
		PaymentDate: "2025-01-15",
		Status:      models.PaymentStatusPaid,
		ReceiptID:   "501234987654",
		Notes:       "paid via UPI",
	})
	require.NoError(t, err)
	require.NotNil(t, payment.AmountPaid)
	assert.Equal(t, 1500.0, *payment.AmountPaid)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	require.NotNil(t, payment.ReceiptID)
	assert.Equal(t, "501234987654", *payment.ReceiptID)
	assert.False(t, payment.IsLate)
}

func TestRecordPaymentInvalidAmountNoPartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	hh, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	original, err := payments.RecordPayment(hh.ID, 2025, 1, services.RecordPaymentInput{
		AmountPaid:  "1500",
		PaymentDate: "2025-01-10",
		Status:      models.PaymentStatusPaid,
	})
	require.NoError(t, err)

	// 金额非法时整个更新都要被丢弃
	_, err = payments.RecordPayment(hh.ID, 2025, 1, services.RecordPaymentInput{
		AmountPaid: "abc",
		Status:     models.PaymentStatusPartial,
		Notes:      "should not persist",
	})
	assert.ErrorIs(t, err, services.ErrInvalidAmount)

	var stored models.Payment
	require.NoError(t, db.First(&stored, original.ID).Error)
	require.NotNil(t, stored.AmountPaid)
	assert.Equal(t, 1500.0, *stored.AmountPaid)
	assert.Equal(t, models.PaymentStatusPaid, stored.Status)
	assert.Nil(t, stored.Notes)
}

func TestRecordPaymentInvalidDateAndStatus(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	hh, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	_, err = payments.RecordPayment(hh.ID, 2025, 1, services.RecordPaymentInput{
		PaymentDate: "15-01-2025",
	})
	assert.ErrorIs(t, err, services.ErrInvalidDate)

	_, err = payments.RecordPayment(hh.ID, 2025, 1, services.RecordPaymentInput{
		Status: "Overdue",
	})
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestRecordPaymentLateClassification(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	hh, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	cases := []struct {
		name string
		date string
		late bool
	}{
		{"after cutoff same month", "2025-01-22", true},
		{"before cutoff same month", "2025-01-15", false},
		{"next month", "2025-02-05", true},
		{"next year", "2026-01-03", true},
		{"no date", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payment, err := payments.RecordPayment(hh.ID, 2025, 1, services.RecordPaymentInput{
				AmountPaid:  "1500",
				PaymentDate: tc.date,
				Status:      models.PaymentStatusPaid,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.late, payment.IsLate)
		})
	}
}

func TestIsLatePayment(t *testing.T) {
	mustDate := func(s string) time.Time {
		d, err := time.Parse(time.DateOnly, s)
		require.NoError(t, err)
		return d
	}

	// 账期 2025-01
	assert.True(t, services.IsLatePayment(mustDate("2025-01-22"), 1, 2025))
	assert.False(t, services.IsLatePayment(mustDate("2025-01-21"), 1, 2025))
	assert.True(t, services.IsLatePayment(mustDate("2025-02-05"), 1, 2025))
	assert.True(t, services.IsLatePayment(mustDate("2026-01-01"), 1, 2025))
	// 早于账期的缴费不算逾期
	assert.False(t, services.IsLatePayment(mustDate("2024-12-28"), 1, 2025))
}

func TestGetMonthlyStatementLazilyCreatesPending(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	_, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)
	_, err = households.CreateHousehold("102", "A", "Meena Shah")
	require.NoError(t, err)

	entries, err := payments.GetMonthlyStatement(3, 2025)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, models.PaymentStatusPending, entry.Payment.Status)
		assert.Equal(t, 3, entry.Payment.PaymentMonth)
		assert.Equal(t, 2025, entry.Payment.PaymentYear)
	}

	// 再次访问同一账期拿到同一批记录
	again, err := payments.GetMonthlyStatement(3, 2025)
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, entries[0].Payment.ID, again[0].Payment.ID)
	assert.Equal(t, entries[1].Payment.ID, again[1].Payment.ID)
}

func TestGetMonthlyStatementDefaultExpectedAmount(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.DefaultExpectedAmount = 1500
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	_, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	entries, err := payments.GetMonthlyStatement(3, 2025)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Payment.ExpectedAmount)
	assert.Equal(t, 1500.0, *entries[0].Payment.ExpectedAmount)
}
