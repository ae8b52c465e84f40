package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maheshvali1990/Society-maintenance-tracker/utils"
)

func TestExtractReceiptFields(t *testing.T) {
	ocrText := `Payment Successful
₹ 1,500.00
Paid to Green Meadows Society
UPI Transaction ID: 501234987654
Jan 22, 2025 10:14 AM`

	fields := utils.ExtractReceiptFields(ocrText)
	assert.Equal(t, "1500.00", fields.Amount)
	assert.Equal(t, "501234987654", fields.ReceiptID)
	assert.Equal(t, "2025-01-22", fields.Date)
	assert.Empty(t, fields.Warnings)
}

func TestExtractReceiptFieldsCurrencyVariants(t *testing.T) {
	assert.Equal(t, "500.00", utils.ExtractReceiptFields("Rs.500 received").Amount)
	assert.Equal(t, "1200.50", utils.ExtractReceiptFields("INR 1200.50 credited").Amount)
	assert.Equal(t, "2300.00", utils.ExtractReceiptFields("Rs 2,300 maintenance").Amount)
}

func TestExtractReceiptFieldsPartial(t *testing.T) {
	// 三个字段彼此独立，缺哪个都不算错误
	fields := utils.ExtractReceiptFields("UPI txn ID 887722334455 no amount visible")
	assert.Empty(t, fields.Amount)
	assert.Equal(t, "887722334455", fields.ReceiptID)
	assert.Empty(t, fields.Date)
}

func TestExtractReceiptFieldsFullMonthName(t *testing.T) {
	fields := utils.ExtractReceiptFields("Transferred on February 5, 2025")
	assert.Equal(t, "2025-02-05", fields.Date)
}

func TestExtractReceiptFieldsNoStructure(t *testing.T) {
	fields := utils.ExtractReceiptFields("completely unrelated text")
	assert.Empty(t, fields.Amount)
	assert.Empty(t, fields.ReceiptID)
	assert.Empty(t, fields.Date)
	assert.Empty(t, fields.Warnings)
}
