package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshvali1990/Society-maintenance-tracker/models"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

func newChatFixture(t *testing.T) (services.InterfaceChatService, services.InterfaceHouseholdService, services.InterfacePaymentService) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)
	return services.NewChatService(cfg, households, payments), households, payments
}

func TestExtractReceiptsTwoLineFinalize(t *testing.T) {
	chat, households, _ := newChatFixture(t)

	hh, err := households.CreateHousehold("12", "B", "Ravi Kumar")
	require.NoError(t, err)

	// 第一条消息必须在第二条开始前就被结算并识别为附件
	export := "15/01/2025, 10:12 - Ravi Kumar: <Media omitted> Flat B-12\n" +
		"15/01/2025, 10:13 - Meena Shah: thanks everyone"

	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Empty(t, result.Errors)

	match := result.Matches[0]
	assert.Equal(t, hh.ID, match.HouseholdID)
	assert.Equal(t, "12", match.FlatNumber)
	assert.Equal(t, "B", match.Wing)
	assert.Equal(t, 1, match.PaymentMonth)
	assert.Equal(t, 2025, match.PaymentYear)
}

func TestExtractReceiptsFinalizesLastMessage(t *testing.T) {
	chat, households, _ := newChatFixture(t)

	_, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	// 文件以附件消息结尾，没有后续行触发结算
	export := "15/01/2025, 10:12 - Ravi Kumar: IMG-20250115.jpg (file attached: IMG-20250115.jpg)> Flat A-101"

	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "101", result.Matches[0].FlatNumber)
}

func TestExtractReceiptsMultilineMessage(t *testing.T) {
	chat, households, _ := newChatFixture(t)

	_, err := households.CreateHousehold("204", "", "Meena Shah")
	require.NoError(t, err)

	// 续行属于上一条消息，标识在续行里一样要被找到
	export := "15/01/2025, 10:12 - Meena Shah: <Media omitted>\n" +
		"Flat 204 January maintenance\n" +
		"15/01/2025, 10:15 - Someone: unrelated"

	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "204", result.Matches[0].FlatNumber)
	assert.Equal(t, "", result.Matches[0].Wing)
}

func TestExtractReceiptsUnknownHousehold(t *testing.T) {
	chat, _, _ := newChatFixture(t)

	export := "15/01/2025, 10:12 - Ravi Kumar: <Media omitted> Flat C-9"

	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no household found")
}

func TestExtractReceiptsSkipsUnidentifiable(t *testing.T) {
	chat, _, _ := newChatFixture(t)

	// 识别不出门牌号的附件静默跳过，普通聊天同样忽略
	export := "15/01/2025, 10:12 - Ravi Kumar: <Media omitted>\n" +
		"15/01/2025, 10:13 - Meena Shah: good morning all"

	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.Empty(t, result.Errors)
}

func TestExtractReceiptsBadTimestamp(t *testing.T) {
	chat, households, _ := newChatFixture(t)

	_, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	// 时间戳解析失败只记错误，扫描继续
	export := "99/99/2025, 10:12 - Ravi Kumar: <Media omitted> Flat A-101\n" +
		"15/01/2025, 10:13 - Ravi Kumar: <Media omitted> Flat A-101"

	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "could not parse timestamp")
}

func TestExtractReceiptsCreatesPaymentRecord(t *testing.T) {
	chat, households, payments := newChatFixture(t)

	hh, err := households.CreateHousehold("12", "B", "Ravi Kumar")
	require.NoError(t, err)

	export := "15/01/2025, 10:12 - Ravi Kumar: <Media omitted> Flat B-12"
	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)

	// 扫描的副作用：该账期的缴费记录已经存在且为 Pending
	payment, err := payments.GetOrCreatePayment(hh.ID, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, result.Matches[0].PaymentID, payment.ID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
}

func TestExtractReceiptsDayFirstTimestamps(t *testing.T) {
	chat, households, _ := newChatFixture(t)

	_, err := households.CreateHousehold("12", "B", "Ravi Kumar")
	require.NoError(t, err)

	// 02/01 应按日在前解析为一月二日
	export := "02/01/2025, 9:05 am - Ravi Kumar: <Media omitted> Flat B-12"

	result, err := chat.ExtractReceipts(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 1, result.Matches[0].PaymentMonth)
	assert.Equal(t, 2025, result.Matches[0].PaymentYear)
}
