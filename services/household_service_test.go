package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maheshvali1990/Society-maintenance-tracker/models"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

func TestCreateHouseholdAndFindByFlatWing(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewHouseholdService(db, testConfig())

	created, err := svc.CreateHousehold("a-101", "a", "Ravi Kumar")
	require.NoError(t, err)
	assert.Equal(t, "A101", created.FlatNumber)
	require.NotNil(t, created.Wing)
	assert.Equal(t, "A", *created.Wing)

	// 查找时同样做规范化
	found, err := svc.FindByFlatWing("A-101", "a")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// 同一 (门牌号, 翼楼) 不允许重复创建
	_, err = svc.CreateHousehold("A101", "A", "Someone Else")
	assert.ErrorIs(t, err, services.ErrHouseholdAlreadyExist)
}

func TestCreateHouseholdWithoutWing(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewHouseholdService(db, testConfig())

	created, err := svc.CreateHousehold("204", "", "Meena Shah")
	require.NoError(t, err)
	assert.Nil(t, created.Wing)

	// 无翼楼是合法的查找键
	found, err := svc.FindByFlatWing("204", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// 无翼楼的身份同样唯一
	_, err = svc.CreateHousehold("204", "", "Other Person")
	assert.ErrorIs(t, err, services.ErrHouseholdAlreadyExist)

	// 同门牌号但带翼楼是另一个住户
	_, err = svc.CreateHousehold("204", "B", "Third Person")
	assert.NoError(t, err)
}

func TestCreateHouseholdValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewHouseholdService(db, testConfig())

	_, err := svc.CreateHousehold("", "A", "Ravi Kumar")
	assert.ErrorIs(t, err, services.ErrHouseholdInvalid)

	_, err = svc.CreateHousehold("101", "A", "   ")
	assert.ErrorIs(t, err, services.ErrHouseholdInvalid)
}

func TestUpdateHouseholdExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewHouseholdService(db, testConfig())

	first, err := svc.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)
	second, err := svc.CreateHousehold("102", "A", "Meena Shah")
	require.NoError(t, err)

	// 身份不变，只改名字，不应触发查重
	updated, err := svc.UpdateHousehold(first.ID, "101", "A", "Ravi K.")
	require.NoError(t, err)
	assert.Equal(t, "Ravi K.", updated.OwnerRenterName)

	// 改成别人的身份则冲突
	_, err = svc.UpdateHousehold(second.ID, "101", "A", "Meena Shah")
	assert.ErrorIs(t, err, services.ErrHouseholdAlreadyExist)

	_, err = svc.UpdateHousehold(9999, "103", "A", "Nobody")
	assert.ErrorIs(t, err, services.ErrHouseholdNotFound)
}

func TestDeleteHouseholdCascadesPayments(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	households := services.NewHouseholdService(db, cfg)
	payments := services.NewPaymentService(db, cfg, nil)

	hh, err := households.CreateHousehold("101", "A", "Ravi Kumar")
	require.NoError(t, err)

	p1, err := payments.GetOrCreatePayment(hh.ID, 1, 2025)
	require.NoError(t, err)
	p2, err := payments.GetOrCreatePayment(hh.ID, 2, 2025)
	require.NoError(t, err)

	require.NoError(t, households.DeleteHousehold(hh.ID))

	_, err = households.GetHouseholdByID(hh.ID)
	assert.ErrorIs(t, err, services.ErrHouseholdNotFound)

	// 级联删除后按 id 查缴费记录应当不存在
	for _, id := range []uint{p1.ID, p2.ID} {
		var payment models.Payment
		err := db.First(&payment, id).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}
}

func TestDeleteHouseholdNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewHouseholdService(db, testConfig())

	err := svc.DeleteHousehold(42)
	assert.ErrorIs(t, err, services.ErrHouseholdNotFound)
}

func TestListAllOrdered(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewHouseholdService(db, testConfig())

	_, err := svc.CreateHousehold("301", "B", "One")
	require.NoError(t, err)
	_, err = svc.CreateHousehold("102", "A", "Two")
	require.NoError(t, err)
	_, err = svc.CreateHousehold("101", "A", "Three")
	require.NoError(t, err)

	all, err := svc.ListAllOrdered()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "101", all[0].FlatNumber)
	assert.Equal(t, "102", all[1].FlatNumber)
	assert.Equal(t, "301", all[2].FlatNumber)
}
