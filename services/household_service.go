package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/models"
)

// 住户服务错误
var (
	ErrHouseholdNotFound     = errors.New("household not found")
	ErrHouseholdAlreadyExist = errors.New("household with this flat number and wing already exists")
	ErrHouseholdInvalid      = errors.New("flat number and owner/renter name are required")
)

// InterfaceHouseholdService 定义住户服务接口
type InterfaceHouseholdService interface {
	GetAllHouseholds(page, pageSize int) ([]models.Household, int64, error)
	ListAllOrdered() ([]models.Household, error)
	GetHouseholdByID(id uint) (*models.Household, error)
	FindByFlatWing(flatNumber, wing string) (*models.Household, error)
	CreateHousehold(flatNumber, wing, ownerRenterName string) (*models.Household, error)
	UpdateHousehold(id uint, flatNumber, wing, ownerRenterName string) (*models.Household, error)
	DeleteHousehold(id uint) error
}

// HouseholdService 提供住户相关的服务
type HouseholdService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHouseholdService 创建一个新的住户服务
func NewHouseholdService(db *gorm.DB, cfg *config.Config) InterfaceHouseholdService {
	return &HouseholdService{
		DB:     db,
		Config: cfg,
	}
}

// normalizeIdentity 规范化住户身份字段：门牌号去连字符并大写，翼楼大写
func normalizeIdentity(flatNumber, wing string) (string, *string) {
	flat := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(flatNumber), "-", ""))
	w := strings.ToUpper(strings.TrimSpace(wing))
	if w == "" {
		// 无翼楼存 NULL 而不是空串
		return flat, nil
	}
	return flat, &w
}

// wingCondition 构造翼楼查询条件，空串匹配 NULL
func wingCondition(db *gorm.DB, wing *string) *gorm.DB {
	if wing == nil {
		return db.Where("wing IS NULL")
	}
	return db.Where("wing = ?", *wing)
}

// 1. GetAllHouseholds 获取所有住户列表，支持分页
func (s *HouseholdService) GetAllHouseholds(page, pageSize int) ([]models.Household, int64, error) {
	var households []models.Household
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.Household{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Order("wing, flat_number").Limit(pageSize).Offset(offset).Find(&households).Error; err != nil {
		return nil, 0, err
	}

	return households, total, nil
}

// 2. ListAllOrdered 获取按 (翼楼, 门牌号) 排序的全部住户
func (s *HouseholdService) ListAllOrdered() ([]models.Household, error) {
	var households []models.Household
	if err := s.DB.Order("wing, flat_number").Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

// 3. GetHouseholdByID 根据ID获取住户
func (s *HouseholdService) GetHouseholdByID(id uint) (*models.Household, error) {
	var household models.Household
	if err := s.DB.First(&household, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}
	return &household, nil
}

// 4. FindByFlatWing 按 (门牌号, 翼楼) 组合查找住户，wing 为空串表示无翼楼
func (s *HouseholdService) FindByFlatWing(flatNumber, wing string) (*models.Household, error) {
	flat, w := normalizeIdentity(flatNumber, wing)

	var household models.Household
	query := wingCondition(s.DB.Where("flat_number = ?", flat), w)
	if err := query.First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}
	return &household, nil
}

// 5. CreateHousehold 创建住户，(门牌号, 翼楼) 组合必须唯一
func (s *HouseholdService) CreateHousehold(flatNumber, wing, ownerRenterName string) (*models.Household, error) {
	flat, w := normalizeIdentity(flatNumber, wing)
	name := strings.TrimSpace(ownerRenterName)
	if flat == "" || name == "" {
		return nil, ErrHouseholdInvalid
	}

	var household *models.Household
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 查重
		var count int64
		query := wingCondition(tx.Model(&models.Household{}).Where("flat_number = ?", flat), w)
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrHouseholdAlreadyExist
		}

		household = &models.Household{
			FlatNumber:      flat,
			Wing:            w,
			OwnerRenterName: name,
		}
		if err := tx.Create(household).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrHouseholdAlreadyExist
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return household, nil
}

// 6. UpdateHousehold 编辑住户，查重时排除自身
func (s *HouseholdService) UpdateHousehold(id uint, flatNumber, wing, ownerRenterName string) (*models.Household, error) {
	flat, w := normalizeIdentity(flatNumber, wing)
	name := strings.TrimSpace(ownerRenterName)
	if flat == "" || name == "" {
		return nil, ErrHouseholdInvalid
	}

	var household models.Household
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&household, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHouseholdNotFound
			}
			return err
		}

		// 新的 (门牌号, 翼楼) 不能与其他住户冲突
		var count int64
		query := wingCondition(tx.Model(&models.Household{}).Where("flat_number = ? AND id <> ?", flat, id), w)
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrHouseholdAlreadyExist
		}

		household.FlatNumber = flat
		household.Wing = w
		household.OwnerRenterName = name
		if err := tx.Save(&household).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrHouseholdAlreadyExist
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &household, nil
}

// 7. DeleteHousehold 删除住户并级联删除其全部缴费记录
// 级联在这里显式执行而不是依赖ORM隐式行为，便于测试
func (s *HouseholdService) DeleteHousehold(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var household models.Household
		if err := tx.First(&household, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHouseholdNotFound
			}
			return err
		}

		if err := tx.Where("household_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&household).Error
	})
}
