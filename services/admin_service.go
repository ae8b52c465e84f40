package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/models"
)

// 管理员服务错误
var (
	ErrAdminNotFound       = errors.New("admin not found")
	ErrPasswordIncorrect   = errors.New("incorrect password")
	ErrAdminInactive       = errors.New("admin account is inactive")
	ErrUsernameAlreadyUsed = errors.New("username already exists")
)

// InterfaceAdminService 定义管理员服务接口
type InterfaceAdminService interface {
	Authenticate(username, password string) (*models.Admin, error)
	CreateAdmin(username, password, role string) (*models.Admin, error)
	EnsureDefaultAdmin() error
}

// AdminService 提供管理员账户相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1. Authenticate 校验用户名和密码
func (s *AdminService) Authenticate(username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if admin.Status != "active" {
		return nil, ErrAdminInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return &admin, nil
}

// 2. CreateAdmin 创建管理员账户
func (s *AdminService) CreateAdmin(username, password, role string) (*models.Admin, error) {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameAlreadyUsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := models.Admin{
		Username: username,
		Password: string(hashed),
		Role:     role,
		Status:   "active",
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// 3. EnsureDefaultAdmin 确保系统中至少有一个管理员账户
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := s.CreateAdmin("admin", s.Config.DefaultAdminPassword, "admin")
	return err
}
