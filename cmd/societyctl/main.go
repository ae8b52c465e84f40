package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/internal/infrastructure/database"
	"github.com/maheshvali1990/Society-maintenance-tracker/models"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "societyctl",
		Short: "Society Maintenance Tracker admin tool",
	}

	rootCmd.AddCommand(
		dbInitCmd(),
		createAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dbInitCmd 初始化数据库表结构并创建默认管理员
func dbInitCmd() *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "db-init",
		Short: "Create database tables and the default admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			db, closeDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if drop {
				if err := db.Migrator().DropTable(&models.Payment{}, &models.Household{}, &models.Admin{}); err != nil {
					return fmt.Errorf("drop tables: %w", err)
				}
			}
			if err := db.AutoMigrate(&models.Admin{}, &models.Household{}, &models.Payment{}); err != nil {
				return fmt.Errorf("migrate tables: %w", err)
			}

			if err := services.NewAdminService(db, cfg).EnsureDefaultAdmin(); err != nil {
				return fmt.Errorf("seed default admin: %w", err)
			}

			fmt.Println("database initialized")
			return nil
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "drop existing tables before creating")
	return cmd
}

// createAdminCmd 创建一个新的管理员账户
func createAdminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			db, closeDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			admin, err := services.NewAdminService(db, cfg).CreateAdmin(username, password, "admin")
			if err != nil {
				return err
			}

			fmt.Printf("admin %q created (id=%d)\n", admin.Username, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func openDB(cfg *config.Config) (*gorm.DB, func(), error) {
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return pool.GetDB(), func() { _ = pool.Close() }, nil
}
