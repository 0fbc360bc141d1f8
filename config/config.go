package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // в часах
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Shop struct {
		Name       string
		OwnerEmail string // адрес для служебных уведомлений
	}
	Scheduler struct {
		ReminderIntervalHours int
	}
	BackupHMACKey string // Ключ для HMAC-подписи резервных копий
}

// NewConfig создает новый экземпляр конфигурации
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Настройки сервера
	v.SetDefault("server.port", 8080)

	// Настройки базы данных
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.dbname", "agropos_db")

	// Настройки JWT
	v.SetDefault("jwt.secretkey", "your-secret-key-here")
	v.SetDefault("jwt.expiresin", 24)

	// Настройки SMTP
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "your-email@gmail.com")
	v.SetDefault("smtp.password", "your-app-password")
	v.SetDefault("smtp.from", "your-email@gmail.com")

	// Настройки магазина
	v.SetDefault("shop.name", "CV. Maju Bersama")
	v.SetDefault("shop.owneremail", "owner@example.com")

	// Настройки планировщика напоминаний
	v.SetDefault("scheduler.reminderintervalhours", 8)

	// Ключ подписи резервных копий
	v.SetDefault("backuphmackey", "your-backup-hmac-key-here")

	cfg := &Config{}
	cfg.Server.Port = v.GetInt("server.port")
	cfg.DB.Host = v.GetString("db.host")
	cfg.DB.Port = v.GetInt("db.port")
	cfg.DB.User = v.GetString("db.user")
	cfg.DB.Password = v.GetString("db.password")
	cfg.DB.DBName = v.GetString("db.dbname")
	cfg.JWT.SecretKey = v.GetString("jwt.secretkey")
	cfg.JWT.ExpiresIn = v.GetInt("jwt.expiresin")
	cfg.SMTP.Host = v.GetString("smtp.host")
	cfg.SMTP.Port = v.GetInt("smtp.port")
	cfg.SMTP.Username = v.GetString("smtp.username")
	cfg.SMTP.Password = v.GetString("smtp.password")
	cfg.SMTP.From = v.GetString("smtp.from")
	cfg.Shop.Name = v.GetString("shop.name")
	cfg.Shop.OwnerEmail = v.GetString("shop.owneremail")
	cfg.Scheduler.ReminderIntervalHours = v.GetInt("scheduler.reminderintervalhours")
	cfg.BackupHMACKey = v.GetString("backuphmackey")

	return cfg, nil
}
