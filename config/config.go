// file: config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 汇总全部运行时配置，启动时加载一次
type Config struct {
	Environment    string
	ServerAddr     string
	MySQLDSN       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionBackend string // redis / mysql
	SessionTTL     time.Duration
	CookieSecure   bool
	AdminUsername  string
	AdminPassword  string
}

// Load 读取 .env（如果存在）和环境变量
func Load() Config {
	godotenv.Load()

	return Config{
		Environment:    getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		MySQLDSN:       getEnv("MYSQL_DSN", "root:123456@tcp(localhost:3306)/frostctf?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		SessionBackend: getEnv("SESSION_BACKEND", "redis"),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 168)) * time.Hour,
		CookieSecure:   getEnv("ENV", "development") == "production",
		AdminUsername:  getEnv("ADMIN_USERNAME", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
