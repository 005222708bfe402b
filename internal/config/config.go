package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	DatabasePath     string
	SessionSecret    string
	GinMode          string
	TemplateDir      string
	UploadDir        string
	UploadURLPath    string
	RootUserName     string
	RootUserPassword string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 先尝试加载 .env 文件，不存在时静默跳过。
func Load() AppConfig {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "chaoscards.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "chaoscards-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	templateDir := strings.TrimSpace(os.Getenv("TEMPLATE_DIR"))
	if templateDir == "" {
		templateDir = "web/template"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/uploads"
	}

	rootUserName := strings.TrimSpace(os.Getenv("ROOT_USER_NAME"))
	rootUserPassword := strings.TrimSpace(os.Getenv("ROOT_USER_PASSWORD"))

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DatabasePath:     databasePath,
		SessionSecret:    sessionSecret,
		GinMode:          ginMode,
		TemplateDir:      templateDir,
		UploadDir:        uploadDir,
		UploadURLPath:    uploadURLPath,
		RootUserName:     rootUserName,
		RootUserPassword: rootUserPassword,
	}
}
