package router

import (
	"html/template"
	"path/filepath"
	"time"

	"github.com/chaoscards/internal/db"
	"github.com/chaoscards/internal/handler"
	"github.com/chaoscards/internal/logging"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret, templateDir, uploadDir, uploadURLPath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logging.L()))

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("chaoscards_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	})
	r.LoadHTMLGlob(filepath.Join(templateDir, "*.html"))

	// 静态文件服务
	r.Static("/static", "./web/static")
	if uploadDir != "" && uploadURLPath != "" {
		r.Static(uploadURLPath, uploadDir)
	}

	api := handler.NewAPI(db.DB, uploadDir, uploadURLPath, logging.L())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公共页面
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.POST("/about", api.SubmitFeedback)

	// 账号相关路由
	accounts := r.Group("/accounts")
	{
		accounts.GET("/login", api.ShowLogin)
		accounts.POST("/login", api.Login)
		accounts.GET("/register", api.ShowRegister)
		accounts.POST("/register", api.Register)
		accounts.GET("/logout", api.Logout)
	}

	// 需要认证的路由
	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/spin", api.SpinCard)
		auth.GET("/my-cards", api.ShowCards)
		auth.POST("/my-cards", api.CreateCard)
		auth.POST("/my-cards/edit/:id", api.UpdateCard)
		auth.DELETE("/my-cards/delete/:id", api.DeleteCard)
		auth.GET("/my-cards/delete/:id", api.DeleteCard)
		auth.GET("/about/edit", api.ShowAboutEditor)
		auth.POST("/about/edit", api.SaveAbout)
	}

	return r
}

// requestLogger 记录每个请求的方法、路径、状态码和耗时
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
