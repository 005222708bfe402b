package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/chaoscards/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"

	loginPath = "/accounts/login"
)

// ShowLogin 渲染登录页面
func (a *API) ShowLogin(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Sign In",
	})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	// 查找用户
	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title":    "Sign In",
			"error":    "Invalid username or password.",
			"formName": username,
		})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title":    "Sign In",
			"error":    "Invalid username or password.",
			"formName": username,
		})
		return
	}

	if !a.startSession(c, &user) {
		return
	}

	addFlash(c, flashSuccess, "Successfully signed in as "+user.Username+".")
	c.Redirect(http.StatusFound, "/")
}

// ShowRegister 渲染注册页面
func (a *API) ShowRegister(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "register.html", gin.H{
		"title": "Register",
	})
}

// Register creates an account and signs the new user straight in.
func (a *API) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var errMsg string
	switch {
	case username == "":
		errMsg = "Username is required."
	case len(username) > 150:
		errMsg = "Username must be 150 characters or fewer."
	case len(password) < 8:
		errMsg = "Password must be at least 8 characters."
	}

	if errMsg == "" {
		var existing db.User
		err := a.db.Where("username = ?", username).First(&existing).Error
		if err == nil {
			errMsg = "That username is already taken."
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			a.serverError(c, "check username", err)
			return
		}
	}

	if errMsg != "" {
		a.renderHTML(c, http.StatusOK, "register.html", gin.H{
			"title":    "Register",
			"error":    errMsg,
			"formName": username,
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.serverError(c, "hash password", err)
		return
	}

	user := db.User{Username: username, Password: string(hashed)}
	if err := a.db.Create(&user).Error; err != nil {
		a.serverError(c, "create user", err)
		return
	}

	if !a.startSession(c, &user) {
		return
	}

	addFlash(c, flashSuccess, "Successfully signed in as "+user.Username+".")
	c.Redirect(http.StatusFound, "/")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
	addFlash(c, flashSuccess, "You have signed out.")
	c.Redirect(http.StatusFound, "/")
}

func (a *API) startSession(c *gin.Context, user *db.User) bool {
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		a.serverError(c, "save session", err)
		return false
	}
	return true
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID returns the authenticated user's id. Handlers behind
// AuthRequired can rely on ok being true.
func currentUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	value := session.Get(sessionUserIDKey)
	if value == nil {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func currentUsername(c *gin.Context) string {
	session := sessions.Default(c)
	if name, ok := session.Get(sessionUsernameKey).(string); ok {
		return name
	}
	return ""
}
