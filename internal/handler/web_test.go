package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/chaoscards/internal/db"
	"github.com/chaoscards/internal/router"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ginOnce sync.Once

func setupWebTest(t *testing.T) (*gin.Engine, func()) {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.About{}, &db.CollaborateRequest{}, &db.Card{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	r := router.SetupRouter("test-secret", "../../web/template", t.TempDir(), "/uploads")

	return r, func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// cookieJar keeps the session cookie alive across requests, the way a
// browser would.
type cookieJar map[string]*http.Cookie

func (j cookieJar) update(res *http.Response) {
	for _, c := range res.Cookies() {
		j[c.Name] = c
	}
}

func (j cookieJar) apply(req *http.Request) {
	for _, c := range j {
		req.AddCookie(c)
	}
}

func getPage(r *gin.Engine, path string, jar cookieJar) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if jar != nil {
		jar.apply(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if jar != nil {
		jar.update(w.Result())
	}
	return w
}

func submitForm(r *gin.Engine, method, path string, values url.Values, jar cookieJar) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if jar != nil {
		jar.apply(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if jar != nil {
		jar.update(w.Result())
	}
	return w
}

// registerUser signs up a fresh account through the real register flow and
// returns its database id. The jar ends up holding a signed-in session.
func registerUser(t *testing.T, r *gin.Engine, jar cookieJar, username string) uint {
	t.Helper()

	w := submitForm(r, http.MethodPost, "/accounts/register", url.Values{
		"username": {username},
		"password": {"password123"},
	}, jar)
	if w.Code != http.StatusFound {
		t.Fatalf("register returned status %d: %s", w.Code, w.Body.String())
	}

	var user db.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		t.Fatalf("failed to load registered user: %v", err)
	}
	return user.ID
}
