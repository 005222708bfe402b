package handler

import (
	"net/http"

	"github.com/chaoscards/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	cards     *service.CardService
	feedback  *service.FeedbackService
	about     *service.AboutService
	uploadDir string
	uploadURL string
	log       *zap.Logger
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, uploadDir, uploadURL string, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{
		db:        db,
		cards:     service.NewCardService(db),
		feedback:  service.NewFeedbackService(db),
		about:     service.NewAboutService(db),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
		log:       log,
	}
}

// renderHTML renders a page template with the flash messages and session
// identity every page needs.
func (a *API) renderHTML(c *gin.Context, status int, name string, data gin.H) {
	if _, ok := data["fieldErrors"]; !ok {
		data["fieldErrors"] = service.FieldErrors{}
	}
	data["flashes"] = takeFlashes(c)
	data["username"] = currentUsername(c)
	c.HTML(status, name, data)
}

// serverError logs an unexpected failure and answers with a generic 500.
func (a *API) serverError(c *gin.Context, op string, err error) {
	a.log.Error("unexpected server error", zap.String("op", op), zap.Error(err))
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
