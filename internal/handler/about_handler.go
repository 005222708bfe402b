package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/chaoscards/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowAbout renders the public about page: the latest profile plus an empty
// collaborate form.
func (a *API) ShowAbout(c *gin.Context) {
	a.renderAboutPage(c, http.StatusOK, service.FeedbackInput{}, nil)
}

// SubmitFeedback handles the anonymous collaborate form. Valid input is
// persisted and answered with a redirect; invalid input redisplays the form
// with its field errors and the values the visitor typed.
func (a *API) SubmitFeedback(c *gin.Context) {
	input := service.FeedbackInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	if _, err := a.feedback.Create(input); err != nil {
		var fieldErrs service.FieldErrors
		if errors.As(err, &fieldErrs) {
			addFlash(c, flashError, "Error sending contact form. Please try again.")
			a.renderAboutPage(c, http.StatusOK, input, fieldErrs)
			return
		}
		a.serverError(c, "create collaborate request", err)
		return
	}

	addFlash(c, flashSuccess, "Contact form sent successfully!")
	c.Redirect(http.StatusFound, "/about")
}

func (a *API) renderAboutPage(c *gin.Context, status int, form service.FeedbackInput, fieldErrs service.FieldErrors) {
	about, err := a.about.Latest()
	if err != nil {
		a.serverError(c, "load about", err)
		return
	}

	var content template.HTML
	if about != nil {
		content, err = a.about.RenderContent(about.Content)
		if err != nil {
			a.serverError(c, "render about", err)
			return
		}
	}

	if fieldErrs == nil {
		fieldErrs = service.FieldErrors{}
	}

	a.renderHTML(c, status, "about.html", gin.H{
		"title":       "About",
		"about":       about,
		"content":     content,
		"form":        form,
		"fieldErrors": fieldErrs,
	})
}

// ShowAboutEditor renders the profile editor for the signed-in user.
func (a *API) ShowAboutEditor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	about, err := a.about.ForUser(userID)
	if err != nil {
		a.serverError(c, "load about for edit", err)
		return
	}

	form := service.AboutInput{}
	if about != nil {
		form.Title = about.Title
		form.Content = about.Content
	}

	a.renderHTML(c, http.StatusOK, "about_edit.html", gin.H{
		"title": "Edit About",
		"form":  form,
	})
}

// SaveAbout persists the signed-in user's profile.
func (a *API) SaveAbout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	input := service.AboutInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	imageRef, err := a.saveFeaturedImage(c, "profile_image")
	if err != nil {
		a.serverError(c, "store profile image", err)
		return
	}
	input.Image = imageRef

	if _, err := a.about.Save(userID, input); err != nil {
		var fieldErrs service.FieldErrors
		if errors.As(err, &fieldErrs) {
			addFlash(c, flashError, "Error updating the about page. Please try again.")
			a.renderHTML(c, http.StatusOK, "about_edit.html", gin.H{
				"title":       "Edit About",
				"form":        input,
				"fieldErrors": fieldErrs,
			})
			return
		}
		a.serverError(c, "save about", err)
		return
	}

	addFlash(c, flashSuccess, "About page updated successfully!")
	c.Redirect(http.StatusFound, "/about")
}
