package handler

import (
	"errors"
	"net/http"

	"github.com/chaoscards/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowHome renders the landing page. The template varies on whether a
// session identity is present; the handler only supplies the facts.
func (a *API) ShowHome(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":         "Chaos Cards",
		"spinAttempted": false,
	})
}

// SpinCard draws one random card from the signed-in user's deck. The spin
// always counts as attempted so the template can tell "never asked" apart
// from "asked and the deck was empty".
func (a *API) SpinCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	card, err := a.cards.Draw(userID)
	if err != nil {
		a.serverError(c, "draw card", err)
		return
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":         "Chaos Cards",
		"randomCard":    card,
		"spinAttempted": true,
	})
}

// ShowCards renders the paginated deck plus the create form.
func (a *API) ShowCards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	a.renderCardsPage(c, http.StatusOK, userID, page, service.CardInput{}, nil)
}

// CreateCard handles the create form on the deck page. Invalid input
// redisplays the page with field errors and the submitted values.
func (a *API) CreateCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	input, ok := a.cardInputFromForm(c)
	if !ok {
		return
	}

	if _, err := a.cards.Create(userID, input); err != nil {
		var fieldErrs service.FieldErrors
		if errors.As(err, &fieldErrs) {
			addFlash(c, flashError, "Error creating card. Please try again.")
			a.renderCardsPage(c, http.StatusOK, userID, 1, input, fieldErrs)
			return
		}
		a.serverError(c, "create card", err)
		return
	}

	addFlash(c, flashSuccess, "Card created successfully!")
	c.Redirect(http.StatusFound, "/my-cards")
}

// UpdateCard applies an owner-only edit. Edits are all-or-nothing: invalid
// input reports an error and redirects without redisplaying the attempted
// values, matching the in-page edit form behaviour.
func (a *API) UpdateCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	input, ok := a.cardInputFromForm(c)
	if !ok {
		return
	}

	if _, err := a.cards.Update(userID, id, input); err != nil {
		var fieldErrs service.FieldErrors
		switch {
		case errors.Is(err, service.ErrCardNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.As(err, &fieldErrs):
			addFlash(c, flashError, "Error updating card. Please try again.")
			c.Redirect(http.StatusFound, "/my-cards")
		default:
			a.serverError(c, "update card", err)
		}
		return
	}

	addFlash(c, flashSuccess, "Card updated successfully!")
	c.Redirect(http.StatusFound, "/my-cards")
}

// DeleteCard removes an owned card. A card that does not exist or belongs
// to someone else is a plain 404 with no status message.
func (a *API) DeleteCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if err := a.cards.Delete(userID, id); err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		a.serverError(c, "delete card", err)
		return
	}

	addFlash(c, flashSuccess, "Card deleted successfully!")
	c.Redirect(http.StatusFound, "/my-cards")
}

// cardInputFromForm reads the card fields and the optional featured image.
// The second return is false when the request was already answered.
func (a *API) cardInputFromForm(c *gin.Context) (service.CardInput, bool) {
	input := service.CardInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	imageRef, err := a.saveFeaturedImage(c, "featured_image")
	if err != nil {
		a.serverError(c, "store card image", err)
		return input, false
	}
	input.Image = imageRef

	return input, true
}

func (a *API) renderCardsPage(c *gin.Context, status int, userID uint, page int, form service.CardInput, fieldErrs service.FieldErrors) {
	result, err := a.cards.ListOwned(userID, page, service.DefaultPageSize)
	if err != nil {
		a.serverError(c, "list cards", err)
		return
	}

	if fieldErrs == nil {
		fieldErrs = service.FieldErrors{}
	}

	a.renderHTML(c, status, "user_cards.html", gin.H{
		"title":       "My Cards",
		"cards":       result.Cards,
		"page":        result.Page,
		"totalPages":  result.TotalPages,
		"isPaginated": result.IsPaginated,
		"form":        form,
		"fieldErrors": fieldErrs,
	})
}
