package fiber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	blog "github.com/Garrette27/fullstack-blog-redux"
)

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type postInput struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	ImageURL *string `json:"imageUrl"`
}

type commentInput struct {
	Body          string  `json:"body"`
	AttachmentURL *string `json:"attachmentUrl"`
}

// ============================================
// AUTH
// ============================================

func (a *Adapter) signUp(c fiber.Ctx) error {
	var input credentialsInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c)
	}

	if err := a.blog.Sessions.Register(c.Context(), input.Email, input.Password); err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"identity": a.blog.Sessions.Identity(),
		"token":    a.blog.Sessions.Token(),
	})
}

func (a *Adapter) signIn(c fiber.Ctx) error {
	var input credentialsInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c)
	}

	if err := a.blog.Sessions.Login(c.Context(), input.Email, input.Password); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"identity": a.blog.Sessions.Identity(),
		"token":    a.blog.Sessions.Token(),
	})
}

func (a *Adapter) signOut(c fiber.Ctx) error {
	if err := a.blog.Sessions.Logout(c.Context()); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "signed out successfully"})
}

// session rehydrates the session store from the presented token and
// reports who is signed in.
func (a *Adapter) session(c fiber.Ctx) error {
	if err := a.blog.Sessions.CheckSession(c.Context(), extractToken(c)); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"identity":      a.blog.Sessions.Identity(),
		"authenticated": a.blog.Sessions.Authenticated(),
	})
}

// ============================================
// POSTS
// ============================================

func (a *Adapter) listPosts(c fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize", strconv.Itoa(a.blog.PageSize)))
	if err != nil || pageSize < 1 {
		pageSize = a.blog.PageSize
	}

	if err := a.blog.Posts.List(c.Context(), page, pageSize); err != nil {
		return handleError(c, err)
	}

	info := a.blog.Posts.Page()
	return c.JSON(fiber.Map{
		"posts":      a.blog.Posts.Window(),
		"page":       info.ClampedPage(),
		"totalPages": info.TotalPages(),
		"total":      info.Total,
	})
}

func (a *Adapter) getPost(c fiber.Ctx) error {
	if err := a.blog.Posts.Get(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(a.blog.Posts.Focused())
}

func (a *Adapter) createPost(c fiber.Ctx) error {
	var input postInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c)
	}
	if input.Title == "" {
		return handleError(c, blog.ErrTitleRequired)
	}
	if input.Body == "" {
		return handleError(c, blog.ErrBodyRequired)
	}

	if err := a.blog.Posts.Create(c.Context(), input.Title, input.Body, input.ImageURL); err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(a.blog.Posts.Window()[0])
}

func (a *Adapter) updatePost(c fiber.Ctx) error {
	var input postInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c)
	}

	if err := a.blog.Posts.Update(c.Context(), c.Params("id"), input.Title, input.Body, input.ImageURL); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "post updated"})
}

func (a *Adapter) deletePost(c fiber.Ctx) error {
	if err := a.blog.Posts.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "post deleted"})
}

// ============================================
// COMMENTS
// ============================================

func (a *Adapter) listComments(c fiber.Ctx) error {
	// Each request scopes the collection anew; clearing first keeps a
	// failed fetch from showing the previous post's comments.
	a.blog.Comments.ClearAll()

	if err := a.blog.Comments.List(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(a.blog.Comments.Comments())
}

func (a *Adapter) createComment(c fiber.Ctx) error {
	var input commentInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c)
	}
	if input.Body == "" {
		return handleError(c, blog.ErrBodyRequired)
	}

	if err := a.blog.Comments.Create(c.Context(), c.Params("id"), input.Body, input.AttachmentURL); err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(a.blog.Comments.Comments()[0])
}

func (a *Adapter) updateComment(c fiber.Ctx) error {
	var input commentInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c)
	}

	if err := a.blog.Comments.Update(c.Context(), c.Params("id"), input.Body, input.AttachmentURL); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "comment updated"})
}

func (a *Adapter) deleteComment(c fiber.Ctx) error {
	if err := a.blog.Comments.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}

// ============================================
// UPLOAD
// ============================================

func (a *Adapter) upload(c fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return badRequest(c)
	}

	url, err := a.blog.Gateway().UploadBlob(c.Context(), path, c.Body())
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"url": url})
}

// ============================================
// HELPERS
// ============================================

// extractToken pulls the session credential from the request:
// Authorization bearer header first, auth cookie as fallback.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return c.Cookies("auth_token")
}

func badRequest(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body",
	})
}

// handleError maps store errors to HTTP responses.
func handleError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, blog.ErrNotAuthenticated),
		errors.Is(err, blog.ErrInvalidCredentials),
		errors.Is(err, blog.ErrSessionNotFound),
		errors.Is(err, blog.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, blog.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, blog.ErrPostNotFound),
		errors.Is(err, blog.ErrCommentNotFound):
		return http.StatusNotFound

	case errors.Is(err, blog.ErrEmailRequired),
		errors.Is(err, blog.ErrPasswordRequired),
		errors.Is(err, blog.ErrTitleRequired),
		errors.Is(err, blog.ErrBodyRequired),
		errors.Is(err, blog.ErrInvalidPageSize):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
