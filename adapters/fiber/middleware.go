package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	blog "github.com/Garrette27/fullstack-blog-redux"
)

// requireAuth gates write intents on an authenticated session store.
// The store re-checks on create anyway; this keeps unauthenticated
// requests from reaching the gateway for the advisory-only paths too.
func (a *Adapter) requireAuth(c fiber.Ctx) error {
	if !a.blog.Sessions.Authenticated() {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": blog.ErrNotAuthenticated.Error(),
		})
	}
	return c.Next()
}

// requirePostOwner rejects update/delete on a post the viewer does not
// own. The check is advisory, computed from what the cache already
// holds (focused slot, then window) with a gateway lookup as the last
// resort - the cache core itself never blocks non-owners.
func (a *Adapter) requirePostOwner(c fiber.Ctx) error {
	ident := a.blog.Sessions.Identity()
	if ident == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": blog.ErrNotAuthenticated.Error(),
		})
	}

	id := c.Params("id")
	ownerID := ""
	if focused := a.blog.Posts.Focused(); focused != nil && focused.ID == id {
		ownerID = focused.OwnerID
	} else {
		for _, p := range a.blog.Posts.Window() {
			if p.ID == id {
				ownerID = p.OwnerID
				break
			}
		}
	}
	if ownerID == "" {
		post, err := a.blog.Gateway().GetPost(c.Context(), id)
		if err != nil {
			return handleError(c, err)
		}
		ownerID = post.OwnerID
	}

	if ownerID != ident.ID {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"error": "not the post owner",
		})
	}
	return c.Next()
}

// requireCommentOwner is the comment counterpart. There is no
// single-comment gateway lookup, so an uncached comment passes
// through; ownership stays advisory, as the source UI treated it.
func (a *Adapter) requireCommentOwner(c fiber.Ctx) error {
	ident := a.blog.Sessions.Identity()
	if ident == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": blog.ErrNotAuthenticated.Error(),
		})
	}

	id := c.Params("id")
	for _, comment := range a.blog.Comments.Comments() {
		if comment.ID == id && comment.OwnerID != ident.ID {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error": "not the comment owner",
			})
		}
	}
	return c.Next()
}
