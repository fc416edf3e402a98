package fiber

import (
	"context"

	"github.com/gofiber/fiber/v3"

	blog "github.com/Garrette27/fullstack-blog-redux"
)

// BlobReader is the optional read side of blob storage; when the
// wired gateway provides it the adapter serves uploaded files back.
type BlobReader interface {
	GetBlob(ctx context.Context, path string) ([]byte, error)
}

// Adapter mounts the blog surface on a Fiber app: auth routes, posts
// and comments CRUD, and the upload endpoint the post editor uses.
type Adapter struct {
	app  *fiber.App
	blog *blog.Blog
}

func New(app *fiber.App, b *blog.Blog) *Adapter {
	return &Adapter{app: app, blog: b}
}

func (a *Adapter) RegisterRoutes(basePath string) {
	if basePath == "" {
		basePath = "/api"
	}
	api := a.app.Group(basePath)

	// Public routes
	api.Post("/auth/sign-up", a.signUp)
	api.Post("/auth/sign-in", a.signIn)
	api.Get("/auth/session", a.session)

	api.Get("/posts", a.listPosts)
	api.Get("/posts/:id", a.getPost)
	api.Get("/posts/:id/comments", a.listComments)

	// Protected routes. Fiber v3 runs route handlers in argument
	// order, so the auth/ownership guards must precede the handler.
	api.Post("/auth/sign-out", a.requireAuth, a.signOut)

	api.Post("/posts", a.requireAuth, a.createPost)
	api.Put("/posts/:id", a.requireAuth, a.requirePostOwner, a.updatePost)
	api.Delete("/posts/:id", a.requireAuth, a.requirePostOwner, a.deletePost)

	api.Post("/posts/:id/comments", a.requireAuth, a.createComment)
	api.Put("/comments/:id", a.requireAuth, a.requireCommentOwner, a.updateComment)
	api.Delete("/comments/:id", a.requireAuth, a.requireCommentOwner, a.deleteComment)

	api.Post("/upload", a.requireAuth, a.upload)
}

// RegisterBlobRoute serves uploaded files from prefix, e.g. "/blobs".
func (a *Adapter) RegisterBlobRoute(prefix string, reader BlobReader) {
	a.app.Get(prefix+"/*", func(c fiber.Ctx) error {
		data, err := reader.GetBlob(c.Context(), c.Params("*"))
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.Send(data)
	})
}
