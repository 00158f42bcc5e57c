package routes

import (
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/handlers"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/middleware"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Handlers groups the handlers the router needs
type Handlers struct {
	Book   *handlers.BookHandler
	Memo   *handlers.MemoHandler
	Store  *handlers.StoreHandler
	Amazon *handlers.AmazonHandler
	Auth   *handlers.AuthHandler
}

// SetupRoutes sets up all API routes
func SetupRoutes(r *gin.Engine, h *Handlers, jwtService service.JWTServiceInterface) {
	api := r.Group("/api")

	// 認証不要の参照系ルート
	books := api.Group("/books")
	{
		books.GET("", h.Book.ListBooks)          // GET /api/books
		books.GET("/tags", h.Book.ListBookTags)  // GET /api/books/tags
		books.GET("/:id", h.Book.GetBook)        // GET /api/books/:id
		books.POST("", h.Book.CreateBook)        // POST /api/books
	}

	stores := api.Group("/bookstores")
	{
		stores.GET("", h.Store.ListStores)      // GET /api/bookstores
		stores.GET("/:id", h.Store.GetStore)    // GET /api/bookstores/:id
		stores.POST("", h.Store.CreateStore)    // POST /api/bookstores
	}

	api.GET("/areas", h.Store.ListAreas)                 // GET /api/areas
	api.GET("/category-tags", h.Store.ListCategoryTags)  // GET /api/category-tags
	api.GET("/resolve-amazon-asin", h.Amazon.ResolveASIN) // GET /api/resolve-amazon-asin

	// 認証系ルート
	auth := api.Group("/auth")
	{
		auth.POST("/magic-link", h.Auth.IssueMagicLink) // POST /api/auth/magic-link
		auth.GET("/verify", h.Auth.VerifyMagicLink)     // GET /api/auth/verify
		auth.POST("/logout", h.Auth.Logout)             // POST /api/auth/logout
	}

	// 管理者ログインは総当たり対策としてレート制限付き
	admin := api.Group("/admin")
	admin.Use(middleware.RateLimitMiddleware(rate.Limit(1), 5))
	{
		admin.POST("/login", h.Auth.AdminLogin) // POST /api/admin/login
	}

	// メモの参照は公開、作成・更新・削除は認証必須
	memos := api.Group("/memos")
	{
		memos.GET("", h.Memo.ListMemos)    // GET /api/memos
		memos.GET("/:id", h.Memo.GetMemo)  // GET /api/memos/:id

		authed := memos.Group("")
		authed.Use(middleware.AuthMiddleware(jwtService))
		{
			authed.POST("", h.Memo.CreateMemo)       // POST /api/memos
			authed.PUT("/:id", h.Memo.UpdateMemo)    // PUT /api/memos/:id
			authed.DELETE("/:id", h.Memo.DeleteMemo) // DELETE /api/memos/:id
		}
	}
}
