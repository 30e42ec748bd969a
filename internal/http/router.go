package http

import (
	"net/http"

	"dailyjournal/internal/auth"
	"dailyjournal/internal/config"
	"dailyjournal/internal/friendship"
	"dailyjournal/internal/http/handler"
	mw "dailyjournal/internal/http/middleware"
	"dailyjournal/internal/journal"
	"dailyjournal/internal/media"
	"dailyjournal/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, store media.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	users := &user.Service{DB: db}
	mediaSvc := &media.Service{DB: db, Store: store}
	journals := &journal.Service{DB: db, Blobs: mediaSvc}
	friends := &friendship.Service{DB: db}

	requireAuth := auth.RequireAuth(jwtSvc, users.ResolveIdentity)

	ah := &handler.AuthHandler{Users: users, JWT: jwtSvc}
	uh := &handler.UserHandler{Users: users, Media: mediaSvc}
	jh := &handler.JournalHandler{Svc: journals, Media: mediaSvc}
	jr := &handler.JournalReadHandler{Svc: journals}
	fh := &handler.FriendHandler{Svc: friends}
	mh := &handler.MediaHandler{Svc: mediaSvc}
	admin := &handler.AdminHandler{Users: users, Journals: journals, Friends: friends, Media: mediaSvc}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)

		r.Route("/users", func(r chi.Router) {
			r.Get("/profile-photo/{filename}", mh.Serve)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Get("/me", uh.Me)
				r.Put("/update", uh.Update)
				r.Post("/upload-photo", uh.UploadPhoto)
				r.Get("/search", uh.Search)

				r.Get("/all", uh.List)
				r.Delete("/{id}", uh.Block)
				r.Put("/toggle-status/{id}", uh.ToggleStatus)
			})
		})

		r.Route("/journals", func(r chi.Router) {
			// Public reads: non-private entries and stored media.
			r.Get("/public/user/{userId}", jr.PublicByUser)
			r.Get("/public/search", jr.PublicSearch)
			r.Get("/public/calendar", jr.PublicCalendar)
			r.Get("/media/{filename}", mh.Serve)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Post("/create/{userId}", jh.Create)
				r.Get("/user/{userId}", jr.ListByUser)

				r.Get("/search", jr.Search)
				r.Get("/calendar", jr.Calendar)
				r.Get("/filter", jr.Filter)

				r.Get("/published", jr.Published)
				r.Get("/published/search", jr.SearchPublished)

				r.Get("/admin/published", jr.EverPublished)
				r.Get("/admin/published/search", jr.SearchEverPublished)
				r.Post("/admin/{id}/hide", jh.Hide)
				r.Post("/admin/{id}/restore", jh.Restore)

				r.Get("/{id}", jr.ByID)
				r.Put("/{id}", jh.Update)
				r.Delete("/{id}", jh.Delete)

				r.Post("/{id}/publish", jh.Publish)
				r.Post("/{id}/unpublish", jh.Unpublish)

				r.Post("/{id}/upload", jh.Upload)
				r.Delete("/{id}/media/{filename}", jh.DeleteMedia)
			})
		})

		r.Route("/friends", func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/request/{receiverId}", fh.Send)
			r.Post("/accept/{requestId}", fh.Accept)
			r.Post("/reject/{requestId}", fh.Reject)
			r.Delete("/remove/{friendId}", fh.Remove)

			r.Get("/my-friends", fh.List)
			r.Get("/user/{userId}", fh.ListOf)
			r.Get("/is-friend/{userId}", fh.IsFriend)
			r.Get("/status/{userId}", fh.Status)
			r.Get("/count", fh.FriendCount)

			r.Get("/requests/pending", fh.Pending)
			r.Get("/requests/sent", fh.Sent)
			r.Get("/requests/count", fh.PendingCount)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/promote/{userId}", admin.Promote)
			r.Get("/users", uh.List)
			r.Delete("/users/{id}", admin.DeleteUser)

			r.Get("/journals", admin.AllJournals)
			r.Get("/journals/all", admin.AllJournals)
			r.Get("/journals/search-users", admin.SearchUsers)
			r.Delete("/journals/{id}", admin.DeleteJournal)
		})
	})

	return r
}
