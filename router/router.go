package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"careerboard/config"
	jobRoleHandler "careerboard/internal/jobrole"
	jobRoleRepository "careerboard/internal/jobrole/repository"
	jobRoleService "careerboard/internal/jobrole/service"
	postHandler "careerboard/internal/post"
	postRepository "careerboard/internal/post/repository"
	postService "careerboard/internal/post/service"
	userRepository "careerboard/internal/user/repository"
	"careerboard/middleware"
	"careerboard/pkg/response"
	"careerboard/pkg/validator"
	"careerboard/socket"
)

func Setup(db *sql.DB, hub *socket.Hub, cfg *config.Config) (http.Handler, error) {
	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("load request schemas: %w", err)
	}

	auth := middleware.AuthMiddleware(userRepository.NewUserRepository(db), cfg.JWTSecret)
	api := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		api.Handle(pattern, auth(h))
	}

	// WebSocket live feed
	handle("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		socket.ServeWs(hub, w, r, caller)
	})

	// Job roles
	jobRoleRepo := jobRoleRepository.NewJobRoleRepository(db)
	jobRoles := jobRoleHandler.NewJobRoleHandler(jobRoleService.NewJobRoleService(jobRoleRepo, hub), v)

	handle("GET /job-roles", jobRoles.ListJobRoles)
	handle("GET /job-roles/{$}", jobRoles.ListJobRoles)
	handle("POST /job-roles", jobRoles.CreateJobRole)
	handle("POST /job-roles/{$}", jobRoles.CreateJobRole)

	// Posts
	postRepo := postRepository.NewPostRepository(db)
	posts := postHandler.NewPostHandler(postService.NewPostService(postRepo, hub), v)

	handle("GET /posts", posts.ListPosts)
	handle("GET /posts/{$}", posts.ListPosts)
	handle("POST /posts", posts.CreatePost)
	handle("POST /posts/{$}", posts.CreatePost)
	handle("GET /posts/{id}", posts.GetPost)
	handle("PUT /posts/{id}", posts.UpdatePost)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle(cfg.APIPrefix+"/", http.StripPrefix(cfg.APIPrefix, api))

	return middleware.Recovery(
		middleware.RequestLogger(
			middleware.CORSMiddleware(cfg.CORSOrigins, mux),
		),
	), nil
}
