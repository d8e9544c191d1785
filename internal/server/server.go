package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"gorm.io/gorm"

	"smartblog/internal/config"
	"smartblog/internal/entity"
	"smartblog/internal/handler"
	"smartblog/internal/imagegen"
	"smartblog/internal/middleware"
	"smartblog/internal/repository"
	"smartblog/internal/service"
	"smartblog/pkg/mailer"
	"smartblog/pkg/ratelimiter"
	"smartblog/pkg/storage"
)

const limitWindow = 60 * time.Second

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(cfg *config.Config, db *gorm.DB, counters ratelimiter.CounterStore) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	tagRepo := repository.NewTagRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryFolder)
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	meiliSvc := service.NewMeiliSearchService(meiliClient)

	mail := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		BaseURL:  cfg.BaseURL,
	})

	authSvc := service.NewAuthService(userRepo, mail, cfg)
	authHandler := handler.NewAuthHandler(authSvc)

	postSvc := service.NewPostService(postRepo, tagRepo, meiliSvc)
	postHandler := handler.NewPostHandler(postSvc)

	commentSvc := service.NewCommentService(commentRepo, postRepo)
	commentHandler := handler.NewCommentHandler(commentSvc)

	ratingSvc := service.NewRatingService(ratingRepo, postRepo, userRepo)
	ratingHandler := handler.NewRatingHandler(ratingSvc)

	tagSvc := service.NewTagService(tagRepo, meiliSvc)
	tagHandler := handler.NewTagHandler(tagSvc)

	profileSvc := service.NewProfileService(userRepo, imageStorage)
	profileHandler := handler.NewProfileHandler(profileSvc)

	userSvc := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userSvc)

	autocompleteSvc := service.NewAutocompleteService(tagRepo, meiliSvc)
	autocompleteHandler := handler.NewAutocompleteHandler(autocompleteSvc)

	var generator service.PictureGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := imagegen.NewClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("picture generator unavailable: %v", err)
		} else {
			generator = client
		}
	}
	illustrationSvc := service.NewIllustrationService(generator, imageStorage)
	illustrationHandler := handler.NewIllustrationHandler(illustrationSvc)

	limiter := ratelimiter.New(counters)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)
	moderatorGate := authMiddleware.RequireRoles(entity.RoleModerator, entity.RoleAdmin, entity.RoleSuperuser)
	adminGate := authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleSuperuser)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(limiter, "auth", 10, limitWindow))
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/refresh_token", authHandler.Refresh)
		auth.GET("/confirmed_email/:token", authHandler.ConfirmEmail)
		auth.POST("/request_email", authHandler.RequestEmail)
	}

	autocomplete := api.Group("/autocomplete")
	autocomplete.Use(middleware.RateLimit(limiter, "autocomplete", 60, limitWindow))
	{
		autocomplete.GET("", autocompleteHandler.SuggestTerms)
		autocomplete.GET("/tags", autocompleteHandler.SuggestTags)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		postsLimit := middleware.RateLimit(limiter, "posts", 10, limitWindow)
		posts := protected.Group("/posts")
		{
			posts.GET("", postsLimit, postHandler.GetAllPosts)
			posts.POST("", postsLimit, postHandler.CreatePost)
			posts.GET("/:post_id", postsLimit, postHandler.GetPost)
			posts.PUT("/:post_id", postsLimit, postHandler.UpdatePost)
			posts.DELETE("/:post_id", postsLimit, postHandler.DeletePost)

			posts.POST("/:post_id/comments",
				middleware.RateLimit(limiter, "comments_create", 5, limitWindow),
				commentHandler.CreateComment)
			posts.GET("/:post_id/comments", commentHandler.ListComments)

			posts.POST("/:post_id/ratings",
				middleware.RateLimit(limiter, "ratings_create", 5, limitWindow),
				ratingHandler.CreateRating)
			posts.GET("/:post_id/rating", ratingHandler.GetScore)
			posts.GET("/:post_id/ratings", ratingHandler.ListRatingsForPost)
			posts.DELETE("/:post_id/ratings/:rating_id", ratingHandler.DeleteRating)
		}

		comments := protected.Group("/comments")
		{
			comments.PUT("/:comment_id",
				middleware.RateLimit(limiter, "comments", 10, limitWindow),
				commentHandler.UpdateComment)
			comments.DELETE("/:comment_id", moderatorGate, commentHandler.DeleteComment)
		}

		tags := protected.Group("/tags")
		tags.Use(middleware.RateLimit(limiter, "tags", 10, limitWindow))
		{
			tags.GET("", tagHandler.GetAllTags)
			tags.POST("", tagHandler.CreateTag)
			tags.GET("/:name", tagHandler.GetTag)
			tags.PUT("/:name", moderatorGate, tagHandler.UpdateTag)
			tags.DELETE("/:name", moderatorGate, tagHandler.DeleteTag)
		}

		users := protected.Group("/users")
		users.Use(middleware.RateLimit(limiter, "users", 10, limitWindow))
		{
			users.GET("/:user_id/ratings", ratingHandler.ListRatingsForUser)
			users.POST("/:user_id/assign_role", adminGate, userHandler.AssignRole)
		}

		protected.GET("/illustrate",
			middleware.RateLimit(limiter, "illustrate", 60, limitWindow),
			illustrationHandler.Illustrate)

		profile := protected.Group("/profile")
		profile.Use(middleware.RateLimit(limiter, "profile", 10, limitWindow))
		{
			profile.GET("", profileHandler.GetOwnProfile)
			profile.GET("/:username", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.PUT("/avatar", profileHandler.UpdateAvatar)
		}
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
