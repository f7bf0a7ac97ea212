package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/JasonChow320/DeeJay/config"
	"github.com/JasonChow320/DeeJay/controllers"
	"github.com/JasonChow320/DeeJay/db"
	"github.com/JasonChow320/DeeJay/forms"
	"github.com/JasonChow320/DeeJay/kv"
	"github.com/JasonChow320/DeeJay/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

func SlogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rlog := logger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"request_id", requestid.Get(c),
		)

		start := time.Now()
		rlog.Debug("request started")
		c.Next()
		duration := time.Since(start)
		rlog.Info("request completed", "status", c.Writer.Status(), "duration", duration)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger *slog.Logger
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	//Start the default gin server
	r := gin.Default()

	//Custom form validator
	binding.Validator = new(forms.DefaultValidator)

	r.Use(CORSMiddleware(cfg.ClientBaseURL))
	r.Use(requestid.New(requestid.WithCustomHeaderStrKey("X-Request-Id")))
	r.Use(SlogMiddleware(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store, err := kv.NewRedisKV(cfg.RedisHost, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		slog.Error("failed to connect to key-value store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	database, err := db.NewMongoDB(cfg.MongoURI, cfg.MongoName)
	if err != nil {
		slog.Error("failed to connect to account database", "error", err)
		os.Exit(1)
	}
	defer database.Close(context.Background())

	oauthService := service.NewOAuthService(store, database, service.OAuthConfig{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RedirectURI:  cfg.SpotifyRedirectURI,
	})
	spotifyService := service.NewSpotifyService(oauthService)
	userService := service.NewUserService(store, database, cfg.SessionTTL)
	deejayService := service.NewDeejayService(store, oauthService, spotifyService, cfg.DeejayTTL)

	health := controllers.NewHealthController()
	r.GET("/health", health.Health)

	user := controllers.NewUserController(userService, cfg.AdminID)
	login := r.Group("/login")
	login.POST("/userlogin", user.Login)
	login.POST("/user", user.Register)
	login.DELETE("/delete_user/:username", user.Delete)
	login.GET("/signout/:sessionId", user.SignOut)
	login.GET("/users/:id", user.Users)

	spotify := controllers.NewSpotifyController(oauthService, spotifyService, cfg.ClientBaseURL)
	deejay := controllers.NewDeejayController(deejayService)
	api := r.Group("/spotifyapi")
	api.GET("/login/", spotify.Login)
	api.GET("/loginWithAcc/:id", spotify.LoginWithAccount)
	api.GET("/callback", spotify.Callback)
	api.GET("/logout", spotify.Logout)

	api.GET("/nr", spotify.NewReleases)
	api.GET("/featuredplaylist", spotify.FeaturedPlaylists)
	api.GET("/genre", spotify.Genres)
	api.GET("/categories", spotify.Categories)
	api.POST("/search", spotify.Search)
	api.GET("/artists/:name", spotify.Artists)
	api.GET("/tracks/:song", spotify.Tracks)
	api.GET("/recommendation", spotify.Recommendations)
	api.POST("/additems", spotify.AddItems)

	api.GET("/start_deejay/:sessionId", deejay.Start)
	api.POST("/join_deejay", deejay.Join)
	api.POST("/req_track_deejay", deejay.RequestTrack)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "ssl", cfg.SSL)

	if cfg.SSL {
		err = r.RunTLS(":"+cfg.Port, cfg.SSLCert, cfg.SSLKey)
	} else {
		err = r.Run(":" + cfg.Port)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
