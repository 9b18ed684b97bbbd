package pkg

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"Planora/internal/auth"
	"Planora/internal/catalog"
	"Planora/internal/config"
	"Planora/internal/timetable"
	"Planora/pkg/middleware"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewResendConfig),
	fx.Provide(config.NewEmailService),
	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewAuthService),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(catalog.NewStore),
	fx.Provide(catalog.NewCatalogService),
	fx.Provide(catalog.NewImportService),
	fx.Provide(catalog.NewCatalogHandler),
	fx.Provide(timetable.NewRepository),
	fx.Provide(timetable.NewTimetableService),
	fx.Provide(timetable.NewTimetableHandler),
	fx.Invoke(EnsureIndexes),
	fx.Invoke(RegisterRoutes))

func NewEchoServer(lc fx.Lifecycle) *echo.Echo {
	e := echo.New()
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	log.Println("Server running on http://localhost" + addr)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(addr); err != nil {
					log.Fatal("Failed to start the server:", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

// EnsureIndexes creates the unique natural-key indexes on the four entity
// collections plus the users email index.
func EnsureIndexes(db *mongo.Database) {
	catalog.EnsureIndexes(db)
	config.UniqueIndex(db.Collection("users"), "email")
}

func RegisterRoutes(e *echo.Echo, authHandler *auth.AuthHandler, catalogHandler *catalog.CatalogHandler, timetableHandler *timetable.TimetableHandler) {
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.POST("/verify-email", authHandler.VerifyEmail)
	e.POST("/reset-password", authHandler.ResetPassword)

	// Reads stay open; the dashboards fetch these without a token.
	e.GET("/api/data", catalogHandler.GetData)
	e.GET("/api/timetable", timetableHandler.GetTimetable)

	// State-changing routes require a valid JWT and an allowed role.
	protected := e.Group("/api")
	protected.Use(middleware.JWTMiddleware)
	protected.Use(middleware.CasbinMiddleware)
	protected.GET("/profile", authHandler.Profile)
	protected.DELETE("/data", catalogHandler.DeleteData)
	protected.POST("/data/:type", catalogHandler.CreateRecord)
	protected.PUT("/data/:type/:id", catalogHandler.UpdateRecord)
	protected.POST("/upload-json", catalogHandler.UploadJSON)
	protected.POST("/upload-csv", catalogHandler.UploadCSV)
}
