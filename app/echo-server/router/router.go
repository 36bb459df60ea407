package router

import (
	"swisstination/internal/middleware"
	"swisstination/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/signup", handler.Signup)
	auth.POST("/login", handler.Login)

	auth.POST("/logout", handler.Logout, authRequired)
	auth.GET("/me", handler.GetProfile, authRequired)
	auth.GET("/verify", handler.VerifyToken, authRequired)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/test", handler.Test)
	categories.GET("/:id", handler.GetCategoryByID)
}

func SetupDestinationRoutes(api *echo.Group, handler *rest.DestinationHandler) {
	destinations := api.Group("/destinations")

	destinations.GET("", handler.GetAllDestinations)
	destinations.POST("/batch", handler.GetDestinationsByIDs)
	destinations.GET("/:id", handler.GetDestinationByID)
}

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews", authRequired)

	reviews.POST("", handler.SubmitReview)
	reviews.GET("/me", handler.GetUserReviews)
}

func SetupPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler, authRequired echo.MiddlewareFunc) {
	preferences := api.Group("/preferences", authRequired)

	preferences.POST("", handler.SavePreferences)
	preferences.GET("", handler.GetPreferences)
	preferences.GET("/status", handler.PreferenceStatus)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")

	// Cold start is intentionally public: onboarding happens before signup.
	reco.POST("/cold-start", handler.ColdStart)
	reco.GET("/model-status", handler.ModelStatus)

	reco.GET("", handler.GetRecommendations, authRequired)
	reco.GET("/categories/:id", handler.GetRecommendationsByCategory, authRequired)
}

// AuthRequired picks session-store validation when a token validator is
// wired, plain JWT validation otherwise.
func AuthRequired(tokenValidator middleware.TokenValidator) echo.MiddlewareFunc {
	if tokenValidator != nil {
		return middleware.AuthMiddlewareWithRedis(tokenValidator)
	}

	return middleware.AuthMiddleware()
}
