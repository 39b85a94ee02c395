package api

import (
	"log"
	stdhttp "net/http"

	intconfig "mavuso/internal/config"
	h "mavuso/internal/http/handlers"
	"mavuso/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/signup", h.SignUp)
		auth.POST("/signin", h.SignIn)
		auth.POST("/signout", h.SignOut)

		// Experiences (public reads)
		experiences := api.Group("/experiences")
		experiences.GET("", h.ListExperiences)
		experiences.GET("/:id", h.GetExperience)
		experiences.GET("/:id/slots", h.ListTimeSlots)
		experiences.GET("/:id/reviews", h.GetExperienceReviews)

		// Authenticated surface
		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("/experiences", h.CreateExperience)
			authed.PUT("/experiences/:id", h.UpdateExperience)
			authed.POST("/experiences/:id/slots", h.CreateTimeSlot)

			bookings := authed.Group("/bookings")
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.GetMyBookings)
			bookings.GET("/hosting", h.GetHostingBookings)
			bookings.PUT("/:id/status", h.UpdateBookingStatus)
			bookings.GET("/:id/receipt", h.GetBookingReceiptPDF)

			messages := authed.Group("/messages")
			messages.POST("", h.SendMessage)
			messages.GET("", h.GetConversations)
			messages.GET("/conversations", h.GetConversations)
			messages.GET("/:id", h.GetConversationMessages)

			authed.GET("/profile", h.GetProfile)
			authed.PUT("/profile", h.UpdateProfile)

			authed.POST("/reviews", h.CreateReview)
		}
	}

	return r
}
