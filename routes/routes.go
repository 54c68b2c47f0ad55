package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bizdesk-backend/auth"
	"bizdesk-backend/controllers"
	"bizdesk-backend/middleware"
)

// defaultOrigins is the development allow-list used when CORS_ORIGINS is
// unset. Never a wildcard while credentials are allowed.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return defaultOrigins
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return defaultOrigins
	}
	return origins
}

func SetupRouter(
	pub *controllers.PublicController,
	authCtl *controllers.AuthController,
	admin *controllers.AdminController,
	content *controllers.ContentController,
	partner *controllers.PartnerController,
	adminSessions *auth.SessionStore,
	partnerSessions *auth.SessionStore,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/", pub.Health)
		api.GET("/health", pub.Health)

		api.GET("/stages", pub.ListStages)
		api.GET("/stages/:id", pub.GetStage)
		api.GET("/services/:service_id", pub.GetService)

		api.POST("/contact", pub.SubmitContact)
		api.GET("/timeslots", pub.ListTimeslots)
		api.POST("/booking", pub.CreateBooking)
		api.GET("/settings", pub.GetSettings)

		api.GET("/blogs", pub.ListBlogs)
		api.GET("/blogs/:slug", pub.GetBlogBySlug)
		api.GET("/faqs", pub.ListFAQs)
		api.GET("/testimonials", pub.ListTestimonials)
		api.GET("/packages", pub.ListPackages)

		api.POST("/analytics/track", pub.TrackEvent)
	}

	adminAPI := r.Group("/api/admin")
	{
		adminAPI.POST("/login", authCtl.AdminLogin)

		guarded := adminAPI.Group("")
		guarded.Use(middleware.RequireSession(adminSessions))
		{
			guarded.POST("/logout", authCtl.AdminLogout)
			guarded.GET("/verify", authCtl.AdminVerify)
			guarded.GET("/stats", admin.GetStats)

			guarded.POST("/stages", admin.CreateStage)
			guarded.PUT("/stages/:id", admin.UpdateStage)
			guarded.DELETE("/stages/:id", admin.DeleteStage)
			guarded.POST("/stages/:id/services", admin.AddStageService)
			guarded.PUT("/stages/:id/services/:service_id", admin.UpdateStageService)
			guarded.DELETE("/stages/:id/services/:service_id", admin.DeleteStageService)

			guarded.GET("/inquiries", admin.ListInquiries)
			guarded.PUT("/inquiries/:id/status", admin.UpdateInquiryStatus)

			guarded.POST("/timeslots", admin.CreateTimeslot)
			guarded.PUT("/timeslots/:id", admin.UpdateTimeslot)
			guarded.DELETE("/timeslots/:id", admin.DeleteTimeslot)

			guarded.GET("/bookings", admin.ListBookings)
			guarded.PUT("/bookings/:id/status", admin.UpdateBookingStatus)

			guarded.GET("/blogs", content.ListBlogs)
			guarded.POST("/blogs", content.CreateBlog)
			guarded.PUT("/blogs/:id", content.UpdateBlog)
			guarded.DELETE("/blogs/:id", content.DeleteBlog)

			guarded.GET("/faqs", content.ListFAQs)
			guarded.POST("/faqs", content.CreateFAQ)
			guarded.PUT("/faqs/:id", content.UpdateFAQ)
			guarded.DELETE("/faqs/:id", content.DeleteFAQ)

			guarded.GET("/testimonials", content.ListTestimonials)
			guarded.POST("/testimonials", content.CreateTestimonial)
			guarded.PUT("/testimonials/:id", content.UpdateTestimonial)
			guarded.DELETE("/testimonials/:id", content.DeleteTestimonial)

			guarded.GET("/packages", content.ListPackages)
			guarded.POST("/packages", content.CreatePackage)
			guarded.PUT("/packages/:id", content.UpdatePackage)
			guarded.DELETE("/packages/:id", content.DeletePackage)

			guarded.GET("/templates", content.ListTemplates)
			guarded.GET("/templates/type/:template_type", content.GetTemplateByType)
			guarded.POST("/templates", content.CreateTemplate)
			guarded.PUT("/templates/:id", content.UpdateTemplate)
			guarded.DELETE("/templates/:id", content.DeleteTemplate)

			guarded.GET("/settings", content.GetSettings)
			guarded.PUT("/settings", content.UpdateSettings)

			guarded.GET("/analytics", content.AnalyticsSummary)
		}
	}

	partnerAPI := r.Group("/api/partner")
	{
		partnerAPI.POST("/login", authCtl.PartnerLogin)
		partnerAPI.POST("/register", authCtl.PartnerRegister)

		guarded := partnerAPI.Group("")
		guarded.Use(middleware.RequireSession(partnerSessions))
		{
			guarded.POST("/logout", authCtl.PartnerLogout)
			guarded.GET("/verify", authCtl.PartnerVerify)

			guarded.GET("/clients", partner.ListClients)
			guarded.POST("/clients", partner.CreateClient)
			guarded.GET("/clients/:id", partner.GetClient)
			guarded.PUT("/clients/:id", partner.UpdateClient)
			guarded.DELETE("/clients/:id", partner.DeleteClient)

			guarded.POST("/clients/:id/services", partner.AddClientService)
			guarded.PUT("/clients/:id/services/:service_id", partner.UpdateClientService)
			guarded.DELETE("/clients/:id/services/:service_id", partner.DeleteClientService)

			guarded.GET("/revenue", partner.Revenue)
		}
	}

	return r
}
