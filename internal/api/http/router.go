package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civicgrid/complaint-service/internal/api/http/handlers"
	"github.com/civicgrid/complaint-service/internal/auth"
	"github.com/civicgrid/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Complaints      *handlers.ComplaintsHandler
	AdminComplaints *handlers.AdminComplaintsHandler
	Ministries      *handlers.MinistriesHandler
	Users           *handlers.UsersHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	api := app.Group("/api")
	api.Get("/ministries", cfg.Ministries.ListActive)

	complaints := api.Group("/complaints", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	complaints.Post("", cfg.Complaints.CreateComplaint)
	complaints.Get("", cfg.Complaints.ListComplaints)
	complaints.Get("/:id", cfg.Complaints.GetComplaint)
	complaints.Post("/:id/comments", cfg.Complaints.AddComment)
	complaints.Post("/:id/attachments", cfg.Complaints.UploadAttachment)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/complaints", cfg.AdminComplaints.ListComplaints)
	admin.Get("/complaints/:id", cfg.AdminComplaints.GetComplaint)
	admin.Patch("/complaints/:id/status", cfg.AdminComplaints.UpdateStatus)
	admin.Patch("/complaints/:id/assign", cfg.AdminComplaints.AssignComplaint)
	admin.Delete("/complaints/:id", cfg.AdminComplaints.DeleteComplaint)

	admin.Get("/ministries", cfg.Ministries.ListAll)
	admin.Post("/ministries", cfg.Ministries.Create)
	admin.Patch("/ministries/:id", cfg.Ministries.Update)
	admin.Delete("/ministries/:id", cfg.Ministries.Delete)

	admin.Get("/users", cfg.Users.ListUsers)
	admin.Patch("/users/:id/role", cfg.Users.UpdateRole)
	admin.Patch("/users/:id/status", cfg.Users.UpdateStatus)
	admin.Delete("/users/:id", auth.RequireRole(domain.RoleSuperAdmin), cfg.Users.DeleteUser)
}
