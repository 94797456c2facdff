package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/auth"
	"docflow/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	authSvc service.AuthService,
	docSvc service.DocumentService,
	reqSvc service.RequestService,
	compSvc service.CompanyService,
	drv DriveBrowser,
	tokens *auth.TokenManager,
	protect fiber.Handler,
) {
	if protect == nil {
		protect = func(c *fiber.Ctx) error { return c.Next() }
	}

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	authGroup := app.Group("/auth")
	authGroup.Post("/register", Register(authSvc))
	authGroup.Post("/login", Login(authSvc, tokens))
	authGroup.Post("/logout", Logout())
	authGroup.Post("/token/refresh", RefreshToken(authSvc, tokens))
	authGroup.Get("/me", protect, Me())

	docs := app.Group("/documents", protect)
	docs.Get("/", ListDocuments(docSvc))
	docs.Post("/", UploadDocument(docSvc))
	// Two-segment drive paths never collide with the :id routes.
	docs.Get("/root/folders", ListDriveItems(drv))
	docs.Delete("/root/files/:id", DeleteDriveItem(drv))
	docs.Get("/:id", GetDocument(docSvc))
	docs.Put("/:id", UpdateDocument(docSvc))
	docs.Delete("/:id", DeleteDocument(docSvc))

	companies := app.Group("/companies", protect)
	companies.Get("/", ListCompanies(compSvc))
	companies.Post("/", CreateCompany(compSvc))
	// Fixed paths go before the :id routes.
	companies.Get("/summary/user", CompanyUserSummary(compSvc))
	companies.Get("/me", GetMyCompany(compSvc))
	companies.Get("/:id", GetCompany(compSvc))
	companies.Put("/:id", UpdateCompany(compSvc))
	companies.Delete("/:id", DeleteCompany(compSvc))

	reqs := app.Group("/document-requests", protect)
	reqs.Get("/", ListRequests(reqSvc))
	reqs.Post("/", CreateRequest(reqSvc))
	reqs.Get("/:id", GetRequest(reqSvc))
	reqs.Put("/:id", UpdateRequest(reqSvc))
	reqs.Delete("/:id", DeleteRequest(reqSvc))
}
