package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pocketvibe/pocketvibe-backend/internal/application"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/commands"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/pwa"
)

type Server struct {
	handlers *application.Collection
}

func NewServer(handlers *application.Collection) *Server {
	return &Server{handlers: handlers}
}

func (s *Server) RegisterRoutes(app *fiber.App) {
	app.Post("/api/generate-site", s.GenerateSite)
	app.Get("/api/site-status/:id", s.SiteStatus)
	app.Get("/site/:id", s.ViewSite)
	app.Get("/site/:id/manifest.json", s.SiteManifest)
	app.Get("/site/:id/sw.js", s.ServiceWorker)
	app.Post("/api/generate-icon", s.GenerateIcon)
	app.Post("/api/update-app-icon", s.UpdateAppIcon)
	app.Post("/generate-css", s.GenerateCSS)
	app.Get("/css-status/:id", s.CSSStatus)
	app.Post("/appify", s.Appify)
	app.Get("/api/global-sites", s.GlobalSites)
	app.Post("/api/waitlist", s.JoinWaitlist)
	app.Post("/api/contact", s.Contact)
	app.Post("/subscribe", s.Subscribe)
	app.Post("/unsubscribe", s.Unsubscribe)
	app.Post("/api/generate-tip", s.GenerateTip)
	app.Get("/api/check-tip/:id", s.CheckTip)
}

func (s *Server) GenerateSite(c *fiber.Ctx) error {
	var req dto.GenerateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.GenerateSite.Execute(c.Context(), req, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyPrompt), errors.Is(err, commands.ErrInvalidSiteID):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, commands.ErrSiteExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

func (s *Server) SiteStatus(c *fiber.Ctx) error {
	resp, err := s.handlers.SiteStatus.Execute(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Site not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

func (s *Server) ViewSite(c *fiber.Ctx) error {
	site, err := s.handlers.GetSite.Execute(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).SendString("Site not found")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Error loading site")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if site.Content == nil {
		return c.SendString("")
	}
	return c.SendString(*site.Content)
}

func (s *Server) SiteManifest(c *fiber.Ctx) error {
	manifest, err := s.handlers.Manifest.Execute(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).SendString("Site not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/manifest+json")
	return c.JSON(manifest)
}

func (s *Server) ServiceWorker(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/javascript")
	return c.SendString(pwa.ServiceWorkerScript(c.Params("id")))
}

func (s *Server) GenerateIcon(c *fiber.Ctx) error {
	var req dto.GenerateIconRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.GenerateIcon.Execute(c.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrEmptyPrompt) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

func (s *Server) UpdateAppIcon(c *fiber.Ctx) error {
	var req dto.UpdateAppIconRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.UpdateAppIcon.Execute(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrMissingParams), errors.Is(err, commands.ErrInvalidAppName):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Site not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

func (s *Server) GenerateCSS(c *fiber.Ctx) error {
	var req dto.GenerateCSSRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.GenerateCSS.Execute(c.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrEmptyPrompt) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

func (s *Server) CSSStatus(c *fiber.Ctx) error {
	resp, err := s.handlers.CSSStatus.Execute(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "CSS generation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

func (s *Server) Appify(c *fiber.Ctx) error {
	var req dto.AppifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.Appify.Execute(c.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidURL) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

func (s *Server) GlobalSites(c *fiber.Ctx) error {
	resp, err := s.handlers.GlobalSites.Execute(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

func (s *Server) JoinWaitlist(c *fiber.Ctx) error {
	var req dto.WaitlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if err := s.handlers.Waitlist.Execute(c.Context(), req); err != nil {
		switch {
		case errors.Is(err, commands.ErrMissingContact),
			errors.Is(err, commands.ErrInvalidContact),
			errors.Is(err, commands.ErrUnknownType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.StatusResponse{Status: "success"})
}

func (s *Server) Contact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if err := s.handlers.Contact.Execute(c.Context(), req); err != nil {
		switch {
		case errors.Is(err, commands.ErrMissingMessage),
			errors.Is(err, commands.ErrContactWithoutTyp),
			errors.Is(err, commands.ErrInvalidContact),
			errors.Is(err, commands.ErrUnknownType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.StatusResponse{Status: "success"})
}

func (s *Server) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if err := s.handlers.Subscribe.Execute(c.Context(), req, c.Get(fiber.HeaderUserAgent)); err != nil {
		if errors.Is(err, commands.ErrInvalidSubscription) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.StatusResponse{Status: "success"})
}

func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if err := s.handlers.Subscribe.Unsubscribe(c.Context(), req); err != nil {
		if errors.Is(err, commands.ErrInvalidSubscription) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.StatusResponse{Status: "success"})
}

func (s *Server) GenerateTip(c *fiber.Ctx) error {
	var req dto.GenerateTipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.Tip.Execute(c.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

func (s *Server) CheckTip(c *fiber.Ctx) error {
	resp, err := s.handlers.Tip.Check(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}
