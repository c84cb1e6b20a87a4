package v1

import "github.com/gofiber/fiber/v3"

// RegisterCatalog mounts companies, FAQs and updates. Reads are public.
func RegisterCatalog(r fiber.Router, h Handlers, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	if h.Companies != nil {
		h.Companies.RegisterRoutes(r.Group("/companies"), authMw, adminOnly)
	}
	if h.FAQs != nil {
		h.FAQs.RegisterRoutes(r.Group("/faqs"), authMw, adminOnly)
	}
	if h.Updates != nil {
		h.Updates.RegisterRoutes(r.Group("/updates"), authMw, adminOnly)
	}
}
