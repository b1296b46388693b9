package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/bzhu9/BasicChat/internal/auth"
)

func NewServer(h *Handlers, jv *auth.Validator) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/v1")
	api.Use(func(c *fiber.Ctx) error {
		hdr := c.Get("Authorization")
		const pref = "Bearer "
		if len(hdr) <= len(pref) || hdr[:len(pref)] != pref {
			return c.Status(401).JSON(fiber.Map{"error": "missing auth"})
		}
		session, err := jv.Session(hdr[len(pref):])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		c.Locals("session", session)
		return c.Next()
	})

	api.Post("/users", h.registerUser)
	api.Get("/users/exists", h.userExists)

	api.Get("/conversations", h.listConversations)
	api.Post("/conversations", h.createConversation)
	api.Get("/conversations/exists", h.conversationExists)
	api.Get("/conversations/:id/messages", h.listMessages)
	api.Post("/conversations/:id/messages", h.sendMessage)
	api.Post("/conversations/:id/read", h.markRead)
	api.Delete("/conversations/:id", h.deleteConversation)

	api.Post("/group-chats", h.createGroupChat)
	api.Get("/group-chats/exists", h.groupChatExists)
	api.Get("/group-chats/:id/messages", h.listGroupMessages)
	api.Post("/group-chats/:id/messages", h.sendGroupMessage)
	api.Post("/group-chats/:id/read", h.markGroupRead)

	api.Get("/announcements/:organization", h.listAnnouncements)
	api.Post("/announcements", h.createAnnouncement)
	api.Post("/announcements/:organization/:id/comments", h.addComment)

	api.Post("/media/profile-picture", h.uploadProfilePicture)
	api.Post("/media/message-photo", h.uploadMessagePhoto)
	api.Post("/media/message-video", h.uploadMessageVideo)
	api.Post("/media/announcement-photo", h.uploadAnnouncementPhoto)
	api.Get("/media/url", h.downloadURL)

	return app
}
