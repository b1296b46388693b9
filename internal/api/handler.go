package api

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/bzhu9/BasicChat/internal/announce"
	"github.com/bzhu9/BasicChat/internal/chat"
	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/identity"
	"github.com/bzhu9/BasicChat/internal/media"
)

type Handlers struct {
	chat     *chat.Service
	announce *announce.Service
	media    *media.Service
}

func NewHandlers(chatSvc *chat.Service, announceSvc *announce.Service, mediaSvc *media.Service) *Handlers {
	return &Handlers{chat: chatSvc, announce: announceSvc, media: mediaSvc}
}

func session(c *fiber.Ctx) identity.Session {
	return c.Locals("session").(identity.Session)
}

func fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, chat.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "not found"})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}

type messageBody struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (b messageBody) decode() (domain.Content, error) {
	if b.Content == "" {
		return nil, errors.New("message content required")
	}
	return domain.DecodeContent(domain.Kind(b.Type), b.Content)
}

func (h *Handlers) registerUser(c *fiber.Ctx) error {
	if err := h.chat.RegisterUser(c.Context(), session(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) userExists(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email required"})
	}
	ok, err := h.chat.UserExists(c.Context(), email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"exists": ok})
}

func (h *Handlers) listConversations(c *fiber.Ctx) error {
	convs, err := h.chat.ListConversations(c.Context(), session(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": convs})
}

func (h *Handlers) createConversation(c *fiber.Ctx) error {
	var req struct {
		OtherUserEmail string      `json:"other_user_email"`
		Name           string      `json:"name"`
		Message        messageBody `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	content, err := req.Message.decode()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	id, msg, err := h.chat.CreateConversation(c.Context(), session(c), req.OtherUserEmail, req.Name, content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"id": id, "message": msg})
}

func (h *Handlers) conversationExists(c *fiber.Ctx) error {
	target := c.Query("email")
	if target == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email required"})
	}
	id, err := h.chat.ConversationExists(c.Context(), target, session(c).Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"id": id})
}

func (h *Handlers) listMessages(c *fiber.Ctx) error {
	msgs, err := h.chat.ListMessages(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": msgs})
}

func (h *Handlers) sendMessage(c *fiber.Ctx) error {
	var req struct {
		OtherUserEmail string      `json:"other_user_email"`
		Name           string      `json:"name"`
		Message        messageBody `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	content, err := req.Message.decode()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	msg, err := h.chat.SendMessage(c.Context(), session(c), c.Params("id"), req.OtherUserEmail, req.Name, content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": msg})
}

func (h *Handlers) markRead(c *fiber.Ctx) error {
	if err := h.chat.MarkConversationRead(c.Context(), session(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) deleteConversation(c *fiber.Ctx) error {
	if err := h.chat.DeleteConversation(c.Context(), session(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) createGroupChat(c *fiber.Ctx) error {
	var req struct {
		Name    string           `json:"name"`
		Members []domain.UserRef `json:"members"`
		Message messageBody      `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Name == "" || len(req.Members) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "name and members required"})
	}
	content, err := req.Message.decode()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	msg, err := h.chat.CreateGroupChat(c.Context(), session(c), req.Name, req.Members, content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"id": req.Name, "message": msg})
}

func (h *Handlers) groupChatExists(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name required"})
	}
	ok, err := h.chat.GroupChatExists(c.Context(), name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"exists": ok})
}

func (h *Handlers) listGroupMessages(c *fiber.Ctx) error {
	msgs, err := h.chat.ListGroupMessages(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": msgs})
}

func (h *Handlers) sendGroupMessage(c *fiber.Ctx) error {
	var req struct {
		Message messageBody `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	content, err := req.Message.decode()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	msg, err := h.chat.SendGroupMessage(c.Context(), session(c), c.Params("id"), content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": msg})
}

func (h *Handlers) markGroupRead(c *fiber.Ctx) error {
	if err := h.chat.MarkGroupChatRead(c.Context(), session(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) listAnnouncements(c *fiber.Ctx) error {
	items, err := h.announce.ListAnnouncements(c.Context(), c.Params("organization"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *Handlers) createAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Organization string   `json:"organization"`
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		PhotoURLs    []string `json:"photoURLS"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Organization == "" || req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "organization and title required"})
	}
	id, err := h.announce.CreateAnnouncement(c.Context(), session(c), req.Organization, req.Title, req.Description, req.PhotoURLs)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"id": id})
}

func (h *Handlers) addComment(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(400).JSON(fiber.Map{"error": "text required"})
	}
	err := h.announce.AddComment(c.Context(), session(c), c.Params("organization"), c.Params("id"), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) formFile(c *fiber.Ctx) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Header.Get("Content-Type"), nil
}

func (h *Handlers) uploadProfilePicture(c *fiber.Ctx) error {
	data, _, err := h.formFile(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file missing"})
	}
	url, err := h.media.UploadProfilePicture(c.Context(), session(c).ProfilePictureFileName(), data)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"url": url})
}

func (h *Handlers) uploadMessagePhoto(c *fiber.Ctx) error {
	data, _, err := h.formFile(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file missing"})
	}
	url, err := h.media.UploadMessagePhoto(c.Context(), media.NewMessagePhotoFileName(), data)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"url": url})
}

func (h *Handlers) uploadMessageVideo(c *fiber.Ctx) error {
	data, contentType, err := h.formFile(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file missing"})
	}
	url, err := h.media.UploadMessageVideo(c.Context(), media.NewMessageVideoFileName(), contentType, data)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"url": url})
}

func (h *Handlers) uploadAnnouncementPhoto(c *fiber.Ctx) error {
	data, _, err := h.formFile(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file missing"})
	}
	url, err := h.media.UploadAnnouncementPhoto(c.Context(), media.NewAnnouncementPhotoFileName(), data)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"url": url})
}

func (h *Handlers) downloadURL(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(400).JSON(fiber.Map{"error": "path required"})
	}
	url, err := h.media.DownloadURL(c.Context(), path)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
