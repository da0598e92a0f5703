package messagely

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// MessagesController serves message detail, creation, and read receipts.
// Route access requires authentication; record access is checked per message
// after the load since ownership lives in the record itself.
type MessagesController struct {
	Logger Logger
	Repo   RepositoryManager
}

// MessageDetail is the wire shape of a full message
type MessageDetail struct {
	ID       uuid.UUID   `json:"id"`
	Body     string      `json:"body"`
	SentAt   *time.Time  `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at,omitempty"`
	FromUser UserSummary `json:"from_user"`
	ToUser   UserSummary `json:"to_user"`
}

func NewMessageDetail(msg *Message) MessageDetail {
	return MessageDetail{
		ID:       msg.ID,
		Body:     msg.Body,
		SentAt:   msg.SentAt,
		ReadAt:   msg.ReadAt,
		FromUser: msg.FromUser.Summary(),
		ToUser:   msg.ToUser.Summary(),
	}
}

// RegisterMessageRoutes mounts the message routes
func RegisterMessageRoutes(app RouteRegistrar, controller *MessagesController) *MessagesController {
	if controller.Logger == nil {
		controller.Logger = defLogger{}
	}
	if controller.Repo == nil {
		panic("Missing RepositoryManager in messages controller...")
	}

	app.Get("/messages/:id", controller.Show, RequireAuthenticated()).
		SetName("messages.show")
	app.Post("/messages", controller.Create, RequireAuthenticated()).
		SetName("messages.create")
	app.Post("/messages/:id/read", controller.MarkRead, RequireAuthenticated()).
		SetName("messages.read")

	return controller
}

// Show returns a single message with both participant summaries. Only the
// sender or the recipient may view it.
func (a *MessagesController) Show(ctx router.Context) error {
	claims, ok := ClaimsFromRequest(ctx)
	if !ok {
		return RespondUnauthorized(ctx)
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid message id"))
	}

	msg, err := a.Repo.Messages().GetWithParticipants(ctx.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RespondError(ctx, ErrMessageNotFound)
		}
		a.Logger.Error("message show", "id", id, "error", err)
		return RespondError(ctx, err)
	}

	if !CanReadMessage(claims, msg) {
		return RespondUnauthorized(ctx)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": NewMessageDetail(msg),
	})
}

// CreateMessagePayload is the message creation payload
type CreateMessagePayload struct {
	ToUsername string `form:"to_username" json:"to_username"`
	Body       string `form:"body" json:"body"`
}

// Validate will run validation rules
func (r CreateMessagePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ToUsername, validation.Required),
		validation.Field(&r.Body, validation.Required),
	)
}

// Create sends a message from the authenticated user to the named recipient
func (a *MessagesController) Create(ctx router.Context) error {
	claims, ok := ClaimsFromRequest(ctx)
	if !ok {
		return RespondUnauthorized(ctx)
	}

	payload := new(CreateMessagePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("message create parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse message payload"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid message payload"))
	}

	if _, err := a.Repo.Users().GetByUsername(ctx.Context(), payload.ToUsername); err != nil {
		if goerrors.IsNotFound(err) {
			return RespondError(ctx, ErrUserNotFound)
		}
		a.Logger.Error("message create recipient lookup", "to", payload.ToUsername, "error", err)
		return RespondError(ctx, err)
	}

	msg := &Message{
		FromUsername: claims.Username(),
		ToUsername:   payload.ToUsername,
		Body:         payload.Body,
	}

	created, err := a.Repo.Messages().Send(ctx.Context(), msg)
	if err != nil {
		a.Logger.Error("message create", "from", msg.FromUsername, "to", msg.ToUsername, "error", err)
		return RespondError(ctx, err)
	}

	detail, err := a.Repo.Messages().GetWithParticipants(ctx.Context(), created.ID)
	if err != nil {
		a.Logger.Error("message create reload", "id", created.ID, "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"message": NewMessageDetail(detail),
	})
}

// MarkRead stamps the read receipt. Only the recipient may do this, and the
// stamp sticks: repeat calls return the original timestamp.
func (a *MessagesController) MarkRead(ctx router.Context) error {
	claims, ok := ClaimsFromRequest(ctx)
	if !ok {
		return RespondUnauthorized(ctx)
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid message id"))
	}

	msg, err := a.Repo.Messages().GetWithParticipants(ctx.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RespondError(ctx, ErrMessageNotFound)
		}
		a.Logger.Error("message read lookup", "id", id, "error", err)
		return RespondError(ctx, err)
	}

	if !CanMarkMessageRead(claims, msg) {
		return RespondUnauthorized(ctx)
	}

	updated, err := a.Repo.Messages().MarkRead(ctx.Context(), id)
	if err != nil {
		a.Logger.Error("message read", "id", id, "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": map[string]any{
			"id":      updated.ID,
			"read_at": updated.ReadAt,
		},
	})
}
