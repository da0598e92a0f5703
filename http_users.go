package messagely

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// UsersController serves the user directory and per-user message listings.
// The per-user routes are gated by RequireSelf: only the account owner may
// see their profile and inboxes.
type UsersController struct {
	Logger Logger
	Repo   RepositoryManager
}

// RegisterUserRoutes mounts the user routes
func RegisterUserRoutes(app RouteRegistrar, controller *UsersController) *UsersController {
	if controller.Logger == nil {
		controller.Logger = defLogger{}
	}
	if controller.Repo == nil {
		panic("Missing RepositoryManager in users controller...")
	}

	app.Get("/users", controller.Index, RequireAuthenticated()).
		SetName("users.index")
	app.Get("/users/:username/to", controller.MessagesTo, RequireSelf("username")).
		SetName("users.messages.to")
	app.Get("/users/:username/from", controller.MessagesFrom, RequireSelf("username")).
		SetName("users.messages.from")
	app.Get("/users/:username", controller.Show, RequireSelf("username")).
		SetName("users.show")

	return controller
}

// Index lists every account as a public summary
func (a *UsersController) Index(ctx router.Context) error {
	records, err := a.Repo.Users().ListAll(ctx.Context())
	if err != nil {
		a.Logger.Error("users index", "error", err)
		return RespondError(ctx, err)
	}

	summaries := make([]UserSummary, 0, len(records))
	for _, user := range records {
		summaries = append(summaries, user.Summary())
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"users": summaries,
	})
}

// Show returns the full profile of the authenticated user
func (a *UsersController) Show(ctx router.Context) error {
	username := ctx.Param("username")

	user, err := a.Repo.Users().GetByUsername(ctx.Context(), username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RespondError(ctx, ErrUserNotFound)
		}
		a.Logger.Error("users show", "username", username, "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"user": map[string]any{
			"username":      user.Username,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"phone":         user.Phone,
			"joined_at":     user.JoinedAt,
			"last_login_at": user.LastLoginAt,
		},
	})
}

type inboundMessage struct {
	ID       uuid.UUID   `json:"id"`
	Body     string      `json:"body"`
	SentAt   *time.Time  `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at,omitempty"`
	FromUser UserSummary `json:"from_user"`
}

type outboundMessage struct {
	ID     uuid.UUID   `json:"id"`
	Body   string      `json:"body"`
	SentAt *time.Time  `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at,omitempty"`
	ToUser UserSummary `json:"to_user"`
}

// MessagesTo lists the messages addressed to the user, each with the sender
func (a *UsersController) MessagesTo(ctx router.Context) error {
	username := ctx.Param("username")

	records, err := a.Repo.Messages().ListTo(ctx.Context(), username)
	if err != nil {
		a.Logger.Error("users messages to", "username", username, "error", err)
		return RespondError(ctx, err)
	}

	payload := make([]inboundMessage, 0, len(records))
	for _, msg := range records {
		payload = append(payload, inboundMessage{
			ID:       msg.ID,
			Body:     msg.Body,
			SentAt:   msg.SentAt,
			ReadAt:   msg.ReadAt,
			FromUser: msg.FromUser.Summary(),
		})
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"messages": payload,
	})
}

// MessagesFrom lists the messages the user sent, each with the recipient
func (a *UsersController) MessagesFrom(ctx router.Context) error {
	username := ctx.Param("username")

	records, err := a.Repo.Messages().ListFrom(ctx.Context(), username)
	if err != nil {
		a.Logger.Error("users messages from", "username", username, "error", err)
		return RespondError(ctx, err)
	}

	payload := make([]outboundMessage, 0, len(records))
	for _, msg := range records {
		payload = append(payload, outboundMessage{
			ID:     msg.ID,
			Body:   msg.Body,
			SentAt: msg.SentAt,
			ReadAt: msg.ReadAt,
			ToUser: msg.ToUser.Summary(),
		})
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"messages": payload,
	})
}
