package messagely_test

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	messagely "github.com/kneyzberg/messagely"
)

func newUsersController(t *testing.T) *messagely.UsersController {
	t.Helper()

	db := setupTestDB(t)
	return &messagely.UsersController{
		Repo: messagely.NewRepositoryManager(db),
	}
}

func TestUsersIndexListsSummaries(t *testing.T) {
	controller := newUsersController(t)
	registerTestUser(t, controller.Repo, "bob")
	registerTestUser(t, controller.Repo, "alice")

	ctx := authedMockContext("alice")

	var payload map[string]any
	ctx.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		payload = args.Get(1).(map[string]any)
	}).Return(nil)

	err := controller.Index(ctx)
	require.NoError(t, err)

	summaries, ok := payload["users"].([]messagely.UserSummary)
	require.True(t, ok)
	require.Len(t, summaries, 2)
	assert.Equal(t, "alice", summaries[0].Username)
	assert.Equal(t, "bob", summaries[1].Username)
}

func TestUserShowProfile(t *testing.T) {
	controller := newUsersController(t)
	registerTestUser(t, controller.Repo, "alice")

	ctx := authedMockContext("alice")
	ctx.ParamsM["username"] = "alice"

	var payload map[string]any
	ctx.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		payload = args.Get(1).(map[string]any)
	}).Return(nil)

	err := controller.Show(ctx)
	require.NoError(t, err)

	profile, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "Test", profile["first_name"])
	assert.NotContains(t, profile, "password_hash")
}

func TestUserShowUnknownUser(t *testing.T) {
	controller := newUsersController(t)

	ctx := authedMockContext("ghost")
	ctx.ParamsM["username"] = "ghost"
	ctx.On("JSON", router.StatusNotFound, mock.Anything).Return(nil)

	err := controller.Show(ctx)
	require.NoError(t, err)
	ctx.AssertCalled(t, "JSON", router.StatusNotFound, mock.Anything)
}

func TestUserMessageListings(t *testing.T) {
	controller := newUsersController(t)
	registerTestUser(t, controller.Repo, "alice")
	registerTestUser(t, controller.Repo, "bob")
	sendTestMessage(t, controller.Repo, "alice", "bob", "hello bob")
	sendTestMessage(t, controller.Repo, "bob", "alice", "hello alice")

	inbox := authedMockContext("bob")
	inbox.ParamsM["username"] = "bob"

	var inboxPayload map[string]any
	inbox.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		inboxPayload = args.Get(1).(map[string]any)
	}).Return(nil)

	require.NoError(t, controller.MessagesTo(inbox))

	raw, err := json.Marshal(inboxPayload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"body":"hello bob"`)
	assert.Contains(t, string(raw), `"from_user"`)
	assert.NotContains(t, string(raw), `"hello alice"`)

	outbox := authedMockContext("bob")
	outbox.ParamsM["username"] = "bob"

	var outboxPayload map[string]any
	outbox.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		outboxPayload = args.Get(1).(map[string]any)
	}).Return(nil)

	require.NoError(t, controller.MessagesFrom(outbox))

	raw, err = json.Marshal(outboxPayload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"body":"hello alice"`)
	assert.Contains(t, string(raw), `"to_user"`)
}
