package messagely

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes holds the session issuance route paths
type AuthControllerRoutes struct {
	Login    string
	Register string
}

// AuthController serves login and registration. Both respond with a session
// token so a fresh registration is immediately usable.
type AuthController struct {
	Logger Logger
	Repo   RepositoryManager
	Auth   Authenticator
	Tokens TokenService
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auth == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithControllerAuthenticator(auth Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auth = auth
		return c
	}
}

func WithControllerTokenService(ts TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = ts
		return c
	}
}

// RegisterAuthRoutes mounts the session issuance routes
func RegisterAuthRoutes(app RouteRegistrar, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")
	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth.register")

	return controller
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse login payload"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload"))
	}

	token, err := a.Auth.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		a.Logger.Error("login failed", "username", payload.Username, "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"token": token,
	})
}

// RegistrationCreatePayload is the registration payload
type RegistrationCreatePayload struct {
	Username  string `form:"username" json:"username"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Phone     string `form:"phone" json:"phone"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.Length(7, 20)),
	)
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse registration payload"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload"))
	}

	req := RegisterUserMessage{
		Username:  payload.Username,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
	}

	registerUser := NewRegisterUserHandler(a.Repo)
	user, err := registerUser.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("register user", "username", payload.Username, "error", err)
		return RespondError(ctx, err)
	}

	token, err := a.Tokens.Generate(user.Username)
	if err != nil {
		a.Logger.Error("register token generation", "username", user.Username, "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"token": token,
	})
}
