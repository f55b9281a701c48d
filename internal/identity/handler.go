package identity

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/lenden-pay/lenden/internal/auth"
	"github.com/lenden-pay/lenden/internal/middleware"
)

// Handler exposes the identity endpoints.
type Handler struct {
	service *Service
	roles   []string
}

// NewHandler constructs an identity HTTP handler. roles is the set of
// recognized role tags for this deployment.
func NewHandler(service *Service, roles []string) *Handler {
	return &Handler{service: service, roles: roles}
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
	Role  string `json:"role"`
}

func (r registerRequest) Validate(roles []string) error {
	if r.Email == "" && r.Phone == "" {
		return errors.New("email or phone is required")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.PIN, validation.Required, validation.Length(4, 6), is.Digit),
		validation.Field(&r.Role, validation.Required, validation.In(anySlice(roles)...)),
	)
}

type signInRequest struct {
	Phonemail string `json:"phonemail"`
	PIN       string `json:"pin"`
}

func (r signInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phonemail, validation.Required),
		validation.Field(&r.PIN, validation.Required),
	)
}

type signInResponse struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}

// Register handles user onboarding. A role-scoped email or phone collision is
// a conflict, not a success-shaped error payload.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(h.roles); err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	user, err := h.service.Register(c.UserContext(), RegisterInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		PIN:   req.PIN,
		Role:  req.Role,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return fiber.NewError(http.StatusConflict, "User already exists")
		}
		return fiber.NewError(http.StatusInternalServerError, "Internal server error")
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user_id": user.ID})
}

// SignIn verifies credentials and returns the redacted profile with a session token.
func (h *Handler) SignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, token, err := h.service.SignIn(c.UserContext(), req.Phonemail, req.PIN)
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrNotActive):
		return fiber.NewError(http.StatusBadRequest, "User is not active, please try again later")
	case errors.Is(err, ErrBadCredentials):
		return fiber.NewError(http.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, "Internal server error")
	}
	return c.Status(http.StatusOK).JSON(signInResponse{User: user.Profile(), Token: token})
}

// Authenticate returns the profile for the claims attached by the bearer
// middleware, re-checked against the directory.
func (h *Handler) Authenticate(c *fiber.Ctx) error {
	claims, ok := c.Locals(middleware.ClaimsLocal).(auth.Claims)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Forbidden access")
	}
	user, err := h.service.Authenticate(c.UserContext(), claims)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusForbidden, "Unauthorized access")
		}
		return fiber.NewError(http.StatusInternalServerError, "Internal server error")
	}
	return c.Status(http.StatusOK).JSON(user.Profile())
}

func anySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
