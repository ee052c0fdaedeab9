package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"inkledger/internal/log"
	"inkledger/internal/services"
	"inkledger/internal/validate"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Catalog *services.CatalogService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}

	_, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return h.registerErr(c, "Enter a valid email address")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.registerErr(c, "Enter your name")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		return h.registerErr(c, "Enter a valid phone number")
	}
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		return h.registerErr(c, "Password needs 8+ characters with upper, lower and digit")
	}

	u, err := h.Auth.Register(email, pass, name, phone)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return h.registerErr(c, "That email is already registered")
		}
		log.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		return h.registerErr(c, "Could not create the account. Please try again.")
	}

	// New accounts start with the default catalog.
	if err := h.Catalog.SeedDefaults(u.ID); err != nil {
		log.Error(c, "auth.register.seed.fail", err, map[string]any{"user": u.ID})
	}

	if _, err := h.Auth.Login(sid, email, pass); err != nil {
		return c.Redirect("/login")
	}
	log.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) registerErr(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": msg, "CSRFToken": c.Cookies("csrf_")})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}
