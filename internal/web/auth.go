package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bookbrust/bookbrust/internal/bookapi"
	"github.com/bookbrust/bookbrust/internal/session"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type signupForm struct {
	Email    string `validate:"required,email"`
	Alias    string `validate:"required,min=2,max=50"`
	Password string `validate:"required,min=8"`
}

// formMessage turns a validation error into a short, user-facing sentence
// naming the first offending field.
func formMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "please check the form and try again"
	}
	field := strings.ToLower(verrs[0].Field())
	if field == "googlebooksid" {
		field = "book id"
	}
	switch verrs[0].Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "please enter a valid email address"
	case "min":
		return field + " is too short"
	case "max":
		return field + " is too long"
	default:
		return field + " is invalid"
	}
}

// authData keeps the submitted values so a failed form comes back filled
// in. FormAlias is distinct from the signed-in alias in pageData.
type authData struct {
	pageData
	Email     string
	FormAlias string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "login", authData{pageData: s.basePage("Log in")})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	data := authData{pageData: s.basePage("Log in"), Email: form.Email}

	// Validate locally before any request goes out.
	if err := s.validate.Struct(form); err != nil {
		data.Error = formMessage(err)
		s.render(w, http.StatusUnprocessableEntity, "login", data)
		return
	}

	result, err := s.api.Login(r.Context(), bookapi.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	s.metrics.RecordAPICall("login", err)
	if err != nil {
		data.Error = requestMessage(err)
		s.render(w, http.StatusOK, "login", data)
		return
	}

	s.sessions.Login(r.Context(), result.Token, session.Identity{
		Email: result.User.Email,
		Alias: result.User.Alias,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "signup", authData{pageData: s.basePage("Sign up")})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := signupForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Alias:    strings.TrimSpace(r.PostFormValue("alias")),
		Password: r.PostFormValue("password"),
	}

	data := authData{pageData: s.basePage("Sign up"), Email: form.Email, FormAlias: form.Alias}

	if err := s.validate.Struct(form); err != nil {
		data.Error = formMessage(err)
		s.render(w, http.StatusUnprocessableEntity, "signup", data)
		return
	}

	result, err := s.api.Signup(r.Context(), bookapi.SignupRequest{
		Email:    form.Email,
		Alias:    form.Alias,
		Password: form.Password,
	})
	s.metrics.RecordAPICall("signup", err)
	if err != nil {
		data.Error = requestMessage(err)
		s.render(w, http.StatusOK, "signup", data)
		return
	}

	// Signup returns a token, so the new user is signed in right away.
	s.sessions.Login(r.Context(), result.Token, session.Identity{
		Email: result.User.Email,
		Alias: result.User.Alias,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
