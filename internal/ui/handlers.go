// Package ui implements the local web frontend for the event platform.
// It renders server-side pages over the shared session manager and auth
// gateway, so the browser and the CLI see the same login state.
package ui

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/me/evento/internal/auth"
	"github.com/me/evento/internal/session"
	"github.com/me/evento/internal/store"
	"github.com/me/evento/internal/view"
	"github.com/me/evento/pkg/api"
	"github.com/me/evento/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	sessions  *session.Manager
	gateway   *auth.Gateway
	binder    *view.Binder
	cookies   *CookieSessions
	logger    *slog.Logger
	startTime time.Time
	secure    bool
}

// Config holds UI configuration.
type Config struct {
	Secure bool // Use secure cookies for HTTPS
}

// New creates a new UI handler over the shared client components.
func New(st store.Store, sessions *session.Manager, gateway *auth.Gateway, binder *view.Binder, logger *slog.Logger, cfg Config) *UI {
	return &UI{
		sessions:  sessions,
		gateway:   gateway,
		binder:    binder,
		cookies:   NewCookieSessions(st),
		logger:    logger.With("component", "ui"),
		startTime: time.Now(),
		secure:    cfg.Secure,
	}
}

func loginRedirect(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(message), http.StatusSeeOther)
}

// HandleLogin renders the login page.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if sess, _ := ui.cookies.FromRequest(r); sess != nil && ui.sessions.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Вход — Evento",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "login", data)
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		loginRedirect(w, r, "Некорректный запрос")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		loginRedirect(w, r, "Укажите email и пароль")
		return
	}

	user, err := ui.gateway.Login(r.Context(), email, password)
	if err != nil {
		ui.logger.Warn("login failed", "email", email, "error", err)
		loginRedirect(w, r, auth.UserMessage(err))
		return
	}

	sess, err := ui.cookies.Create()
	if err != nil {
		ui.logger.Error("create session failed", "error", err)
		loginRedirect(w, r, "Не удалось создать сессию")
		return
	}
	SetSessionCookie(w, sess, ui.secure)

	ui.logger.Info("user logged in", "email", email, "role", user.Role)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRegister renders the registration page.
func (ui *UI) HandleRegister(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title": "Регистрация — Evento",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "register", data)
}

// HandleRegisterPost processes the registration form. Registration does
// not log the browser in; the user is sent to the login page.
func (ui *UI) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/register?error="+url.QueryEscape("Некорректный запрос"), http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if email == "" || username == "" || password == "" {
		http.Redirect(w, r, "/register?error="+url.QueryEscape("Заполните все поля"), http.StatusSeeOther)
		return
	}

	if _, err := ui.gateway.Register(r.Context(), email, password, username); err != nil {
		ui.logger.Warn("registration failed", "email", email, "error", err)
		http.Redirect(w, r, "/register?error="+url.QueryEscape(auth.UserMessage(err)), http.StatusSeeOther)
		return
	}

	loginRedirect(w, r, "Аккаунт создан, войдите")
}

// HandleLogout clears the account session and the browser cookie.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, _ := ui.cookies.FromRequest(r); sess != nil {
		_ = ui.cookies.Delete(sess.ID)
	}
	ui.gateway.Logout()
	ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// --- Event Handlers ---

// HandleEventList renders the public event catalogue.
func (ui *UI) HandleEventList(w http.ResponseWriter, r *http.Request) {
	filter := api.EventFilter{
		Status:    model.EventApproved,
		EventType: r.URL.Query().Get("type"),
	}

	events, err := ui.gateway.Client().ListEvents(r.Context(), filter)
	if err != nil {
		ui.renderError(w, "Не удалось загрузить мероприятия", err)
		return
	}

	data := map[string]any{
		"Title":  "Мероприятия — Evento",
		"Events": events,
		"Type":   filter.EventType,
	}
	ui.render(w, "events/list", data)
}

// HandleEventDetail renders a single event.
func (ui *UI) HandleEventDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		ui.renderNotFound(w, "Мероприятие не найдено")
		return
	}

	ev, err := ui.gateway.Client().GetEvent(r.Context(), id)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			ui.renderNotFound(w, "Мероприятие не найдено")
			return
		}
		ui.renderError(w, "Не удалось загрузить мероприятие", err)
		return
	}

	data := map[string]any{
		"Title": ev.Title + " — Evento",
		"Event": ev,
	}
	ui.render(w, "events/detail", data)
}

// HandleMyEvents renders the events the current user organizes or
// joined.
func (ui *UI) HandleMyEvents(w http.ResponseWriter, r *http.Request) {
	events, err := ui.gateway.Client().MyEvents(r.Context())
	if err != nil {
		ui.renderError(w, "Не удалось загрузить ваши мероприятия", err)
		return
	}

	data := map[string]any{
		"Title":  "Мои мероприятия — Evento",
		"Events": events,
	}
	ui.render(w, "events/mine", data)
}

// HandleEventCreate renders the event creation form.
func (ui *UI) HandleEventCreate(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title": "Новое мероприятие — Evento",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "events/create", data)
}

// HandleEventCreatePost processes the event creation form.
func (ui *UI) HandleEventCreatePost(w http.ResponseWriter, r *http.Request) {
	fail := func(message string) {
		http.Redirect(w, r, "/events/new?error="+url.QueryEscape(message), http.StatusSeeOther)
	}

	if err := r.ParseForm(); err != nil {
		fail("Некорректный запрос")
		return
	}

	start, err := time.Parse("2006-01-02T15:04", r.FormValue("start_date"))
	if err != nil {
		fail("Некорректная дата начала")
		return
	}
	end, err := time.Parse("2006-01-02T15:04", r.FormValue("end_date"))
	if err != nil {
		fail("Некорректная дата окончания")
		return
	}
	capacity, _ := strconv.Atoi(r.FormValue("max_participants"))

	req := model.EventCreate{
		Title:           strings.TrimSpace(r.FormValue("title")),
		Description:     r.FormValue("description"),
		StartDate:       start,
		EndDate:         end,
		Location:        strings.TrimSpace(r.FormValue("location")),
		MaxParticipants: capacity,
		EventType:       r.FormValue("event_type"),
	}
	if req.Title == "" {
		fail("Укажите название")
		return
	}

	ev, err := ui.gateway.Client().CreateEvent(r.Context(), req)
	if err != nil {
		ui.logger.Warn("event create failed", "error", err)
		fail(auth.UserMessage(err))
		return
	}

	ui.logger.Info("event created", "id", ev.ID, "title", ev.Title)
	http.Redirect(w, r, "/events/"+strconv.Itoa(ev.ID), http.StatusSeeOther)
}

// HandleEventJoin signs the current user up for an event.
func (ui *UI) HandleEventJoin(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		ui.renderNotFound(w, "Мероприятие не найдено")
		return
	}

	if _, err := ui.gateway.Client().Participate(r.Context(), id); err != nil {
		ui.renderError(w, "Не удалось записаться на мероприятие", err)
		return
	}
	http.Redirect(w, r, "/events/"+strconv.Itoa(id), http.StatusSeeOther)
}

// HandleEventLeave withdraws the current user from an event.
func (ui *UI) HandleEventLeave(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		ui.renderNotFound(w, "Мероприятие не найдено")
		return
	}

	if err := ui.gateway.Client().CancelParticipation(r.Context(), id); err != nil {
		ui.renderError(w, "Не удалось отменить запись", err)
		return
	}
	http.Redirect(w, r, "/events/"+strconv.Itoa(id), http.StatusSeeOther)
}

// --- Admin Handlers ---

// HandleAdminPending renders the moderation queue.
func (ui *UI) HandleAdminPending(w http.ResponseWriter, r *http.Request) {
	events, err := ui.gateway.Client().PendingEvents(r.Context())
	if err != nil {
		ui.renderError(w, "Не удалось загрузить очередь модерации", err)
		return
	}

	data := map[string]any{
		"Title":  "Модерация — Evento",
		"Events": events,
	}
	ui.render(w, "admin/pending", data)
}

// HandleAdminApprove approves a pending event.
func (ui *UI) HandleAdminApprove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		ui.renderNotFound(w, "Мероприятие не найдено")
		return
	}

	if err := ui.gateway.Client().ApproveEvent(r.Context(), id); err != nil {
		ui.renderError(w, "Не удалось одобрить мероприятие", err)
		return
	}
	ui.logger.Info("event approved", "id", id)
	http.Redirect(w, r, "/admin/pending", http.StatusSeeOther)
}

// HandleAdminReject rejects a pending event with an optional reason.
func (ui *UI) HandleAdminReject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		ui.renderNotFound(w, "Мероприятие не найдено")
		return
	}

	if err := r.ParseForm(); err != nil {
		ui.renderError(w, "Некорректный запрос", err)
		return
	}
	reason := strings.TrimSpace(r.FormValue("reason"))

	if err := ui.gateway.Client().RejectEvent(r.Context(), id, reason); err != nil {
		ui.renderError(w, "Не удалось отклонить мероприятие", err)
		return
	}
	ui.logger.Info("event rejected", "id", id)
	http.Redirect(w, r, "/admin/pending", http.StatusSeeOther)
}

// HandleAdminUsers renders the account list.
func (ui *UI) HandleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := ui.gateway.Client().ListUsers(r.Context())
	if err != nil {
		ui.renderError(w, "Не удалось загрузить пользователей", err)
		return
	}

	data := map[string]any{
		"Title": "Пользователи — Evento",
		"Users": users,
		"Roles": []model.Role{model.RoleVisitor, model.RoleOrganizer, model.RoleAdmin},
	}
	ui.render(w, "admin/users", data)
}

// HandleAdminSetRole changes an account's role.
func (ui *UI) HandleAdminSetRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		ui.renderNotFound(w, "Пользователь не найден")
		return
	}

	if err := r.ParseForm(); err != nil {
		ui.renderError(w, "Некорректный запрос", err)
		return
	}
	role := model.ParseRole(r.FormValue("role"))

	if _, err := ui.gateway.Client().SetUserRole(r.Context(), id, role); err != nil {
		ui.renderError(w, "Не удалось изменить роль", err)
		return
	}
	ui.logger.Info("role changed", "user_id", id, "role", role)
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// --- Helper Methods ---

func (ui *UI) render(w http.ResponseWriter, template string, data map[string]any) {
	ui.renderStatus(w, http.StatusOK, template, data)
}

func (ui *UI) renderStatus(w http.ResponseWriter, status int, template string, data map[string]any) {
	data["Nav"] = ui.binder.Nav()

	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	ui.logger.Error(message, "error", err)
	ui.renderStatus(w, http.StatusInternalServerError, "error", map[string]any{
		"Title":   "Ошибка — Evento",
		"Message": message,
	})
}

func (ui *UI) renderNotFound(w http.ResponseWriter, message string) {
	ui.renderStatus(w, http.StatusNotFound, "error", map[string]any{
		"Title":   "Не найдено — Evento",
		"Message": message,
	})
}
