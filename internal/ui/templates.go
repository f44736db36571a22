package ui

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02.01.2006 15:04")
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02.01.2006")
	},
	"statusLabel": func(s string) string {
		switch s {
		case "pending":
			return "На модерации"
		case "approved":
			return "Одобрено"
		case "rejected":
			return "Отклонено"
		default:
			return s
		}
	},
	"statusColor": func(s string) string {
		switch s {
		case "pending":
			return "yellow"
		case "approved":
			return "green"
		case "rejected":
			return "red"
		default:
			return "gray"
		}
	},
	"roleLabel": func(r string) string {
		switch r {
		case "admin":
			return "Администратор"
		case "organizer":
			return "Организатор"
		default:
			return "Посетитель"
		}
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
}

// renderTemplate renders a named page inside the layout.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(templates["layout"])
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	if _, err := tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	return tmpl.ExecuteTemplate(w, "layout", data)
}

// templates holds all page templates keyed by name. The layout provides
// the navigation bar; visibility of its protected regions comes from
// the Nav snapshot, never from ad-hoc checks in the pages.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f7f7f8; color: #1f2328; }
nav { background: #1f2937; color: #fff; padding: 0.75rem 1.5rem; display: flex; gap: 1rem; align-items: center; }
nav a { color: #d1d5db; text-decoration: none; }
nav a:hover { color: #fff; }
nav .user { margin-left: auto; color: #9ca3af; }
main { max-width: 960px; margin: 1.5rem auto; padding: 0 1rem; }
.card { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1rem; }
.error { background: #fef2f2; border: 1px solid #fecaca; color: #b91c1c; padding: 0.75rem 1rem; border-radius: 6px; margin-bottom: 1rem; }
.badge { display: inline-block; padding: 0.15rem 0.5rem; border-radius: 9999px; font-size: 0.8rem; }
.badge.green { background: #dcfce7; color: #166534; }
.badge.yellow { background: #fef9c3; color: #854d0e; }
.badge.red { background: #fee2e2; color: #991b1b; }
.badge.gray { background: #f3f4f6; color: #374151; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 0.5rem; border-bottom: 1px solid #e5e7eb; }
form.inline { display: inline; }
input, textarea, select { font: inherit; padding: 0.4rem 0.6rem; border: 1px solid #d1d5db; border-radius: 6px; width: 100%; box-sizing: border-box; }
label { display: block; margin: 0.75rem 0 0.25rem; font-weight: 600; }
button { font: inherit; background: #2563eb; color: #fff; border: 0; border-radius: 6px; padding: 0.5rem 1rem; cursor: pointer; }
button.danger { background: #dc2626; }
</style>
</head>
<body>
<nav>
<a href="/"><strong>Evento</strong></a>
{{if .Nav.Authenticated}}<a href="/my">Мои мероприятия</a>{{end}}
{{if .Nav.Organizer}}<a href="/events/new">Создать</a>{{end}}
{{if .Nav.Admin}}<a href="/admin/pending">Модерация</a><a href="/admin/users">Пользователи</a>{{end}}
{{if .Nav.Authenticated}}
<span class="user">{{.Nav.DisplayName}}</span>
<a href="/logout">Выйти</a>
{{else}}
<span class="user"></span>
<a href="/login">Войти</a>
<a href="/register">Регистрация</a>
{{end}}
</nav>
<main>
{{template "content" .}}
</main>
</body>
</html>`,

	"login": `<div class="card" style="max-width: 420px; margin: 2rem auto;">
<h1>Вход</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<form method="post" action="/login">
<label for="email">Email</label>
<input type="email" id="email" name="email" required>
<label for="password">Пароль</label>
<input type="password" id="password" name="password" required>
<p><button type="submit">Войти</button></p>
</form>
<p>Нет аккаунта? <a href="/register">Зарегистрируйтесь</a></p>
</div>`,

	"register": `<div class="card" style="max-width: 420px; margin: 2rem auto;">
<h1>Регистрация</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<form method="post" action="/register">
<label for="username">Имя пользователя</label>
<input type="text" id="username" name="username" required>
<label for="email">Email</label>
<input type="email" id="email" name="email" required>
<label for="password">Пароль</label>
<input type="password" id="password" name="password" required>
<p><button type="submit">Создать аккаунт</button></p>
</form>
</div>`,

	"events/list": `<h1>Мероприятия</h1>
{{if not .Events}}<div class="card">Пока нет мероприятий.</div>{{end}}
{{range .Events}}
<div class="card">
<h2><a href="/events/{{.ID}}">{{.Title}}</a></h2>
<p>{{formatTime .StartDate}} — {{.Location}}</p>
<p>{{truncate .Description 200}}</p>
</div>
{{end}}`,

	"events/detail": `<div class="card">
<h1>{{.Event.Title}} <span class="badge {{statusColor (printf "%s" .Event.Status)}}">{{statusLabel (printf "%s" .Event.Status)}}</span></h1>
<p><strong>Когда:</strong> {{formatTime .Event.StartDate}} — {{formatTime .Event.EndDate}}</p>
<p><strong>Где:</strong> {{.Event.Location}}</p>
{{if .Event.MaxParticipants}}<p><strong>Мест:</strong> {{.Event.MaxParticipants}}</p>{{end}}
{{if .Event.Organizer}}<p><strong>Организатор:</strong> {{.Event.Organizer.DisplayName}}</p>{{end}}
{{if .Event.RejectionReason}}<div class="error">Причина отклонения: {{.Event.RejectionReason}}</div>{{end}}
<p>{{.Event.Description}}</p>
{{if .Nav.Authenticated}}
<form class="inline" method="post" action="/events/{{.Event.ID}}/join"><button type="submit">Записаться</button></form>
<form class="inline" method="post" action="/events/{{.Event.ID}}/leave"><button type="submit" class="danger">Отменить запись</button></form>
{{else}}
<p><a href="/login">Войдите</a>, чтобы записаться.</p>
{{end}}
</div>`,

	"events/mine": `<h1>Мои мероприятия</h1>
{{if not .Events}}<div class="card">У вас пока нет мероприятий.</div>{{end}}
{{if .Events}}
<div class="card">
<table>
<tr><th>Название</th><th>Начало</th><th>Статус</th></tr>
{{range .Events}}
<tr>
<td><a href="/events/{{.ID}}">{{.Title}}</a></td>
<td>{{formatTime .StartDate}}</td>
<td><span class="badge {{statusColor (printf "%s" .Status)}}">{{statusLabel (printf "%s" .Status)}}</span></td>
</tr>
{{end}}
</table>
</div>
{{end}}`,

	"events/create": `<div class="card" style="max-width: 560px;">
<h1>Новое мероприятие</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<form method="post" action="/events/new">
<label for="title">Название</label>
<input type="text" id="title" name="title" required>
<label for="description">Описание</label>
<textarea id="description" name="description" rows="5"></textarea>
<label for="start_date">Начало</label>
<input type="datetime-local" id="start_date" name="start_date" required>
<label for="end_date">Окончание</label>
<input type="datetime-local" id="end_date" name="end_date" required>
<label for="location">Место</label>
<input type="text" id="location" name="location">
<label for="max_participants">Максимум участников</label>
<input type="number" id="max_participants" name="max_participants" min="0">
<label for="event_type">Тип</label>
<input type="text" id="event_type" name="event_type">
<p><button type="submit">Отправить на модерацию</button></p>
</form>
</div>`,

	"admin/pending": `<h1>Очередь модерации</h1>
{{if not .Events}}<div class="card">Очередь пуста.</div>{{end}}
{{range .Events}}
<div class="card">
<h2><a href="/events/{{.ID}}">{{.Title}}</a></h2>
<p>{{formatTime .StartDate}} — {{.Location}}</p>
{{if .Organizer}}<p>Организатор: {{.Organizer.DisplayName}}</p>{{end}}
<form class="inline" method="post" action="/admin/events/{{.ID}}/approve"><button type="submit">Одобрить</button></form>
<form class="inline" method="post" action="/admin/events/{{.ID}}/reject">
<input type="hidden" name="reason" value="">
<button type="submit" class="danger">Отклонить</button>
</form>
</div>
{{end}}`,

	"admin/users": `<h1>Пользователи</h1>
<div class="card">
<table>
<tr><th>ID</th><th>Имя</th><th>Email</th><th>Роль</th><th></th></tr>
{{range .Users}}
<tr>
<td>{{.ID}}</td>
<td>{{.Username}}</td>
<td>{{.Email}}</td>
<td>{{roleLabel (printf "%s" .Role)}}</td>
<td>
<form class="inline" method="post" action="/admin/users/{{.ID}}/role">
<select name="role">
<option value="visitor">Посетитель</option>
<option value="organizer">Организатор</option>
<option value="admin">Администратор</option>
</select>
<button type="submit">Сменить</button>
</form>
</td>
</tr>
{{end}}
</table>
</div>`,

	"error": `<div class="card">
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<p><a href="/">На главную</a></p>
</div>`,
}
