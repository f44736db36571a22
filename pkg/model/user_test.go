package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Role
	}{
		{"visitor", "visitor", RoleVisitor},
		{"organizer", "organizer", RoleOrganizer},
		{"admin", "admin", RoleAdmin},
		{"admin mixed case", "Admin", RoleAdmin},
		{"admin upper case", "ADMIN", RoleAdmin},
		{"organizer mixed case", "Organizer", RoleOrganizer},
		{"whitespace", "  admin  ", RoleAdmin},
		{"unknown maps to visitor", "superuser", RoleVisitor},
		{"empty maps to visitor", "", RoleVisitor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRole(tt.in); got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUserCanOrganize(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleVisitor, false},
		{RoleOrganizer, true},
		{RoleAdmin, true},
	}

	for _, tt := range tests {
		u := &User{Role: tt.role}
		if got := u.CanOrganize(); got != tt.want {
			t.Errorf("CanOrganize() with role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestUserDisplayName(t *testing.T) {
	u := &User{Username: "ivan", FullName: "Ivan Petrov"}
	if got := u.DisplayName(); got != "Ivan Petrov" {
		t.Errorf("DisplayName() = %q, want full name", got)
	}

	u.FullName = ""
	if got := u.DisplayName(); got != "ivan" {
		t.Errorf("DisplayName() = %q, want username fallback", got)
	}
}

func TestEventStatusIsPublic(t *testing.T) {
	if EventPending.IsPublic() {
		t.Error("pending events must not be public")
	}
	if !EventApproved.IsPublic() {
		t.Error("approved events must be public")
	}
	if EventRejected.IsPublic() {
		t.Error("rejected events must not be public")
	}
}
