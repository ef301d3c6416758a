package accounts

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := map[string]Role{
		"":           RoleUser,
		"user":       RoleUser,
		"ROLE_USER":  RoleUser,
		"Admin":      RoleAdmin,
		"role_admin": RoleAdmin,
		" ADMIN ":    RoleAdmin,
		"superuser":  RoleUser,
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}
