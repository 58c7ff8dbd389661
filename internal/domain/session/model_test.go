package session

import "testing"

// TestFromServer_MapsEveryField tests the explicit payload mapping.
func TestFromServer_MapsEveryField(t *testing.T) {
	u := User{
		ID:             "u1",
		Name:           "Asha Verma",
		Email:          "a@b.com",
		Role:           "admin",
		College:        "NIT Surat",
		Branch:         "CSE",
		GraduationYear: "2027",
		ProfilePic:     "https://cdn/p.png",
	}
	s, err := FromServer(u, "T")
	if err != nil {
		t.Fatalf("expected session, got: %v", err)
	}
	if s.ID != "u1" || s.Email != "a@b.com" || s.Token != "T" {
		t.Fatalf("core fields mismapped: %+v", s)
	}
	if s.Role != RoleAdmin || s.College != "NIT Surat" || s.Branch != "CSE" {
		t.Fatalf("profile fields mismapped: %+v", s)
	}
	if s.GraduationYear != "2027" || s.ProfilePicURL != "https://cdn/p.png" {
		t.Fatalf("optional fields mismapped: %+v", s)
	}
}

// TestFromServer_Defaults tests safe defaults for absent fields.
func TestFromServer_Defaults(t *testing.T) {
	u := User{MongoID: "64fe", Email: "s@college.edu"}
	s, err := FromServer(u, "tok")
	if err != nil {
		t.Fatalf("expected session, got: %v", err)
	}
	if s.ID != "64fe" {
		t.Fatalf("expected id to fall back to _id, got %q", s.ID)
	}
	if s.Role != RoleStudent {
		t.Fatalf("expected default role student, got %q", s.Role)
	}
	if s.GraduationYear != DefaultGraduationYear {
		t.Fatalf("expected default graduation year, got %q", s.GraduationYear)
	}
	if s.College != "" || s.Branch != "" || s.ProfilePicURL != "" {
		t.Fatalf("expected empty optional fields, got %+v", s)
	}
}

// TestFromServer_Rejects tests required-field validation.
func TestFromServer_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		user  User
		token string
		want  error
	}{
		{"no id", User{Email: "a@b.com"}, "T", ErrMissingID},
		{"no email", User{ID: "u1"}, "T", ErrMissingEmail},
		{"no token", User{ID: "u1", Email: "a@b.com"}, "", ErrEmptyToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromServer(tc.user, tc.token)
			if err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

// TestIdentityRoundTrip tests that a cached identity restores to an
// equivalent session.
func TestIdentityRoundTrip(t *testing.T) {
	orig, err := FromServer(User{ID: "u1", Name: "Asha", Email: "a@b.com", Role: "admin"}, "T")
	if err != nil {
		t.Fatalf("FromServer: %v", err)
	}
	data, err := orig.MarshalIdentity()
	if err != nil {
		t.Fatalf("MarshalIdentity: %v", err)
	}
	got, err := UnmarshalIdentity(data, "T")
	if err != nil {
		t.Fatalf("UnmarshalIdentity: %v", err)
	}
	if got != orig {
		t.Fatalf("round trip mismatch:\n  got  %+v\n  want %+v", got, orig)
	}
}

// TestUnmarshalIdentity_Corrupt tests that corrupt cache data is rejected.
func TestUnmarshalIdentity_Corrupt(t *testing.T) {
	if _, err := UnmarshalIdentity([]byte("{not json"), "T"); err == nil {
		t.Fatal("expected error for malformed identity")
	}
	if _, err := UnmarshalIdentity([]byte(`{"name":"x"}`), "T"); err == nil {
		t.Fatal("expected error for incomplete identity")
	}
}
