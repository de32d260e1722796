package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/v1/auth/login", "/v1/auth/login"},
		{"/v1/resumes", "/v1/resumes"},
		{"/v1/resumes/7c9e6679-7425-40de-944b-e07fc1f90ae7", "/v1/resumes/:param"},
		{"/v1/resumes/12345", "/v1/resumes/:param"},
		{"/v1/resumes/deadbeefdeadbeefdead", "/v1/resumes/:param"},
		{"/v1/resumes?page=2", "/v1/resumes"},
		{"v1/me", "/v1/me"},
	}
	for _, c := range cases {
		if got := normalizePath(c.in); got != c.want {
			t.Errorf("normalizePath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsDynamicSegment(t *testing.T) {
	dynamic := []string{
		"7c9e6679-7425-40de-944b-e07fc1f90ae7",
		"42",
		"deadbeefdeadbeef",
		"AbCdEfGhIjKlMnOpQrStUvWx",
	}
	for _, seg := range dynamic {
		if !isDynamicSegment(seg) {
			t.Errorf("isDynamicSegment(%q) = false, want true", seg)
		}
	}

	static := []string{"auth", "resumes", "me", "refresh-token"}
	for _, seg := range static {
		if isDynamicSegment(seg) {
			t.Errorf("isDynamicSegment(%q) = true, want false", seg)
		}
	}
}
