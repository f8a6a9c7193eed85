package store

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{
			name: "preferred initial with family",
			user: User{Name: StructuredName{First: FirstName{Given: "Edward", Preferred: "Ted"}, Family: "Smith"}},
			want: "T. Smith",
		},
		{
			name: "given initial with family",
			user: User{Name: StructuredName{First: FirstName{Given: "Edward"}, Family: "Smith"}},
			want: "E. Smith",
		},
		{
			name: "given only",
			user: User{Name: StructuredName{First: FirstName{Given: "Edward"}}},
			want: "Edward",
		},
		{
			name: "family only",
			user: User{Name: StructuredName{Family: "Smith"}},
			want: "Smith",
		},
		{
			name: "no structured name",
			user: User{Username: "eddie42"},
			want: "eddie42",
		},
	}
	for _, tc := range cases {
		if got := tc.user.DisplayName(); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
