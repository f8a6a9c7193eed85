package discord

import (
	"reflect"
	"testing"

	"github.com/MysticalWizard/electricalwizard/internal/store"
)

func TestMatchNicknames(t *testing.T) {
	users := []store.User{
		{UserID: "1", Nicknames: []string{"Wiz", "sparky"}},
		{UserID: "2", Nicknames: []string{"eddie"}},
		{UserID: "3", Nicknames: []string{"ohm"}},
	}

	cases := []struct {
		content string
		want    []string
	}{
		{"have you seen wiz today?", []string{"1"}},
		{"eddie, WIZ!", []string{"2", "1"}},
		// Each user mentioned once even when several nicknames match.
		{"sparky aka wiz", []string{"1"}},
		{"nothing to see here", nil},
		// Whole words only; substrings do not match.
		{"wizard ohms", nil},
		{"(ohm)", []string{"3"}},
	}

	for _, tc := range cases {
		got := matchNicknames(tc.content, users)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("matchNicknames(%q) = %v, want %v", tc.content, got, tc.want)
		}
	}
}

func TestMatchNicknamesNoUsers(t *testing.T) {
	if got := matchNicknames("hello wiz", nil); got != nil {
		t.Fatalf("want nil, got %v", got)
	}
}
