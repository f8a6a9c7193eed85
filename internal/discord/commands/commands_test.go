package commands

import (
	"fmt"
	"testing"

	"github.com/MysticalWizard/electricalwizard/internal/quotes"
)

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{
		2000: true,
		2024: true,
		1900: false,
		2023: false,
	}
	for year, want := range cases {
		if got := isLeapYear(year); got != want {
			t.Fatalf("isLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestTimezoneChoices(t *testing.T) {
	choices := timezoneChoices()
	if len(choices) != 25 {
		t.Fatalf("want 25 timezone choices, got %d", len(choices))
	}
	if choices[0].Name != "UTC-12:00" || choices[0].Value != "-12" {
		t.Fatalf("first choice %q/%v", choices[0].Name, choices[0].Value)
	}
	if choices[24].Name != "UTC+12:00" || choices[24].Value != "12" {
		t.Fatalf("last choice %q/%v", choices[24].Name, choices[24].Value)
	}
}

func TestSplitNicknames(t *testing.T) {
	got := splitNicknames(" ed , eddie,, ed the great ")
	want := []string{"ed", "eddie", "ed the great"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMergeNicknamesDedupes(t *testing.T) {
	got := mergeNicknames([]string{"ed", "eddie"}, []string{"eddie", "big ed"})
	want := []string{"ed", "eddie", "big ed"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestChainMessageCoversDomainErrors(t *testing.T) {
	for _, err := range []error{
		quotes.ErrDoubleLink,
		quotes.ErrCircularLink,
		quotes.ErrChainTooLong,
		quotes.ErrNotFound,
	} {
		msg, ok := chainMessage(fmt.Errorf("wrapped: %w", err))
		if !ok || msg == "" {
			t.Fatalf("no user message for %v", err)
		}
	}
	if _, ok := chainMessage(fmt.Errorf("disk on fire")); ok {
		t.Fatalf("unexpected mapping for unrelated error")
	}
}
