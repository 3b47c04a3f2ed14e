package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unauthorized", fmt.Errorf("load watchlist: %w", ErrUnauthorized), "Run 'heimdall login' to sign in"},
		{"explicit suggestion", WithSuggestion(ErrNotFound, "try another title"), "try another title"},
		{"timeout", ErrTimeout, "Check that the Heimdall backend is running and reachable"},
		{"connection refused", fmt.Errorf("dial tcp: connection refused"), "Check that the Heimdall backend is running and reachable"},
		{"out of range", ErrIndexOutOfRange, "Run 'heimdall queue' to see valid positions"},
		{"unknown", fmt.Errorf("something odd"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSuggestion(tt.err); got != tt.want {
				t.Errorf("GetSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format(ErrUnauthorized)
	if !strings.HasPrefix(got, "Error: not logged in") {
		t.Errorf("Format() = %q, missing error text", got)
	}
	if !strings.Contains(got, "Suggestion: Run 'heimdall login'") {
		t.Errorf("Format() = %q, missing suggestion", got)
	}

	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestPartialResult(t *testing.T) {
	var p PartialResult[[]string]
	p.AddError(nil)
	if p.HasErrors() {
		t.Fatal("HasErrors() = true after adding nil")
	}

	p.AddError(fmt.Errorf("trending failed"))
	if got := p.ErrorSummary(); got != "trending failed" {
		t.Errorf("ErrorSummary() = %q", got)
	}

	p.AddError(fmt.Errorf("popular failed"))
	if got := p.ErrorSummary(); !strings.HasPrefix(got, "2 errors occurred:") {
		t.Errorf("ErrorSummary() = %q", got)
	}
}
