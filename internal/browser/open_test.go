package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"
)

func TestOpenSupported(t *testing.T) {
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
	default:
		t.Skipf("Unsupported platform: %s", runtime.GOOS)
	}

	if _, _, err := Command(runtime.GOOS, "http://127.0.0.1:8000"); err != nil {
		t.Errorf("Command() error = %v", err)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{"darwin", "open", false},
		{"linux", "xdg-open", false},
		{"windows", "rundll32", false},
		{"plan9", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := Command(tt.goos, "http://x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if name != tt.want {
				t.Errorf("Command() = %q, want %q", name, tt.want)
			}
			if !tt.wantErr && args[len(args)-1] != "http://x" {
				t.Errorf("url should be the last argument, got %v", args)
			}
		})
	}
}

func TestWaitForServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := WaitForServer(ctx, srv.URL, 10*time.Millisecond); err != nil {
		t.Errorf("WaitForServer() error = %v", err)
	}
}

func TestWaitForServerTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := WaitForServer(ctx, url, 10*time.Millisecond); err == nil {
		t.Error("expected timeout")
	}
}
