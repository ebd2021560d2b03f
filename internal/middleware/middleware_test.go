package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", EnsurePlayerID(), func(c *fiber.Ctx) error {
		return c.SendString(PlayerID(c))
	})
	app.Get("/ws/game/:gameId", EnsurePlayerID(), WebSocketUpgrade(func(id string) bool { return id == "known" }),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestEnsurePlayerID(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "header", target: "/whoami", header: "p1", wantStatus: 200, wantBody: "p1"},
		{name: "query", target: "/whoami?playerId=p2", wantStatus: 200, wantBody: "p2"},
		{name: "header wins", target: "/whoami?playerId=p2", header: "p1", wantStatus: 200, wantBody: "p1"},
		{name: "missing", target: "/whoami", wantStatus: fiber.StatusUnauthorized},
		{name: "too long", target: "/whoami", header: strings.Repeat("x", 65), wantStatus: fiber.StatusBadRequest},
	}
	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Player-ID", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", body, tt.wantBody)
				}
			}
		})
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		upgrade    bool
		wantStatus int
	}{
		{name: "plain request", target: "/ws/game/known?playerId=p1", wantStatus: fiber.StatusUpgradeRequired},
		{name: "unknown game", target: "/ws/game/nope?playerId=p1", upgrade: true, wantStatus: fiber.StatusNotFound},
		{name: "accepted", target: "/ws/game/known?playerId=p1", upgrade: true, wantStatus: fiber.StatusOK},
	}
	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
