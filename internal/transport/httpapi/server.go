// Package httpapi exposes the notification endpoint: other systems push a
// message to a registered Telegram user by username.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sandevgo/dobby/internal/config"
	"github.com/sandevgo/dobby/internal/core"
	"github.com/sandevgo/dobby/pkg/log"
)

type Server struct {
	echo  *echo.Echo
	cfg   *config.HTTPConfig
	users core.UserRegistry
	// notify delivers into the user's private chat; backed by the bot.
	notify core.Notifier
}

type notifyRequest struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

type userResponse struct {
	Username      string `json:"username"`
	PrivateChatID int64  `json:"private_chat_id"`
}

func NewServer(cfg *config.HTTPConfig, users core.UserRegistry, notify core.Notifier) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{echo: e, cfg: cfg, users: users, notify: notify}

	e.POST("/notify/", s.handleNotify)
	e.GET("/users/", s.handleListUsers)

	return s
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr()).Msg("starting http api")
	if err := s.echo.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http api failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) handleNotify(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Target == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target and message are required")
	}

	ctx := c.Request().Context()

	user, err := s.users.GetUserByUsername(ctx, req.Target)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"description": fmt.Sprintf("No user '%s' found in internal database", req.Target),
		})
	}

	if err := s.notify.Notify(ctx, user.PrivateChatID, req.Message); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.users.ListUsers(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{Username: u.Username, PrivateChatID: u.PrivateChatID})
	}
	return c.JSON(http.StatusOK, out)
}
