package main

import (
	"fmt"

	chhttp "github.com/fwojciec/chapterly/http"
)

// Run executes the serve command. It blocks until the command context is
// cancelled, then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := chhttp.NewServer()
	s.Addr = c.Addr
	s.RequestTimeout = c.RequestTimeout
	s.AllowedOrigins = c.CORSOrigins
	s.Reader = deps.Reader
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to start server on %s: %w", c.Addr, err)
	}
	deps.Logger.Info("listening", "url", s.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return s.Close()
}
