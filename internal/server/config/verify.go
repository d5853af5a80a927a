// Package config defines the server configuration structure.
package config

import "errors"

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg.Server.TCP.Addr == "" {
		return errors.New("server.tcp.addr is required")
	}
	if cfg.Server.Admin.Enabled && cfg.Server.Admin.Addr == "" {
		return errors.New("server.admin.addr is required when the admin endpoint is enabled")
	}
	if cfg.Server.TCP.RateLimit < 0 {
		return errors.New("server.tcp.rate_limit must not be negative")
	}
	if cfg.Actor.MailboxDepth < 1 {
		return errors.New("actor.mailbox_depth must be at least 1")
	}
	if cfg.Actor.AskTimeout <= 0 {
		return errors.New("actor.ask_timeout must be positive")
	}
	if cfg.Actor.SessionTimeout <= 0 {
		return errors.New("actor.session_timeout must be positive")
	}
	return nil
}
