// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultTCPAddr   = "localhost:9999"
	DefaultAdminAddr = "127.0.0.1:9980"

	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 5 * time.Minute
	DefaultRateLimit    = 0

	DefaultMailboxDepth   = 64
	DefaultAskTimeout     = 2 * time.Second
	DefaultSessionTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			TCP: TCPConfig{
				Addr:         DefaultTCPAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
				IdleTimeout:  DefaultIdleTimeout,
				RateLimit:    DefaultRateLimit,
			},
			Admin: AdminConfig{
				Enabled: false,
				Addr:    DefaultAdminAddr,
			},
		},
		Actor: ActorSection{
			MailboxDepth:   DefaultMailboxDepth,
			AskTimeout:     DefaultAskTimeout,
			SessionTimeout: DefaultSessionTimeout,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
