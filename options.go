package ftptool

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/bloggse/ftptool/internal/rate"
)

type tlsMode int

const (
	tlsModeNone tlsMode = iota
	tlsModeExplicit
	tlsModeImplicit
)

// dialConfig collects the settings Connect needs before the control
// connection exists.
type dialConfig struct {
	port      int
	timeout   time.Duration
	tlsMode   tlsMode
	tlsConfig *tls.Config
}

// Option is a functional option for configuring a session.
type Option func(*Session) error

// WithPort sets the control-connection port used by Connect.
// The default is 21 (990 is conventional for implicit TLS).
func WithPort(port int) Option {
	return func(s *Session) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("ftptool: invalid port %d", port)
		}
		s.dial.port = port
		return nil
	}
}

// WithTimeout sets the timeout for establishing the control connection.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		s.dial.timeout = timeout
		return nil
	}
}

// WithExplicitTLS enables explicit TLS (AUTH TLS): the client connects in
// the clear and upgrades before authenticating. This is the recommended
// mode for FTPS. The tls.Config should carry the ServerName used for
// certificate validation.
func WithExplicitTLS(config *tls.Config) Option {
	return func(s *Session) error {
		if s.dial.tlsMode == tlsModeImplicit {
			return fmt.Errorf("ftptool: explicit TLS cannot be combined with implicit TLS")
		}
		if config == nil {
			config = &tls.Config{}
		}
		s.dial.tlsMode = tlsModeExplicit
		s.dial.tlsConfig = config
		return nil
	}
}

// WithImplicitTLS enables implicit TLS: the client connects with TLS from
// the first byte, typically on port 990. This is a legacy mode but still
// used by some servers.
func WithImplicitTLS(config *tls.Config) Option {
	return func(s *Session) error {
		if s.dial.tlsMode == tlsModeExplicit {
			return fmt.Errorf("ftptool: implicit TLS cannot be combined with explicit TLS")
		}
		if config == nil {
			config = &tls.Config{}
		}
		s.dial.tlsMode = tlsModeImplicit
		s.dial.tlsConfig = config
		return nil
	}
}

// WithLogger sets the logger used for debug records. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			return fmt.Errorf("ftptool: nil logger")
		}
		s.logger = logger
		return nil
	}
}

// WithLocalFS sets the filesystem used for the local side of file
// conveniences and mirroring. The default is the OS filesystem; tests
// typically pass memfs.New().
func WithLocalFS(fs billy.Filesystem) Option {
	return func(s *Session) error {
		if fs == nil {
			return fmt.Errorf("ftptool: nil filesystem")
		}
		s.fs = fs
		return nil
	}
}

// WithExtensionMap installs a filename extension rewrite applied when the
// session constructs file proxies. Keys and values are extensions without
// the dot; an empty value drops the extension together with its dot.
//
// Example:
//
//	// Proxies for "*.php" files address the remote "*.html" instead.
//	s, err := ftptool.Connect(host, user, pass,
//	    ftptool.WithExtensionMap(map[string]string{"php": "html"}),
//	)
func WithExtensionMap(m map[string]string) Option {
	return func(s *Session) error {
		s.extensions = m
		return nil
	}
}

// WithRateLimit throttles transfers to the given number of bytes per
// second. The limit is shared by both directions of the session. A value
// of zero or less disables throttling.
func WithRateLimit(bytesPerSecond int64) Option {
	return func(s *Session) error {
		s.limiter = rate.New(bytesPerSecond)
		return nil
	}
}
