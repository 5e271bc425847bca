// Package identity wraps the platform's identity service login call,
// translating transport status codes into domain errors.
package identity

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// ClientConfig holds configuration for the identity client
type ClientConfig struct {
	Host            string
	Secure          bool
	ShutdownTimeout time.Duration
}

// DefaultClientConfig returns a client configuration with sensible defaults
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Host:            "api.speechly.com:443",
		Secure:          true,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Client performs login calls against the identity service. It owns the
// underlying channel; Close releases it exactly once.
type Client struct {
	conn            *grpc.ClientConn
	service         Service
	logger          *logrus.Logger
	shutdownTimeout time.Duration

	inflight  sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// NewClient dials the identity service described by cfg and returns a
// client bound to the resulting channel.
func NewClient(cfg *ClientConfig, logger *logrus.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultClientConfig().ShutdownTimeout
	}

	var transport credentials.TransportCredentials
	if cfg.Secure {
		transport = credentials.NewTLS(&tls.Config{})
	} else {
		transport = insecure.NewCredentials()
	}

	conn, err := grpc.NewClient(
		cfg.Host,
		grpc.WithTransportCredentials(transport),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity channel: %w", err)
	}

	return &Client{
		conn:            conn,
		service:         NewService(conn),
		logger:          logger,
		shutdownTimeout: timeout,
	}, nil
}

// NewClientWithService creates a client over an externally supplied service
// stub. The client owns no channel; Close only drains in-flight calls.
func NewClientWithService(service Service, logger *logrus.Logger, shutdownTimeout time.Duration) (*Client, error) {
	if service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultClientConfig().ShutdownTimeout
	}

	return &Client{
		service:         service,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Login performs the login call. A NotFound status becomes
// ErrInvalidApplication, PermissionDenied becomes ErrAuthenticationFailure,
// and every other failure is returned to the caller unchanged.
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	c.inflight.Add(1)
	defer c.inflight.Done()

	resp, err := c.service.Login(ctx, req)
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return nil, fmt.Errorf("%w: %s", ErrInvalidApplication, status.Convert(err).Message())
		case codes.PermissionDenied:
			return nil, fmt.Errorf("%w: %s", ErrAuthenticationFailure, status.Convert(err).Message())
		default:
			return nil, err
		}
	}

	return resp, nil
}

// Close waits up to the configured shutdown timeout for in-flight logins to
// finish, then closes the channel regardless. Repeat calls are no-ops that
// return the first result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		done := make(chan struct{})
		go func() {
			c.inflight.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(c.shutdownTimeout):
			c.logger.WithField("timeout", c.shutdownTimeout).
				Warn("Shutdown timeout elapsed with calls still in flight, closing channel")
		}

		if c.conn != nil {
			c.closeErr = c.conn.Close()
		}
	})

	return c.closeErr
}
