package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps the go-redis connection the portal uses for rate limiting.
// It exists so the rest of the tree depends on this package, not on the
// driver directly.
type Client struct {
	conn *goredis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{
		conn: goredis.NewClient(&goredis.Options{
			Addr:        addr,
			Password:    password,
			DB:          db,
			DialTimeout: 2 * time.Second,
		}),
	}
}

// Ping checks connectivity with a short deadline. Bootstrap calls this once
// and disables rate limiting when it fails.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.conn.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.conn.Close()
}
