package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// State describes the storage connection lifecycle.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnected:
		return "reconnected"
	default:
		return "disconnected"
	}
}

// StateFunc observes connection state transitions. It is registered
// explicitly by the startup routine; retry back to connected is handled by
// the driver, the observer only reports it.
type StateFunc func(State)

// Config holds MongoDB connection details.
type Config struct {
	URL           string
	Database      string
	OnStateChange StateFunc
}

// Client wraps the MongoDB connection for the process lifetime. It is
// created once at startup, shared by all request handlers, and closed
// exactly once during shutdown.
type Client struct {
	client *mongo.Client
	db     *mongo.Database

	mu        sync.Mutex
	connected bool
	everUp    bool
	notify    StateFunc
}

// NewClient connects to MongoDB and verifies the connection with a ping.
// Heartbeat results from the driver are translated into state transitions
// on the registered observer.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.Database == "" {
		return nil, fmt.Errorf("MongoDB URL and database name must be configured")
	}

	c := &Client{notify: cfg.OnStateChange}
	if c.notify == nil {
		c.notify = func(State) {}
	}

	c.notify(StateConnecting)

	monitor := &event.ServerMonitor{
		ServerHeartbeatSucceeded: func(*event.ServerHeartbeatSucceededEvent) {
			c.heartbeatSucceeded()
		},
		ServerHeartbeatFailed: func(*event.ServerHeartbeatFailedEvent) {
			c.heartbeatFailed()
		},
	}

	opts := options.Client().ApplyURI(cfg.URL).SetServerMonitor(monitor)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	c.client = client
	c.db = client.Database(cfg.Database)
	return c, nil
}

// Database returns the configured database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

func (c *Client) heartbeatSucceeded() {
	c.mu.Lock()
	wasConnected := c.connected
	everUp := c.everUp
	c.connected = true
	c.everUp = true
	c.mu.Unlock()

	if !wasConnected {
		if everUp {
			c.notify(StateReconnected)
		} else {
			c.notify(StateConnected)
		}
	}
}

func (c *Client) heartbeatFailed() {
	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	c.mu.Unlock()

	if wasConnected {
		c.notify(StateDisconnected)
	}
}

// RedactURL hides credentials in a connection string so it can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
