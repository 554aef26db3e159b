package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

const neo4jUnauthorized = "Neo.ClientError.Security.Unauthorized"

// driverFactory builds a driver; tests substitute it to avoid a live server.
type driverFactory func(target string, token neo4j.AuthToken, configure func(*neo4j.Config)) (neo4j.DriverWithContext, error)

func defaultDriverFactory(target string, token neo4j.AuthToken, configure func(*neo4j.Config)) (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(target, token, configure)
}

// Neo4jClient implements GraphClient for Neo4j graph databases.
type Neo4jClient struct {
	config GraphClientConfig

	mu     sync.RWMutex
	driver neo4j.DriverWithContext

	newDriver driverFactory
	retryBase time.Duration
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config:    config,
		newDriver: defaultDriverFactory,
		retryBase: 100 * time.Millisecond,
	}, nil
}

// Connect creates the driver and verifies connectivity, retrying transient
// failures with exponential backoff. Rejected credentials fail immediately.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver != nil {
		return nil
	}

	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")
	configure := func(cfg *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			cfg.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		cfg.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		cfg.SocketConnectTimeout = c.config.ConnectionTimeout
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryBase
	policy.MaxInterval = c.config.ConnectionTimeout
	policy.MaxElapsedTime = 0

	var driver neo4j.DriverWithContext
	attempts := 0
	operation := func() error {
		attempts++
		d, err := c.newDriver(c.config.URI, auth, configure)
		if err != nil {
			// A malformed URI never becomes valid.
			return backoff.Permanent(err)
		}
		if err := d.VerifyConnectivity(ctx); err != nil {
			_ = d.Close(ctx)
			if isAuthError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		driver = d
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.config.ConnectAttempts-1)), ctx))
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		case isAuthError(err):
			return types.WrapError(ErrCodeGraphAuthFailed,
				"credentials rejected by "+c.config.URI, err)
		default:
			return types.WrapError(ErrCodeGraphConnectionFailed,
				fmt.Sprintf("failed to connect to %s after %d attempts", c.config.URI, attempts), err)
		}
	}

	c.driver = driver
	return nil
}

// Close releases the driver. It is safe to call more than once.
func (c *Neo4jClient) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver == nil {
		return nil
	}

	driver := c.driver
	c.driver = nil
	if err := driver.Close(ctx); err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed,
			"failed to close driver", err)
	}
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	c.mu.RLock()
	driver := c.driver
	c.mu.RUnlock()

	if driver == nil {
		return types.Unhealthy("driver not connected")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to " + c.config.URI)
}

// Query executes a Cypher query in a managed read transaction.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	c.mu.RLock()
	driver := c.driver
	c.mu.RUnlock()

	if driver == nil {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed,
			"driver not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.QueryTimeout)
	defer cancel()

	startTime := time.Now()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jRecords(records), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return QueryResult{}, types.WrapError(ErrCodeGraphQueryTimeout,
				fmt.Sprintf("query exceeded %s", c.config.QueryTimeout), err)
		case neo4j.IsConnectivityError(err):
			return QueryResult{}, types.WrapError(ErrCodeGraphConnectionFailed,
				"lost connection during query", err)
		default:
			return QueryResult{}, types.WrapError(ErrCodeGraphQueryFailed,
				"query execution failed", err)
		}
	}

	queryResult := result.(QueryResult)
	queryResult.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// convertNeo4jRecords converts driver records to row maps.
func convertNeo4jRecords(records []*neo4j.Record) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
	}

	for _, record := range records {
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		result.Records = append(result.Records, row)
	}

	return result
}

func isAuthError(err error) bool {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		return neoErr.Code == neo4jUnauthorized
	}
	return false
}
