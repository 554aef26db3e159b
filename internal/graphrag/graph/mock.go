package graph

import (
	"context"
	"sync"
	"time"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Args      []any
	Timestamp time.Time
}

// QueryHandler computes a response for a Query call on the mock.
type QueryHandler func(cypher string, params map[string]any) (QueryResult, error)

// MockGraphClient is an in-memory GraphClient for tests. Query responses come
// from a handler when one is set, otherwise from a FIFO of scripted results.
type MockGraphClient struct {
	mu sync.RWMutex

	connected    bool
	closeCount   int
	healthStatus types.HealthStatus
	calls        []MockCall

	handler      QueryHandler
	queryResults []QueryResult
	queryError   error
	connectError error
	closeError   error
}

// NewMockGraphClient creates a new, disconnected mock graph client.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
		calls:        make([]MockCall, 0),
		queryResults: make([]QueryResult, 0),
	}
}

func (m *MockGraphClient) record(method string, args ...any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Args:      args,
		Timestamp: time.Now(),
	})
}

// Connect records the call and simulates connection.
func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect")
	if m.connectError != nil {
		return m.connectError
	}

	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close")
	m.closeCount++
	if m.closeError != nil {
		return m.closeError
	}

	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Health")
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return m.healthStatus
}

// Query records the call and returns the next configured response.
func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Query", cypher, params)

	if !m.connected {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if err := ctx.Err(); err != nil {
		return QueryResult{}, types.WrapError(ErrCodeGraphQueryTimeout, "context done", err)
	}
	if m.queryError != nil {
		return QueryResult{}, m.queryError
	}
	if m.handler != nil {
		return m.handler(cypher, params)
	}
	if len(m.queryResults) > 0 {
		result := m.queryResults[0]
		m.queryResults = m.queryResults[1:]
		return result, nil
	}

	return QueryResult{Records: []map[string]any{}}, nil
}

// SetQueryHandler installs a function that answers every Query call.
func (m *MockGraphClient) SetQueryHandler(handler QueryHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// AddQueryResult queues a result for the next Query call.
func (m *MockGraphClient) AddQueryResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryResults = append(m.queryResults, result)
}

// SetHealthStatus configures what Health() returns while connected.
func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// SetConnectError configures Connect() to fail.
func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCloseError configures Close() to fail.
func (m *MockGraphClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

// SetQueryError configures Query() to fail.
func (m *MockGraphClient) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
}

// GetCallsByMethod returns all calls to a specific method.
func (m *MockGraphClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// IsConnected reports whether Connect succeeded and Close has not run.
func (m *MockGraphClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// CloseCount returns how many times Close was called.
func (m *MockGraphClient) CloseCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closeCount
}
