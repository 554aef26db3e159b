// Package graph provides the graph database connection used by the retriever.
//
// GraphClient is the narrow surface retrieval needs: connect, run a read-only
// parameterised Cypher query, report health, and close. Neo4jClient implements
// it on top of the official Neo4j Go driver; MockGraphClient serves tests.
//
// # Usage
//
//	config := graph.DefaultConfig()
//	config.URI = os.Getenv("NEO4J_URI")
//	config.Username = os.Getenv("NEO4J_USERNAME")
//	config.Password = os.Getenv("NEO4J_PASSWORD")
//
//	client, err := graph.NewNeo4jClient(config)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	result, err := client.Query(ctx,
//	    "MATCH (m:Movie {title: $title}) RETURN m.plot AS plot",
//	    map[string]any{"title": "Interstellar"},
//	)
//
// # Connection Management
//
// Connect verifies connectivity and retries transient failures with
// exponential backoff, up to ConnectAttempts tries. Rejected credentials are
// reported at once as ErrCodeGraphAuthFailed. Close is idempotent; a Query
// after Close fails with ErrCodeGraphConnectionClosed.
//
// # Error Handling
//
// All errors are *types.Error values carrying one of the ErrCodeGraph* codes.
// Each query runs under GraphClientConfig.QueryTimeout and reports
// ErrCodeGraphQueryTimeout when it expires.
package graph
