package graph_test

import (
	"context"
	"fmt"

	"github.com/paulowiz/genai-fundamentals/internal/graphrag/graph"
)

func ExampleMockGraphClient() {
	ctx := context.Background()

	client := graph.NewMockGraphClient()
	client.AddQueryResult(graph.QueryResult{
		Records: []map[string]any{{"title": "Interstellar"}},
	})

	if err := client.Connect(ctx); err != nil {
		fmt.Println("connect:", err)
		return
	}
	defer client.Close(ctx)

	result, err := client.Query(ctx, "MATCH (m:Movie) RETURN m.title AS title", nil)
	if err != nil {
		fmt.Println("query:", err)
		return
	}

	fmt.Println(result.Records[0]["title"])
	// Output: Interstellar
}
