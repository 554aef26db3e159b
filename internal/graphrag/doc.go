// Package graphrag answers natural-language questions about the movie graph
// by grounding an LLM in records retrieved from Neo4j.
//
// # Architecture
//
//	┌──────────────────────────────────────────────┐
//	│                  GraphRAG                    │
//	│   (validate → retrieve → prompt → generate)  │
//	└──────────────────────────────────────────────┘
//	          │                          │
//	          ▼                          ▼
//	┌──────────────────────┐   ┌──────────────────────┐
//	│ retriever.Retriever  │   │   llm.LLMProvider    │
//	│ (vector + Cypher)    │   │   (answer text)      │
//	└──────────────────────┘   └──────────────────────┘
//	     │            │
//	     ▼            ▼
//	┌──────────┐ ┌──────────────────┐
//	│ Embedder │ │ graph.GraphClient│
//	└──────────┘ └──────────────────┘
//
// All collaborators are constructor arguments. A GraphRAG holds no mutable
// state after construction, but it is meant to serve one logical session:
// callers sharing one across goroutines must coordinate themselves.
//
// # Usage
//
//	rag, err := graphrag.New(ret, provider, graphrag.Options{Model: "gpt-4o"})
//	if err != nil {
//	    return err
//	}
//	answer, err := rag.Search(ctx, graphrag.SearchRequest{
//	    Query:          "Find the highest rated action movie about travelling to other planets",
//	    TopK:           5,
//	    IncludeContext: true,
//	})
package graphrag
