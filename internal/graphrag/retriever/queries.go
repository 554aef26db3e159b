package retriever

// DefaultIndexName is the vector index over Movie.plotEmbedding.
const DefaultIndexName = "moviePlots"

// vectorSearchStage binds node and score for the enrichment query that follows it.
const vectorSearchStage = `CALL db.index.vector.queryNodes($index_name, $top_k, $query_vector)
YIELD node, score
`

// MovieEnrichmentQuery expands each vector hit with its genres, cast,
// directors and mean user rating. Movies nobody rated are kept with a null
// userRating.
const MovieEnrichmentQuery = `OPTIONAL MATCH (node)<-[r:RATED]-()
WITH node, score, avg(r.rating) AS userRating
RETURN
  node.title AS title,
  node.plot AS plot,
  score AS similarityScore,
  collect { MATCH (node)-[:IN_GENRE]->(g) RETURN g.name } AS genres,
  collect { MATCH (node)<-[:ACTED_IN]-(a) RETURN a.name } AS actors,
  collect { MATCH (node)<-[:DIRECTED]-(d) RETURN d.name } AS directors,
  userRating
ORDER BY userRating DESC
`

// buildStatement joins the vector stage with an enrichment query.
func buildStatement(enrichment string) string {
	return vectorSearchStage + enrichment
}
