package retriever

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one enriched vector hit.
type Record struct {
	Title           string   `json:"title"`
	Plot            string   `json:"plot"`
	SimilarityScore float64  `json:"similarity_score"`
	Genres          []string `json:"genres"`
	Actors          []string `json:"actors"`
	Directors       []string `json:"directors"`
	// UserRating is the mean RATED.rating, nil when the movie has no ratings.
	UserRating *float64 `json:"user_rating"`
}

// String renders the record on one line for context listings.
func (r Record) String() string {
	rating := "unrated"
	if r.UserRating != nil {
		rating = fmt.Sprintf("%.2f", *r.UserRating)
	}
	return fmt.Sprintf("%s (rating: %s, score: %.4f) genres=[%s] actors=[%s] directors=[%s]",
		r.Title, rating, r.SimilarityScore,
		strings.Join(r.Genres, ", "),
		strings.Join(r.Actors, ", "),
		strings.Join(r.Directors, ", "))
}

// decodeRecord converts one result row. Title and similarityScore are
// required; list columns default to empty and userRating to nil.
func decodeRecord(row map[string]any) (Record, error) {
	title, ok := row["title"].(string)
	if !ok {
		return Record{}, fmt.Errorf("column title: expected string, got %T", row["title"])
	}

	score, ok := toFloat(row["similarityScore"])
	if !ok {
		return Record{}, fmt.Errorf("column similarityScore: expected number, got %T", row["similarityScore"])
	}

	plot, _ := row["plot"].(string)

	rec := Record{
		Title:           title,
		Plot:            plot,
		SimilarityScore: score,
	}

	var err error
	if rec.Genres, err = toStrings(row["genres"]); err != nil {
		return Record{}, fmt.Errorf("column genres: %w", err)
	}
	if rec.Actors, err = toStrings(row["actors"]); err != nil {
		return Record{}, fmt.Errorf("column actors: %w", err)
	}
	if rec.Directors, err = toStrings(row["directors"]); err != nil {
		return Record{}, fmt.Errorf("column directors: %w", err)
	}

	if raw, present := row["userRating"]; present && raw != nil {
		rating, ok := toFloat(raw)
		if !ok {
			return Record{}, fmt.Errorf("column userRating: expected number, got %T", raw)
		}
		rec.UserRating = &rating
	}

	return rec, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func toStrings(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected list of strings, found %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list, got %T", v)
	}
}

// sortByRating orders records by UserRating descending. Unrated records go
// last; equal ratings keep descending similarity.
func sortByRating(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case a.UserRating == nil && b.UserRating == nil:
			return a.SimilarityScore > b.SimilarityScore
		case a.UserRating == nil:
			return false
		case b.UserRating == nil:
			return true
		case *a.UserRating != *b.UserRating:
			return *a.UserRating > *b.UserRating
		default:
			return a.SimilarityScore > b.SimilarityScore
		}
	})
}
