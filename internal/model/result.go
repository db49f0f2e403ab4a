package model

import "context"

// Result is the outcome of comparing two opportunity descriptions.
type Result struct {
	Similarity    float64 // expected 0-100, passed through unclamped
	Analysis      string  // point-by-point comparison
	Justification string  // short reason for the score
}

// Fallback builds the degenerate result reported when a comparison fails:
// zero similarity, no analysis and the error text as justification.
func Fallback(err error) Result {
	return Result{
		Similarity:    0,
		Analysis:      "",
		Justification: "Error: " + err.Error(),
	}
}

// InRange reports whether the similarity lies in the documented 0-100 range.
func (r Result) InRange() bool {
	return r.Similarity >= 0 && r.Similarity <= 100
}

// Comparator compares two opportunity descriptions.
// A non-nil error is always a *CompareError.
type Comparator interface {
	Compare(ctx context.Context, description1, description2 string) (Result, error)
}
