// Package either provides a two-variant result type used to carry the outcome
// of an operation without panics: Left holds a failure, Right holds a success.
//
// Go methods cannot introduce type parameters, so the transforming
// combinators (Map, FlatMap, TryMap, Fold) are package functions.
package either

// Either holds exactly one of a Left value or a Right value.
// The zero value is a Left holding the zero value of L.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left wraps a failure value.
func Left[L, R any](value L) Either[L, R] {
	return Either[L, R]{left: value}
}

// Right wraps a success value.
func Right[L, R any](value R) Either[L, R] {
	return Either[L, R]{right: value, isRight: true}
}

// IsLeft reports whether e holds a failure.
func (e Either[L, R]) IsLeft() bool {
	return !e.isRight
}

// IsRight reports whether e holds a success.
func (e Either[L, R]) IsRight() bool {
	return e.isRight
}

// LeftValue returns the failure value and true when e is a Left.
func (e Either[L, R]) LeftValue() (L, bool) {
	return e.left, !e.isRight
}

// RightValue returns the success value and true when e is a Right.
func (e Either[L, R]) RightValue() (R, bool) {
	return e.right, e.isRight
}

// Map applies f to the Right value. A Left is passed through and f is not called.
func Map[L, R, B any](e Either[L, R], f func(R) B) Either[L, B] {
	if !e.isRight {
		return Left[L, B](e.left)
	}
	return Right[L](f(e.right))
}

// FlatMap applies f to the Right value and returns its result directly.
// A Left is passed through and f is not called.
func FlatMap[L, R, B any](e Either[L, R], f func(R) Either[L, B]) Either[L, B] {
	if !e.isRight {
		return Left[L, B](e.left)
	}
	return f(e.right)
}

// TryMap is Map for transforms that can fail: an error returned by f is
// converted into a Left through wrap.
func TryMap[L, R, B any](e Either[L, R], f func(R) (B, error), wrap func(error) L) Either[L, B] {
	if !e.isRight {
		return Left[L, B](e.left)
	}
	out, err := f(e.right)
	if err != nil {
		return Left[L, B](wrap(err))
	}
	return Right[L](out)
}

// Fold eliminates e by calling exactly one of onLeft or onRight.
func Fold[L, R, B any](e Either[L, R], onLeft func(L) B, onRight func(R) B) B {
	if !e.isRight {
		return onLeft(e.left)
	}
	return onRight(e.right)
}
