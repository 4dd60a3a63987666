package xmltree

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for tree building and walking.
var (
	// ErrUnbalancedTags indicates a close tag that does not match the
	// currently open element.
	ErrUnbalancedTags = errors.New("unbalanced tags")

	// ErrUnexpectedEOF indicates the input ended with elements still open.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrMaxDepthExceeded indicates the tree is nested deeper than allowed.
	ErrMaxDepthExceeded = errors.New("maximum depth exceeded")

	// ErrNoRootElement indicates the input holds no element at all.
	ErrNoRootElement = errors.New("no root element")

	// ErrMultipleRoots indicates a second top-level element.
	ErrMultipleRoots = errors.New("multiple root elements")
)

// UnbalancedTagsError reports a close tag that does not match the open
// element. Expected is empty when no element was open.
type UnbalancedTagsError struct {
	Expected string
	Found    string
	Offset   int
}

func (e *UnbalancedTagsError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("unbalanced tags: unexpected </%s> at offset %d", e.Found, e.Offset)
	}
	return fmt.Sprintf("unbalanced tags: expected </%s>, found </%s> at offset %d", e.Expected, e.Found, e.Offset)
}

// Is makes errors.Is(err, ErrUnbalancedTags) true.
func (e *UnbalancedTagsError) Is(target error) bool {
	return target == ErrUnbalancedTags
}

// UnexpectedEndOfInputError lists the elements left open, outermost first.
type UnexpectedEndOfInputError struct {
	Open []string
}

func (e *UnexpectedEndOfInputError) Error() string {
	return fmt.Sprintf("unexpected end of input: unclosed <%s>", strings.Join(e.Open, ">, <"))
}

// Is makes errors.Is(err, ErrUnexpectedEOF) true.
func (e *UnexpectedEndOfInputError) Is(target error) bool {
	return target == ErrUnexpectedEOF
}

// MaxDepthExceededError reports the first element found beyond the limit.
type MaxDepthExceededError struct {
	Limit int
	Name  string
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("maximum depth %d exceeded at <%s>", e.Limit, e.Name)
}

// Is makes errors.Is(err, ErrMaxDepthExceeded) true.
func (e *MaxDepthExceededError) Is(target error) bool {
	return target == ErrMaxDepthExceeded
}
