package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("wrapped: %w", newError(KindNotFound, "GetArticle", "Article not found", cause))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Article not found", MessageOf(err, "fallback"))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "GetArticle")

	assert.Equal(t, KindUpstream, KindOf(cause))
	assert.Equal(t, "fallback", MessageOf(cause, "fallback"))
	assert.Equal(t, "not_found", KindNotFound.String())
}
