package llmstxt_test

import (
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := llmstxt.Errorf(llmstxt.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", llmstxt.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, llmstxt.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, llmstxt.ErrorMessage(nil))
}
