package chapterly_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/chapterly"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := chapterly.Errorf(chapterly.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, chapterly.ENOTFOUND, chapterly.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", chapterly.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, chapterly.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, chapterly.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, chapterly.EINTERNAL, chapterly.ErrorCode(errors.New("boom")))
}

func TestErrorCode_WrappedApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("reading chapter: %w", chapterly.Errorf(chapterly.EEXTRACT, "no content"))

	assert.Equal(t, chapterly.EEXTRACT, chapterly.ErrorCode(err))
	assert.Equal(t, "no content", chapterly.ErrorMessage(err))
}

func TestWrapErrorf(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := chapterly.WrapErrorf(cause, chapterly.EFETCH, "all fetch strategies failed")

	assert.Equal(t, chapterly.EFETCH, chapterly.ErrorCode(err))
	assert.Equal(t, "all fetch strategies failed: connection refused", chapterly.ErrorMessage(err))
	assert.ErrorIs(t, err, cause)
}
