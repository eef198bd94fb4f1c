package browser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
)

func Test_LoadCookies_ShouldConvertExportFormat(t *testing.T) {
	cookies, err := LoadCookies("testdata/cookies.json")

	assert.NoError(t, err)
	assert.Len(t, cookies, 2)

	assert.Equal(t, "li_at", cookies[0].Name)
	assert.Equal(t, ".linkedin.com", *cookies[0].Domain)
	assert.Equal(t, 1790000000.0, *cookies[0].Expires)
	assert.True(t, *cookies[0].HttpOnly)
	assert.Equal(t, playwright.SameSiteAttributeNone, cookies[0].SameSite)

	assert.Equal(t, "/", *cookies[1].Path)
	assert.Nil(t, cookies[1].Expires)
	assert.Equal(t, playwright.SameSiteAttributeLax, cookies[1].SameSite)
}

func Test_LoadCookies_WhenFileMissing_ShouldFail(t *testing.T) {
	_, err := LoadCookies("testdata/missing.json")
	assert.Error(t, err)
}

func Test_ClassifyError(t *testing.T) {
	err := classifyError(fmt.Errorf("goto: %w", playwright.ErrTimeout))
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.True(t, IsTransient(err))

	err = classifyError(fmt.Errorf("goto: %w", playwright.ErrTargetClosed))
	assert.True(t, errors.Is(err, ErrSessionUnavailable))
	assert.False(t, IsTransient(err))
}

func Test_ClassifyStatus(t *testing.T) {
	assert.NoError(t, classifyStatus(200))
	assert.ErrorIs(t, classifyStatus(429), ErrRateLimited)
	assert.ErrorIs(t, classifyStatus(999), ErrRateLimited)
	assert.ErrorIs(t, classifyStatus(502), ErrTimeout)
	assert.ErrorIs(t, classifyStatus(404), ErrBadStatus)
	assert.False(t, IsTransient(classifyStatus(404)))
}
