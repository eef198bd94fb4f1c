package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	err    error
	calls  int
	closed bool
}

func (f *fakePage) Navigate(_ context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "<html>" + url + "</html>", nil
}

func (f *fakePage) Close() error {
	f.closed = true
	return nil
}

type fakeLauncher struct {
	pages    []*fakePage
	failures []error
	launches int
}

func (f *fakeLauncher) launch(_ Options) (navigator, error) {
	f.launches++
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		if err != nil {
			return nil, err
		}
	}
	page := &fakePage{}
	f.pages = append(f.pages, page)
	return page, nil
}

func Test_Session_Navigate_ShouldLaunchOnceOnFirstUse(t *testing.T) {
	launcher := &fakeLauncher{}
	session := newSession(Options{}, launcher.launch)
	assert.Equal(t, 0, launcher.launches)

	_, err := session.Navigate(context.Background(), "a")
	require.NoError(t, err)
	page, err := session.Navigate(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, "<html>b</html>", page)
	assert.Equal(t, 1, launcher.launches)
	assert.Equal(t, 2, launcher.pages[0].calls)
}

func Test_Session_Navigate_WhenSessionLost_ShouldRelaunchOnNextCall(t *testing.T) {
	launcher := &fakeLauncher{}
	session := newSession(Options{}, launcher.launch)

	_, err := session.Navigate(context.Background(), "a")
	require.NoError(t, err)
	launcher.pages[0].err = fmt.Errorf("%w: target closed", ErrSessionUnavailable)

	_, err = session.Navigate(context.Background(), "b")
	assert.ErrorIs(t, err, ErrSessionUnavailable)
	assert.True(t, launcher.pages[0].closed)

	page, err := session.Navigate(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "<html>c</html>", page)
	assert.Equal(t, 2, launcher.launches)
}

func Test_Session_Navigate_WhenLaunchFails_ShouldReturnErrorAndRetryLater(t *testing.T) {
	launchErr := fmt.Errorf("%w: launch chromium: executable not found", ErrSessionUnavailable)
	launcher := &fakeLauncher{failures: []error{launchErr}}
	session := newSession(Options{}, launcher.launch)

	_, err := session.Navigate(context.Background(), "a")
	assert.ErrorIs(t, err, ErrSessionUnavailable)

	_, err = session.Navigate(context.Background(), "a")
	assert.NoError(t, err)
	assert.Equal(t, 2, launcher.launches)
}

func Test_Session_Navigate_WhenPageFailsTransiently_ShouldKeepSession(t *testing.T) {
	launcher := &fakeLauncher{}
	session := newSession(Options{}, launcher.launch)

	_, err := session.Navigate(context.Background(), "a")
	require.NoError(t, err)
	launcher.pages[0].err = fmt.Errorf("%w: status 503", ErrTimeout)

	_, err = session.Navigate(context.Background(), "b")
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.False(t, launcher.pages[0].closed)
	assert.Equal(t, 1, launcher.launches)
}

func Test_Session_Navigate_WhenCanceled_ShouldNotLaunch(t *testing.T) {
	launcher := &fakeLauncher{}
	session := newSession(Options{}, launcher.launch)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.Navigate(ctx, "a")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, launcher.launches)
}

func Test_Session_Close_WithoutLaunch_ShouldBeNoop(t *testing.T) {
	session := newSession(Options{}, (&fakeLauncher{}).launch)
	assert.NoError(t, session.Close())
}
