package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0.0.0 Safari/537.36"

type Options struct {
	Headless    bool
	Timeout     time.Duration
	UserAgent   string
	CookiesFile string
	Install     bool
}

// Browser is a single headless Chromium tab. Navigate is not safe for
// concurrent use; the pipeline drives it sequentially.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	timeout time.Duration
	mu      sync.Mutex
}

func New(opts Options) (*Browser, error) {

	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("%w: install playwright: %w", ErrSessionUnavailable, err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: start playwright: %w", ErrSessionUnavailable, err)
	}

	b := &Browser{pw: pw, timeout: opts.Timeout}
	if b.timeout <= 0 {
		b.timeout = 30 * time.Second
	}

	b.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: launch chromium: %w", ErrSessionUnavailable, err)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	b.context, err = b.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Locale:    playwright.String("en-US"),
	})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%w: new context: %w", ErrSessionUnavailable, err)
	}

	if opts.CookiesFile != "" {
		cookies, err := LoadCookies(opts.CookiesFile)
		if err != nil {
			log.Warnf("failed to load cookies from %s: %v", opts.CookiesFile, err)
		} else if err = b.context.AddCookies(cookies); err != nil {
			log.Warnf("failed to add cookies: %v", err)
		} else {
			log.Infof("loaded %d cookies", len(cookies))
		}
	}

	b.page, err = b.context.NewPage()
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%w: new page: %w", ErrSessionUnavailable, err)
	}

	return b, nil
}

// Navigate loads url and returns the rendered document.
func (b *Browser) Navigate(ctx context.Context, url string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.page == nil || b.page.IsClosed() {
		return "", ErrSessionUnavailable
	}

	resp, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(b.timeout.Milliseconds())),
	})
	if err != nil {
		return "", classifyError(err)
	}
	if resp != nil {
		if err = classifyStatus(resp.Status()); err != nil {
			return "", err
		}
	}

	content, err := b.page.Content()
	if err != nil {
		return "", classifyError(err)
	}
	return content, nil
}

func (b *Browser) Close() error {
	var errs []error
	if b.context != nil {
		if err := b.context.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
