package browser

import (
	"encoding/json"
	"os"

	"github.com/playwright-community/playwright-go"
)

// cookie mirrors the JSON export format of common browser cookie extensions.
type cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cookies []cookie
	if err = json.Unmarshal(data, &cookies); err != nil {
		return nil, err
	}

	result := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		result = append(result, c.toPlaywright())
	}
	return result, nil
}

func (c cookie) toPlaywright() playwright.OptionalCookie {
	path := c.Path
	if path == "" {
		path = "/"
	}
	pwCookie := playwright.OptionalCookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   playwright.String(c.Domain),
		Path:     playwright.String(path),
		HttpOnly: playwright.Bool(c.HTTPOnly),
		Secure:   playwright.Bool(c.Secure),
	}

	if c.Expires > 0 {
		pwCookie.Expires = playwright.Float(c.Expires)
	}

	switch c.SameSite {
	case "Lax", "lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict", "strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None", "no_restriction":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}

	return pwCookie
}
