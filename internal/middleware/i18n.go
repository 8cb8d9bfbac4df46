// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/web-prodavnica/backend/internal/models"
)

// I18nMiddleware resolves the request locale from ?lang= or Accept-Language.
// Anything that is not English is served in Serbian.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader("Accept-Language")
		}

		c.Set("lang", parseLocale(lang, defaultLang))
		c.Next()
	}
}

func parseLocale(header, defaultLang string) string {
	if header == "" {
		return defaultLang
	}

	// Handle cases like "en-US,en;q=0.9,sr;q=0.8"
	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	first = strings.ToLower(strings.ReplaceAll(first, "_", "-"))
	switch {
	case first == "en" || strings.HasPrefix(first, "en-"):
		return models.LocaleEnglish
	case first == "sr" || strings.HasPrefix(first, "sr-"),
		first == "bs", first == "hr", first == "me", first == "cnr":
		return models.LocaleSerbian
	default:
		return defaultLang
	}
}
