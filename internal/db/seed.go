package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// builtinWidgetTemplates is the catalog every fresh store starts with.
func builtinWidgetTemplates() []model.WidgetTemplate {
	return []model.WidgetTemplate{
		{
			ID:          "clock",
			Name:        "Clock",
			Description: "Digital clock with optional date",
			Category:    "time",
			ConfigSchema: model.JSON{
				"format":   map[string]any{"type": "string", "enum": []any{"12h", "24h"}},
				"showDate": map[string]any{"type": "boolean"},
				"timezone": map[string]any{"type": "string"},
			},
			DefaultConfig: model.JSON{"format": "24h", "showDate": true, "timezone": "UTC"},
			HTMLURL:       "/widgets/clock/index.html",
		},
		{
			ID:          "weather",
			Name:        "Weather",
			Description: "Current conditions and forecast for a location",
			Category:    "information",
			ConfigSchema: model.JSON{
				"location": map[string]any{"type": "string"},
				"units":    map[string]any{"type": "string", "enum": []any{"metric", "imperial"}},
			},
			DefaultConfig: model.JSON{"location": "", "units": "metric"},
			HTMLURL:       "/widgets/weather/index.html",
		},
		{
			ID:          "rss-ticker",
			Name:        "RSS Ticker",
			Description: "Scrolling headlines from an RSS feed",
			Category:    "information",
			ConfigSchema: model.JSON{
				"feedUrl": map[string]any{"type": "string"},
				"speed":   map[string]any{"type": "number"},
			},
			DefaultConfig: model.JSON{"feedUrl": "", "speed": float64(50)},
			HTMLURL:       "/widgets/rss-ticker/index.html",
		},
		{
			ID:          "text",
			Name:        "Text",
			Description: "Static formatted text",
			Category:    "content",
			ConfigSchema: model.JSON{
				"text":     map[string]any{"type": "string"},
				"fontSize": map[string]any{"type": "number"},
				"color":    map[string]any{"type": "string"},
			},
			DefaultConfig: model.JSON{"text": "", "fontSize": float64(48), "color": "#ffffff"},
			HTMLURL:       "/widgets/text/index.html",
		},
		{
			ID:          "web-page",
			Name:        "Web Page",
			Description: "Embedded web page with periodic refresh",
			Category:    "content",
			ConfigSchema: model.JSON{
				"url":             map[string]any{"type": "string"},
				"refreshInterval": map[string]any{"type": "number"},
			},
			DefaultConfig: model.JSON{"url": "", "refreshInterval": float64(300)},
			HTMLURL:       "/widgets/web-page/index.html",
		},
	}
}

// seedWidgetTemplates installs the built-in catalog when the store has none.
func seedWidgetTemplates(ctx context.Context, store Store) error {
	existing, err := store.GetWidgetTemplates(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, t := range builtinWidgetTemplates() {
		if _, err := store.CreateWidgetTemplate(ctx, t); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(builtinWidgetTemplates())).Msg("seeded widget templates")
	return nil
}
