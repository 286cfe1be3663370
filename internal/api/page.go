package api

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/example/ec-showcase/internal/query"
)

// compactBreakpoint is the widest viewport that gets the compact grid
const compactBreakpoint = 768

// GetHomepagePage renders the homepage as server-side HTML at the shared tick
func (h *Handlers) GetHomepagePage(w http.ResponseWriter, r *http.Request) {
	view := h.queryHandler.Homepage(r.Context(), nil, h.clock.Tick(), h.clock.Interval())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(BuildHomepageHTML(view)))
}

// BuildHomepageHTML builds the hero and one grid per device variant
func BuildHomepageHTML(view query.HomepageView) string {
	var grids strings.Builder
	for _, v := range view.Showcase.Variants {
		var cards strings.Builder
		for _, c := range v.Cards {
			cards.WriteString(buildCardHTML(c))
		}
		grids.WriteString(fmt.Sprintf(
			`<div class="showcase-grid showcase-%s" data-variant="%s" style="grid-template-columns: repeat(%d, 1fr); gap: 16px;">
			%s
		</div>`,
			v.Variant,
			v.Variant,
			v.Columns,
			cards.String(),
		))
	}

	hero := view.Hero
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
	%s
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; color: #111;">
	<section id="%s" style="position: relative; width: 100%%; animation: fade-in %dms ease-out;">
		<picture>
			<source media="(max-width: 768px)" srcset="%s">
			<img src="%s" alt="%s" width="%d" height="%d" sizes="%s" fetchpriority="high" style="width: 100%%; height: auto;">
		</picture>
	</section>

	<section id="%s" data-tick="%d" data-interval-ms="%d" style="max-width: 1280px; margin: 0 auto; padding: 48px 16px;">
		%s
	</section>
</body>
</html>`,
		html.EscapeString(hero.Alt),
		buildStyleHTML(view.Showcase),
		html.EscapeString(hero.ID),
		hero.FadeInMs,
		html.EscapeString(hero.Mobile.Src),
		html.EscapeString(hero.Desktop.Src),
		html.EscapeString(hero.Alt),
		hero.Desktop.Width,
		hero.Desktop.Height,
		html.EscapeString(hero.Desktop.Sizes),
		html.EscapeString(view.Showcase.SectionID),
		view.Showcase.Tick,
		view.Showcase.RotationIntervalMs,
		grids.String(),
	)
}

// buildStyleHTML shows one grid per viewport and defines the entrance animations
func buildStyleHTML(s query.ShowcaseView) string {
	return fmt.Sprintf(`<style>
		@keyframes fade-in { from { opacity: 0; } to { opacity: 1; } }
		@keyframes card-in { from { opacity: 0; transform: translateY(20px); } to { opacity: 1; transform: none; } }
		.showcase-grid { display: grid; }
		.card { opacity: 0; animation: card-in %dms ease-out forwards; }
		.card img { transition: opacity %dms; }
		@media (max-width: %dpx) { .showcase-wide { display: none; } }
		@media (min-width: %dpx) { .showcase-compact { display: none; } }
	</style>`,
		s.EntranceMs,
		s.CrossfadeMs,
		compactBreakpoint,
		compactBreakpoint+1,
	)
}

func buildCardHTML(c query.CardView) string {
	var panels strings.Builder
	if c.Placeholder {
		panels.WriteString(`<div class="placeholder" style="aspect-ratio: 3 / 4; background: #f3f3f3;"></div>`)
	}
	for _, p := range c.Panels {
		panels.WriteString(fmt.Sprintf(
			`<img src="%s" alt="%s" sizes="%s" loading="lazy" style="flex: 1; min-width: 0; aspect-ratio: 3 / 4; object-fit: cover;">`,
			html.EscapeString(p.Src),
			html.EscapeString(p.Alt),
			html.EscapeString(c.Sizes),
		))
	}

	return fmt.Sprintf(
		`<a href="%s" class="card card-%s" data-slot="%s" style="grid-column: span %d; display: block; text-decoration: none; color: inherit; animation-delay: %dms;">
				<div style="display: flex; gap: 4px;">%s</div>
				<h3 style="margin: 12px 0 0; font-size: 18px;">%s</h3>
			</a>`,
		html.EscapeString(c.Href),
		c.Strategy,
		html.EscapeString(c.Slot),
		c.Span,
		c.DelayMs,
		panels.String(),
		html.EscapeString(c.Collection.Name),
	)
}
