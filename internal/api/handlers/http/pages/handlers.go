package pages

import (
	"log/slog"
	"net/http"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/mapview"
)

const (
	tileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	tileAttribution = "&copy; OpenStreetMap contributors"
)

type Renderer interface {
	Render(w http.ResponseWriter, name string, data any) error
}

type Handler struct {
	logger   *slog.Logger
	renderer Renderer
	apiBase  string
}

func NewHandler(logger *slog.Logger, renderer Renderer, apiBase string) *Handler {
	return &Handler{
		logger:   logger,
		renderer: renderer,
		apiBase:  apiBase,
	}
}

type mapConfig struct {
	APIBase         string      `json:"apiBase"`
	TileURL         string      `json:"tileURL"`
	TileAttribution string      `json:"tileAttribution"`
	DefaultView     domain.View `json:"defaultView"`
	MaxZoom         int         `json:"maxZoom"`
}

type categoryOption struct {
	Value string
	Label string
}

type pageData struct {
	Title      string
	Config     mapConfig
	Categories []categoryOption
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryRobbery:   "Robo",
	domain.CategoryExtortion: "Extorsión",
}

func (h *Handler) data(title string) pageData {
	opts := make([]categoryOption, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		opts = append(opts, categoryOption{Value: string(c), Label: categoryLabels[c]})
	}
	return pageData{
		Title: title,
		Config: mapConfig{
			APIBase:         h.apiBase,
			TileURL:         tileURL,
			TileAttribution: tileAttribution,
			DefaultView:     mapview.DefaultView(),
			MaxZoom:         mapview.MaxZoom,
		},
		Categories: opts,
	}
}

// Feed is the community map of all reports.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "feed.html", h.data("Mapa de denuncias"))
}

// Composer is the report form.
func (h *Handler) Composer(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "composer.html", h.data("Reportar incidente"))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if err := h.renderer.Render(w, name, data); err != nil {
		h.logger.Error("render failed", slog.String("page", name), slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
