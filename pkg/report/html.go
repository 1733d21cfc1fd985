package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devicelab-dev/flowdigest/pkg/interaction"
)

// HTMLConfig contains configuration for the digest page.
type HTMLConfig struct {
	OutputPath string // Path to write the HTML file
	Title      string // Page title (default: "Flow Digest")
	ImagePath  string // Social image to embed; skipped when missing
}

// Digest is everything the digest page shows.
type Digest struct {
	FlowName     string
	Summary      string
	Interactions []interaction.Interaction
	GeneratedAt  time.Time
}

// HTMLData contains all data needed for the HTML template.
type HTMLData struct {
	Title        string
	FlowName     string
	GeneratedAt  string
	Summary      string
	Image        template.URL
	Interactions []InteractionHTMLData
}

// InteractionHTMLData is one row of the interactions table.
type InteractionHTMLData struct {
	Index       int
	Kind        string
	Description string
	Page        string
	PageURL     string
}

// WriteHTML renders a self-contained page with the summary, the social image
// and the interactions, and writes it to cfg.OutputPath.
func WriteHTML(d Digest, cfg HTMLConfig) error {
	if cfg.Title == "" {
		cfg.Title = "Flow Digest"
	}

	html, err := renderHTML(buildHTMLData(d, cfg))
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return WriteFile(cfg.OutputPath, []byte(html))
}

func buildHTMLData(d Digest, cfg HTMLConfig) HTMLData {
	rows := make([]InteractionHTMLData, len(d.Interactions))
	for i, in := range d.Interactions {
		page := in.PageTitle
		if page == "" {
			page = in.PageURL
		}
		rows[i] = InteractionHTMLData{
			Index:       i + 1,
			Kind:        string(in.Kind),
			Description: in.Description,
			Page:        page,
			PageURL:     in.PageURL,
		}
	}

	data := HTMLData{
		Title:        cfg.Title,
		FlowName:     d.FlowName,
		GeneratedAt:  d.GeneratedAt.Format("2006-01-02 15:04:05"),
		Summary:      strings.TrimSpace(d.Summary),
		Interactions: rows,
	}
	if cfg.ImagePath != "" {
		data.Image = template.URL(loadAsBase64(cfg.ImagePath))
	}
	return data
}

func loadAsBase64(path string) string {
	data, err := os.ReadFile(path) //#nosec G304 -- artifact we wrote
	if err != nil {
		return ""
	}
	mimeType := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".webp":
		mimeType = "image/webp"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func renderHTML(data HTMLData) (string, error) {
	tmpl, err := template.New("digest").Parse(htmlTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #fafafd; color: #111827; }
  main { max-width: 960px; margin: 0 auto; padding: 32px 24px; }
  header p { color: #6b7280; margin-top: 4px; }
  section { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin-top: 20px; }
  img.hero { width: 100%; border-radius: 6px; display: block; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 8px; border-bottom: 1px solid #f3f4f6; }
  .kind { font-size: 12px; padding: 2px 8px; border-radius: 10px; background: #e0f2fe; color: #075985; }
  .kind-navigate { background: #ede9fe; color: #5b21b6; }
  .kind-typing { background: #dcfce7; color: #166534; }
  .kind-scrolling { background: #f3f4f6; color: #374151; }
  .kind-hint { background: #fef9c3; color: #854d0e; }
</style>
</head>
<body>
<main>
  <header>
    <h1>{{.FlowName}}</h1>
    <p>Generated {{.GeneratedAt}} &middot; {{len .Interactions}} interactions</p>
  </header>
  {{if .Image}}<section><img class="hero" src="{{.Image}}" alt="Social image for {{.FlowName}}"></section>{{end}}
  {{if .Summary}}<section>
    <h2>What the user was trying to accomplish</h2>
    <p>{{.Summary}}</p>
  </section>{{end}}
  <section>
    <h2>Interactions</h2>
    {{if .Interactions}}<table>
      <thead><tr><th>#</th><th>Kind</th><th>Interaction</th><th>Page</th></tr></thead>
      <tbody>
      {{range .Interactions}}<tr>
        <td>{{.Index}}</td>
        <td><span class="kind kind-{{.Kind}}">{{.Kind}}</span></td>
        <td>{{.Description}}</td>
        <td>{{if .PageURL}}<a href="{{.PageURL}}">{{.Page}}</a>{{else}}{{.Page}}{{end}}</td>
      </tr>{{end}}
      </tbody>
    </table>{{else}}<p>No interactions were recorded.</p>{{end}}
  </section>
</main>
</body>
</html>
`
