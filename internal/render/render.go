// Package render turns structured portfolio input into an HTML page by
// literal placeholder substitution against a named template.
//
// Substituted values are intentionally not HTML-escaped: the original
// system emitted user input verbatim and the generated pages are the
// user's own content. This is a known injection surface; see DESIGN.md
// before changing the contract.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mycms/portfolio-backend/internal/common"
)

// Fields is the data bag substituted into a template. Skills, Projects
// and Quests expand to one <li> element per entry; the optional scalar
// fields substitute to an empty string when absent.
type Fields struct {
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	Email    string   `json:"email"`
	Github   string   `json:"github"`
	Blog     string   `json:"blog"`
	Message  string   `json:"message"`
	Skills   []string `json:"skills"`
	Projects []string `json:"projects"`
	Quests   []string `json:"quests"`
}

// Renderer resolves template IDs against a directory, optionally via a
// templates.yaml catalog, and renders them with Fields.
type Renderer struct {
	dir     string
	catalog *Catalog
}

// New creates a Renderer over the given template directory. A missing
// or unreadable catalog manifest is not an error; resolution then falls
// back to "<id>.html" files.
func New(dir string) *Renderer {
	catalog, _ := LoadCatalog(dir)
	return &Renderer{dir: dir, catalog: catalog}
}

// Render produces the HTML document for the template and fields. An
// unresolvable template ID falls back to a minimal built-in document.
// Rendering is deterministic: no timestamps and no randomness.
func (r *Renderer) Render(templateID string, f Fields) (string, error) {
	raw, ok := r.load(templateID)
	if !ok {
		return fallbackHTML(f), nil
	}

	// Templates that lay out the skills or projects sections cannot
	// render a meaningful page without entries for them.
	if strings.Contains(raw, "{{skills}}") && len(f.Skills) == 0 {
		return "", fmt.Errorf("template %s requires skills: %w", templateID, common.ErrValidation)
	}
	if strings.Contains(raw, "{{projects}}") && len(f.Projects) == 0 {
		return "", fmt.Errorf("template %s requires projects: %w", templateID, common.ErrValidation)
	}

	replacer := strings.NewReplacer(
		"{{name}}", f.Name,
		"{{bio}}", f.Bio,
		"{{email}}", f.Email,
		"{{github}}", f.Github,
		"{{blog}}", f.Blog,
		"{{message}}", f.Message,
		"{{skills}}", listItems(f.Skills),
		"{{projects}}", listItems(f.Projects),
		"{{quests}}", listItems(f.Quests),
	)

	return replacer.Replace(raw), nil
}

// load resolves the template ID to file content, first through the
// catalog, then as a direct file name under the template directory.
func (r *Renderer) load(templateID string) (string, bool) {
	if templateID == "" {
		return "", false
	}

	name := templateID
	if r.catalog != nil {
		if entry, ok := r.catalog.Lookup(templateID); ok {
			name = entry.File
		}
	}
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}

	// Template IDs come from request bodies; never let them walk out
	// of the template directory.
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return "", false
	}

	raw, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func listItems(entries []string) string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, "<li>"+e+"</li>")
	}
	return strings.Join(items, "\n")
}

func fallbackHTML(f Fields) string {
	return "<html><body><h1>" + f.Name + "</h1><p>" + f.Bio + "</p></body></html>"
}
