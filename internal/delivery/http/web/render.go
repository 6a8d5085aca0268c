package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"path"
	"strconv"
	"strings"

	"recruitment-console/internal/domain"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

// Renderer holds one template set per page, each sharing the layout.
// It implements gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// NewRenderer parses the embedded layout, partials and pages.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		if _, err := tmpl.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}
	return r, nil
}

// Instance renders the named page inside the layout. Unknown names fall
// back to the error page.
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		tmpl = r.pages[pageError]
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}

var optionSets = map[string][]domain.Option{
	"gender":             domain.GenderOptions,
	"highestLevel":       domain.HighestLevelOptions,
	"candidateStatus":    domain.CandidateStatusOptions,
	"position":           domain.PositionOptions,
	"candidateSkill":     domain.CandidateSkillOptions,
	"jobSkill":           domain.JobSkillOptions,
	"benefit":            domain.BenefitOptions,
	"jobLevel":           domain.JobLevelOptions,
	"interviewResult":    domain.InterviewResultOptions,
	"interviewStatus":    domain.InterviewStatusOptions,
	"offerStatus":        domain.OfferStatusOptions,
	"contractType":       domain.ContractTypeOptions,
	"offerPosition":      domain.OfferPositionOptions,
	"offerLevel":         domain.OfferLevelOptions,
	"offerDepartment":    domain.OfferDepartmentOptions,
	"role":               domain.RoleOptions,
	"userStatus":         domain.UserStatusOptions,
	"userGender":         domain.UserGenderOptions,
	"department":         domain.DepartmentOptions,
	"recruitmentFilter":  domain.RecruitmentStatusFilters,
	"userRoleFilter":     domain.UserRoleFilters,
	"severityFilter":     domain.AuditSeverityFilters,
	"candidateStatusAll": domain.CandidateStatusFilters(),
}

var templateFuncs = template.FuncMap{
	"options": func(name string) []domain.Option {
		return optionSets[name]
	},
	"label": func(name, value string) string {
		return domain.OptionLabel(optionSets[name], value)
	},
	"labels": func(name string, values []string) string {
		out := make([]string, 0, len(values))
		for _, v := range values {
			out = append(out, domain.OptionLabel(optionSets[name], v))
		}
		return strings.Join(out, ", ")
	},
	"has": func(values []string, value string) bool {
		for _, v := range values {
			if v == value {
				return true
			}
		}
		return false
	},
	"join": strings.Join,
	"add": func(a, b int) int {
		return a + b
	},
	"optInt": func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
	"optFloat": func(v *float64) string {
		if v == nil {
			return ""
		}
		return formatFloat(*v)
	},
	"float": formatFloat,
	"id":    formatID,
	"optDate": func(d *domain.Date) string {
		if d == nil {
			return ""
		}
		return d.String()
	},
	"lookupName": func(items []domain.LookupItem, id int64) string {
		for _, item := range items {
			if item.ID == id {
				return item.Name
			}
		}
		if id == 0 {
			return ""
		}
		return "#" + formatID(id)
	},
	"pageURL": pageURL,
	"dict":    dict,
}

// dict builds a map from key/value pairs so partials can take several values.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// pageURL links to a one-based page of a list, keeping its filters.
func pageURL(base string, q domain.ListQuery, pageIndex int) string {
	values := url.Values{}
	if pageIndex > 0 {
		values.Set("page", strconv.Itoa(pageIndex+1))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Role != "" {
		values.Set("role", q.Role)
	}
	if encoded := values.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}
