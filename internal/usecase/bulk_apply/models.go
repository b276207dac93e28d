package bulk_apply

import (
	"sort"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// Request модель запроса на массовую мутацию слотов
// Кандидаты задаются либо явным списком id, либо фильтрами; явный
// список имеет приоритет
type Request struct {
	ExplicitIDs []int64              // Явный выбор слотов (опционально)
	Filters     *domain.FilterSet    // Фильтры для подбора кандидатов
	Directives  *domain.DirectiveSet // Выбранные директивы
	DryRun      bool                 // true = только построить план, без применения
}

// Response модель ответа с планом и результатом применения
type Response struct {
	CandidateIDs []int64  `json:"candidateIds"`
	Matched      int      `json:"matched"`
	Fields       []string `json:"fields"` // Затрагиваемые поля (пусто при удалении)
	Delete       bool     `json:"delete"`
	DryRun       bool     `json:"dryRun"`
	Applied      int      `json:"applied"` // Сколько записей изменено; 0 при dry run
}

// buildResponse собирает Response из плана
func buildResponse(plan domain.Plan, dryRun bool, applied int) *Response {
	fields := make([]string, 0, len(plan.Patch))
	for field := range plan.Patch {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return &Response{
		CandidateIDs: plan.CandidateIDs,
		Matched:      len(plan.CandidateIDs),
		Fields:       fields,
		Delete:       plan.Delete,
		DryRun:       dryRun,
		Applied:      applied,
	}
}
