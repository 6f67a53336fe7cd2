package types

// PromptTemplate identifies which synthesis prompt was used for a case
type PromptTemplate string

const (
	PromptTemplateCombined   PromptTemplate = "combined"
	PromptTemplateECGOnly    PromptTemplate = "ecg_only"
	PromptTemplateReportOnly PromptTemplate = "report_only"
	PromptTemplateChat       PromptTemplate = "chat"
)

// SelectPromptTemplate picks the synthesis template from the evidence present.
func SelectPromptTemplate(hasECG, hasReport bool) PromptTemplate {
	switch {
	case hasECG && hasReport:
		return PromptTemplateCombined
	case hasECG:
		return PromptTemplateECGOnly
	case hasReport:
		return PromptTemplateReportOnly
	default:
		return PromptTemplateChat
	}
}

func (t PromptTemplate) String() string {
	return string(t)
}
