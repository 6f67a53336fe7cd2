package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/classifier"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// AnalyzeCaseQuery is the instruction left in a request built by
// NewAnalyzeContent once its markers are removed.
const AnalyzeCaseQuery = "Please analyze this patient case. Provide a comprehensive assessment including findings from the ECG(s) and history from the report(s)."

// Placeholder and fallback texts surfaced in case results
const (
	NoECGProvided         = "No ECG data provided."
	ECGErrorPrefix        = "Error analyzing ECG: "
	ReportErrorPrefix     = "Error analyzing report: "
	GenerationErrorPrefix = "Error generating assessment: "
	ChatErrorReply        = "Error processing request."
	FallbackNextStep      = "Please review the assessment above for specific steps."
	FallbackLifestyle     = "Maintain heart-healthy habits; consult physician for specifics."
)

// ProgressFunc is called after each per-ECG cycle completes.
type ProgressFunc func(done, total int, result *model.CaseResult)

// CaseUseCase routes a request to chat or to evidence gathering and synthesis.
type CaseUseCase struct {
	generator interfaces.Generator
	vision    interfaces.VisionWorker
	retrieval interfaces.RetrievalWorker
	extractor interfaces.DocumentExtractor
	settings  *SettingsUseCase
}

// NewCaseUseCase creates a new CaseUseCase
func NewCaseUseCase(
	generator interfaces.Generator,
	vision interfaces.VisionWorker,
	retrieval interfaces.RetrievalWorker,
	extractor interfaces.DocumentExtractor,
	settings *SettingsUseCase,
) *CaseUseCase {
	return &CaseUseCase{
		generator: generator,
		vision:    vision,
		retrieval: retrieval,
		extractor: extractor,
		settings:  settings,
	}
}

// NewAnalyzeContent renders an analysis request in marker form.
func NewAnalyzeContent(ecgPaths, reportPaths []string) string {
	var b strings.Builder
	b.WriteString("Please analyze this patient case.")
	for _, p := range ecgPaths {
		b.WriteString(" [ECG: " + p + "]")
	}
	for _, p := range reportPaths {
		b.WriteString(" [Report: " + p + "]")
	}
	b.WriteString(" Provide a comprehensive assessment including findings from the ECG(s) and history from the report(s).")
	return b.String()
}

// Handle parses content and runs it as a chat turn or as a case.
func (uc *CaseUseCase) Handle(ctx context.Context, content string, progress ProgressFunc) ([]*model.CaseResult, error) {
	req := model.ParseCaseRequest(content)
	if req.IsChat() {
		r, err := uc.Chat(ctx, content)
		if err != nil {
			return nil, err
		}
		return []*model.CaseResult{r}, nil
	}
	return uc.Analyze(ctx, req, progress)
}

// Chat passes text to the generation backend as a single user turn.
func (uc *CaseUseCase) Chat(ctx context.Context, text string) (*model.CaseResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyRequest
	}

	r := model.NewCaseResult()
	r.Template = types.PromptTemplateChat
	if err := r.Transition(types.CaseStateChat); err != nil {
		return nil, err
	}

	opts := model.NewGenerateOptions(uc.settings.Generation(ctx))
	reply, err := uc.generator.Generate(ctx, []model.Message{model.UserMessage(model.TextPart(text))}, opts)
	if err != nil {
		logging.From(ctx).Warn("chat generation failed",
			model.CaseIDKey, r.ID,
			"error", err.Error())
		r.Reply = ChatErrorReply
		r.Fail(err.Error())
		return r, nil
	}

	r.Reply = reply
	r.RawResponse = reply
	return r, nil
}

// Analyze runs one preparing and synthesizing cycle per ECG, sequentially.
// A report-only request runs a single cycle. The report context is
// computed once and shared by every cycle. Case failures are reported on
// the results; only an empty request returns an error.
func (uc *CaseUseCase) Analyze(ctx context.Context, req model.CaseRequest, progress ProgressFunc) ([]*model.CaseResult, error) {
	if req.IsChat() {
		return nil, ErrEmptyRequest
	}

	opts := model.NewGenerateOptions(uc.settings.Generation(ctx))
	reports := &reportContext{
		paths:     req.ReportPaths,
		query:     retrievalQuery(req.UserQuery),
		extractor: uc.extractor,
		retrieval: uc.retrieval,
	}

	targets := req.ECGPaths
	if len(targets) == 0 {
		targets = []string{""}
	}

	results := make([]*model.CaseResult, 0, len(targets))
	for i, ecgPath := range targets {
		r := uc.runCycle(ctx, req, ecgPath, reports, opts)
		results = append(results, r)
		if progress != nil {
			progress(i+1, len(targets), r)
		}
	}
	return results, nil
}

func (uc *CaseUseCase) runCycle(ctx context.Context, req model.CaseRequest, ecgPath string, reports *reportContext, opts model.GenerateOptions) *model.CaseResult {
	r := model.NewCaseResult()
	logger := logging.From(ctx).With(model.CaseIDKey, r.ID, model.ECGPathKey, ecgPath)

	if err := r.Transition(types.CaseStatePreparing); err != nil {
		r.Fail(err.Error())
		return r
	}

	evidence := uc.prepare(ctx, req, ecgPath, reports)
	r.ApplyEvidence(evidence)
	r.Template = types.SelectPromptTemplate(evidence.HasECG(), evidence.HasReport)
	r.Sections.ECGFindings = NoECGProvided
	if evidence.HasECG() {
		r.Sections.ECGFindings = evidence.VisionDescription
	}

	if err := r.Transition(types.CaseStateSynthesizing); err != nil {
		r.Fail(err.Error())
		return r
	}

	prompt, err := buildPrompt(r.Template, evidence, req.UserQuery)
	if err != nil {
		r.Fail(err.Error())
		return r
	}

	response, err := uc.generator.Generate(ctx, buildMessages(ctx, prompt, evidence), opts)
	if err != nil {
		logger.Warn("synthesis failed", "error", err.Error())
		r.Sections.ClinicalAssessment = GenerationErrorPrefix + err.Error()
		r.Fail(err.Error())
		return r
	}

	r.RawResponse = response
	applySections(&r.Sections, response)

	if err := r.Transition(types.CaseStateDone); err != nil {
		r.Fail(err.Error())
		return r
	}

	logger.Info("case completed",
		"template", r.Template,
		"heatmap", r.HeatmapPath,
		"next_steps", len(r.Sections.NextSteps),
		"lifestyle", len(r.Sections.LifestyleRecommendations))
	return r
}

// prepare gathers the vision and report evidence concurrently. A failing
// task degrades to a placeholder and never cancels the other.
func (uc *CaseUseCase) prepare(ctx context.Context, req model.CaseRequest, ecgPath string, reports *reportContext) model.EvidenceBundle {
	evidence := model.EvidenceBundle{
		ECGPath:   ecgPath,
		HasReport: req.HasReport(),
	}

	var (
		eg         errgroup.Group
		vision     *model.VisionResult
		visionErr  error
		reportText string
	)

	if evidence.HasECG() {
		eg.Go(func() error {
			vision, visionErr = uc.vision.Analyze(ctx, ecgPath)
			return nil
		})
	}
	if evidence.HasReport {
		eg.Go(func() error {
			reportText = reports.get(ctx)
			return nil
		})
	}
	_ = eg.Wait()

	switch {
	case visionErr != nil:
		logging.From(ctx).Warn("ECG analysis failed",
			model.ECGPathKey, ecgPath,
			"error", visionErr.Error())
		evidence.VisionDescription = ECGErrorPrefix + visionErr.Error()
	case vision != nil:
		evidence.HeatmapPath = vision.HeatmapPath
		evidence.VisionDescription = vision.Description
	}
	evidence.ReportContext = reportText

	return evidence
}

// applySections decomposes response into clinical sections. An empty
// assessment falls back to the raw text, and empty action lists to the
// fixed fallback items.
func applySections(sections *model.ClinicalSections, response string) {
	result := classifier.Classify(response)

	sections.ClinicalAssessment = result.AssessmentText()
	if sections.ClinicalAssessment == "" {
		sections.ClinicalAssessment = strings.TrimSpace(response)
	}

	sections.NextSteps = classifier.Bullets(result.NextSteps)
	if len(sections.NextSteps) == 0 {
		sections.NextSteps = []string{FallbackNextStep}
	}
	sections.LifestyleRecommendations = classifier.Bullets(result.Lifestyle)
	if len(sections.LifestyleRecommendations) == 0 {
		sections.LifestyleRecommendations = []string{FallbackLifestyle}
	}
}

// retrievalQuery drops the generic analysis instruction so that retrieval
// falls back to its default lab query.
func retrievalQuery(query string) string {
	if query == AnalyzeCaseQuery {
		return ""
	}
	return query
}

// reportContext extracts and ranks the reports of one request at most once.
type reportContext struct {
	paths     []string
	query     string
	extractor interfaces.DocumentExtractor
	retrieval interfaces.RetrievalWorker

	once  sync.Once
	value string
}

func (rc *reportContext) get(ctx context.Context) string {
	rc.once.Do(func() {
		rc.value = rc.load(ctx)
	})
	return rc.value
}

func (rc *reportContext) load(ctx context.Context) string {
	parts := make([]string, 0, len(rc.paths))
	for _, path := range rc.paths {
		text := rc.loadOne(ctx, path)
		if len(rc.paths) > 1 {
			text = "Report " + filepath.Base(path) + ":\n" + text
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

func (rc *reportContext) loadOne(ctx context.Context, path string) string {
	logger := logging.From(ctx).With(model.ReportPathKey, path)

	text, err := rc.extractor.Extract(ctx, path)
	if err != nil {
		logger.Warn("report extraction failed", "error", err.Error())
		return ReportErrorPrefix + err.Error()
	}

	ranked, err := rc.retrieval.Retrieve(ctx, text, rc.query)
	if err != nil {
		logger.Warn("report retrieval failed", "error", err.Error())
		return ReportErrorPrefix + err.Error()
	}

	logger.Debug("report context ready", "chars", len(ranked))
	return ranked
}
