package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
)

const sampleResponse = "Findings are normal. We recommend a follow-up. Reduce smoking and exercise daily."

func TestCaseUseCase_Chat(t *testing.T) {
	t.Run("request without markers bypasses the workers", func(t *testing.T) {
		f := newFixture(t, "Hello, how can I help?")
		f.vision.analyzeFn = func(ctx context.Context, imagePath string) (*model.VisionResult, error) {
			t.Error("vision worker must not be called")
			return nil, nil
		}
		f.retrieval.retrieveFn = func(ctx context.Context, text, query string) (string, error) {
			t.Error("retrieval worker must not be called")
			return "", nil
		}

		results, err := f.uc.Case.Handle(context.Background(), "What does a long QT mean?", nil)
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(1).Required()

		r := results[0]
		gt.Value(t, r.State).Equal(types.CaseStateChat)
		gt.Array(t, r.States).Equal([]types.CaseState{types.CaseStateRouting, types.CaseStateChat})
		gt.Value(t, r.Template).Equal(types.PromptTemplateChat)
		gt.Value(t, r.Reply).Equal("Hello, how can I help?")
		gt.Number(t, f.extractor.calls.Load()).Equal(0)

		calls := f.generator.Calls()
		gt.Array(t, calls).Length(1).Required()
		gt.Array(t, calls[0].messages).Length(1).Required()
		gt.Value(t, calls[0].messages[0].Role).Equal(model.RoleUser)
		gt.Value(t, textOf(calls[0].messages[0])).Equal("What does a long QT mean?")
		gt.Bool(t, calls[0].messages[0].HasImage()).False()
	})

	t.Run("backend failure returns an error reply", func(t *testing.T) {
		f := newFixture(t, "")
		f.generator.generateFn = func(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error) {
			return "", errors.New("connection refused")
		}

		r, err := f.uc.Case.Chat(context.Background(), "hello")
		gt.NoError(t, err).Required()
		gt.Value(t, r.State).Equal(types.CaseStateError)
		gt.Value(t, r.Reply).Equal(usecase.ChatErrorReply)
		gt.String(t, r.Error).Contains("connection refused")
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		f := newFixture(t, "")
		_, err := f.uc.Case.Chat(context.Background(), "   ")
		gt.Error(t, err).Is(usecase.ErrEmptyRequest)
		gt.Array(t, f.generator.Calls()).Length(0)
	})
}

func TestCaseUseCase_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("ECG only selects the ECG template and attaches the image", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		ecg := writeECG(t, "ecg.png")
		f.vision.analyzeFn = func(ctx context.Context, imagePath string) (*model.VisionResult, error) {
			return &model.VisionResult{HeatmapPath: "/heatmaps/heatmap_1.png", Description: "Attention summary"}, nil
		}

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{ECGPaths: []string{ecg}}, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(1).Required()

		r := results[0]
		gt.Value(t, r.Template).Equal(types.PromptTemplateECGOnly)
		gt.Value(t, r.State).Equal(types.CaseStateDone)
		gt.Array(t, r.States).Equal([]types.CaseState{
			types.CaseStateRouting,
			types.CaseStatePreparing,
			types.CaseStateSynthesizing,
			types.CaseStateDone,
		})
		gt.Value(t, r.HeatmapPath).Equal("/heatmaps/heatmap_1.png")
		gt.Value(t, r.Sections.ECGFindings).Equal("Attention summary")
		gt.Value(t, r.Sections.ClinicalAssessment).Equal("Findings are normal.")
		gt.Array(t, r.Sections.NextSteps).Equal([]string{"• We recommend a follow-up."})
		gt.Array(t, r.Sections.LifestyleRecommendations).Equal([]string{"• Reduce smoking and exercise daily."})
		gt.Value(t, r.RawResponse).Equal(sampleResponse)
		gt.Number(t, f.retrieval.calls.Load()).Equal(0)
		gt.Number(t, f.extractor.calls.Load()).Equal(0)

		calls := f.generator.Calls()
		gt.Array(t, calls).Length(1).Required()
		gt.Array(t, calls[0].messages).Length(1).Required()
		msg := calls[0].messages[0]
		gt.Array(t, msg.Parts).Length(2).Required()
		gt.Value(t, msg.Parts[0].Type).Equal(model.PartTypeImage)
		gt.Value(t, msg.Parts[0].MIMEType).Equal("image/png")
		gt.Value(t, string(msg.Parts[0].Data)).Equal("image-bytes-ecg.png")
		gt.String(t, textOf(msg)).Contains("12-lead ECG")
		gt.String(t, textOf(msg)).Contains("Attention summary")
		gt.Bool(t, strings.Contains(textOf(msg), "Clinical Context from Medical Report")).False()
	})

	t.Run("ECG and report select the combined template", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		ecg := writeECG(t, "ecg.jpg")
		f.retrieval.retrieveFn = func(ctx context.Context, text, query string) (string, error) {
			return "Troponin I 0.8 ng/mL (high)", nil
		}

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{
			ECGPaths:    []string{ecg},
			ReportPaths: []string{"/reports/labs.pdf"},
		}, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(1).Required()

		r := results[0]
		gt.Value(t, r.Template).Equal(types.PromptTemplateCombined)
		gt.Value(t, r.ReportContext).Equal("Troponin I 0.8 ng/mL (high)")
		gt.Value(t, r.HeatmapPath).Equal("")

		msg := f.generator.Calls()[0].messages[0]
		gt.Value(t, msg.Parts[0].MIMEType).Equal("image/jpeg")
		gt.String(t, textOf(msg)).Contains("Do not analyze the ECG in isolation")
		gt.String(t, textOf(msg)).Contains("Clinical Context from Medical Report:\nTroponin I 0.8 ng/mL (high)")
	})

	t.Run("report only uses the text-only template", func(t *testing.T) {
		f := newFixture(t, sampleResponse)

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{ReportPaths: []string{"/reports/labs.pdf"}}, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(1).Required()

		r := results[0]
		gt.Value(t, r.Template).Equal(types.PromptTemplateReportOnly)
		gt.Value(t, r.Sections.ECGFindings).Equal(usecase.NoECGProvided)
		gt.Array(t, f.vision.Paths()).Length(0)

		msg := f.generator.Calls()[0].messages[0]
		gt.Bool(t, msg.HasImage()).False()
		gt.Bool(t, strings.HasPrefix(textOf(msg), "Based on the provided clinical data, produce a detailed diagnostic assessment.")).True()
		gt.String(t, textOf(msg)).Contains("report text of labs.pdf")
	})

	t.Run("multiple ECGs run sequentially and reuse the report context", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		ecgs := []string{writeECG(t, "a.png"), writeECG(t, "b.png"), writeECG(t, "c.png")}

		type progressCall struct {
			done, total int
			path        string
		}
		var progress []progressCall

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{
			ECGPaths:    ecgs,
			ReportPaths: []string{"/reports/labs.pdf"},
		}, func(done, total int, r *model.CaseResult) {
			progress = append(progress, progressCall{done: done, total: total, path: r.ECGPath})
		})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(3).Required()

		gt.Array(t, f.vision.Paths()).Equal(ecgs)
		gt.Number(t, f.extractor.calls.Load()).Equal(1)
		gt.Number(t, f.retrieval.calls.Load()).Equal(1)
		gt.Array(t, progress).Equal([]progressCall{
			{done: 1, total: 3, path: ecgs[0]},
			{done: 2, total: 3, path: ecgs[1]},
			{done: 3, total: 3, path: ecgs[2]},
		})
		for i, r := range results {
			gt.Value(t, r.ECGPath).Equal(ecgs[i])
			gt.Value(t, r.ReportContext).Equal("report text of labs.pdf")
			gt.Value(t, r.State).Equal(types.CaseStateDone)
		}
		gt.Value(t, results[0].ID).NotEqual(results[1].ID)
	})

	t.Run("vision and retrieval run concurrently", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		ecg := writeECG(t, "ecg.png")

		var once sync.Once
		retrievalStarted := make(chan struct{})
		f.retrieval.retrieveFn = func(ctx context.Context, text, query string) (string, error) {
			once.Do(func() { close(retrievalStarted) })
			return "context", nil
		}
		f.vision.analyzeFn = func(ctx context.Context, imagePath string) (*model.VisionResult, error) {
			select {
			case <-retrievalStarted:
				return &model.VisionResult{HeatmapPath: imagePath, Description: "concurrent"}, nil
			case <-time.After(5 * time.Second):
				return nil, errors.New("retrieval never started")
			}
		}

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{
			ECGPaths:    []string{ecg},
			ReportPaths: []string{"/reports/labs.pdf"},
		}, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, results[0].VisionDescription).Equal("concurrent")
	})

	t.Run("vision failure degrades to a placeholder", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		ecg := writeECG(t, "ecg.png")
		f.vision.analyzeFn = func(ctx context.Context, imagePath string) (*model.VisionResult, error) {
			return nil, errors.New("failed to open image")
		}

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{
			ECGPaths:    []string{ecg},
			ReportPaths: []string{"/reports/labs.pdf"},
		}, nil)
		gt.NoError(t, err).Required()

		r := results[0]
		gt.Value(t, r.State).Equal(types.CaseStateDone)
		gt.Value(t, r.Sections.ECGFindings).Equal(usecase.ECGErrorPrefix + "failed to open image")
		gt.Value(t, r.ReportContext).Equal("report text of labs.pdf")
		gt.Value(t, r.Template).Equal(types.PromptTemplateCombined)
	})

	t.Run("report failure degrades to a placeholder", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		f.extractor.extractFn = func(ctx context.Context, path string) (string, error) {
			return "", errors.New("unsupported document type")
		}

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{ReportPaths: []string{"/reports/labs.docx"}}, nil)
		gt.NoError(t, err).Required()

		r := results[0]
		gt.Value(t, r.State).Equal(types.CaseStateDone)
		gt.Value(t, r.ReportContext).Equal(usecase.ReportErrorPrefix + "unsupported document type")
		gt.Number(t, f.retrieval.calls.Load()).Equal(0)
	})

	t.Run("generation failure keeps gathered evidence", func(t *testing.T) {
		f := newFixture(t, "")
		ecg := writeECG(t, "ecg.png")
		f.vision.analyzeFn = func(ctx context.Context, imagePath string) (*model.VisionResult, error) {
			return &model.VisionResult{HeatmapPath: "/heatmaps/h.png", Description: "desc"}, nil
		}
		f.generator.generateFn = func(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error) {
			return "", errors.New("request timed out after 5m0s")
		}

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{
			ECGPaths:    []string{ecg},
			ReportPaths: []string{"/reports/labs.pdf"},
		}, nil)
		gt.NoError(t, err).Required()

		r := results[0]
		gt.Value(t, r.State).Equal(types.CaseStateError)
		gt.Array(t, r.States).Equal([]types.CaseState{
			types.CaseStateRouting,
			types.CaseStatePreparing,
			types.CaseStateSynthesizing,
			types.CaseStateError,
		})
		gt.Value(t, r.Sections.ClinicalAssessment).Equal(usecase.GenerationErrorPrefix + "request timed out after 5m0s")
		gt.Value(t, r.HeatmapPath).Equal("/heatmaps/h.png")
		gt.Value(t, r.ReportContext).Equal("report text of labs.pdf")
		gt.Value(t, r.Sections.ECGFindings).Equal("desc")
		gt.Array(t, r.Sections.NextSteps).Length(0)
	})

	t.Run("response without actions gets fallback lists", func(t *testing.T) {
		f := newFixture(t, "Normal sinus rhythm. No acute changes.")

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{ReportPaths: []string{"/r.txt"}}, nil)
		gt.NoError(t, err).Required()

		r := results[0]
		gt.Value(t, r.Sections.ClinicalAssessment).Equal("Normal sinus rhythm. No acute changes.")
		gt.Array(t, r.Sections.NextSteps).Equal([]string{usecase.FallbackNextStep})
		gt.Array(t, r.Sections.LifestyleRecommendations).Equal([]string{usecase.FallbackLifestyle})
	})

	t.Run("response that starts with actions keeps the raw text as assessment", func(t *testing.T) {
		f := newFixture(t, "We recommend an echocardiogram.")

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{ReportPaths: []string{"/r.txt"}}, nil)
		gt.NoError(t, err).Required()

		r := results[0]
		gt.Value(t, r.Sections.ClinicalAssessment).Equal("We recommend an echocardiogram.")
		gt.Array(t, r.Sections.NextSteps).Equal([]string{"• We recommend an echocardiogram."})
	})

	t.Run("generation settings come from the store", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		gt.NoError(t, f.repo.Setting().Put(ctx, &model.Setting{Key: model.SettingTemperature, Value: "0.5"})).Required()
		gt.NoError(t, f.repo.Setting().Put(ctx, &model.Setting{Key: model.SettingMaxTokens, Value: "256"})).Required()

		_, err := f.uc.Case.Analyze(ctx, model.CaseRequest{ReportPaths: []string{"/r.txt"}}, nil)
		gt.NoError(t, err).Required()

		opts := f.generator.Calls()[0].opts
		gt.Value(t, opts.Temperature).Equal(0.5)
		gt.Value(t, opts.MaxTokens).Equal(256)
		gt.Value(t, opts.RepeatPenalty).Equal(1.3)
		gt.Value(t, opts.TopP).Equal(model.DefaultTopP)
		gt.Array(t, opts.Stop).Equal(model.DefaultStopSequences)
	})

	t.Run("missing ECG file is sent without an image", func(t *testing.T) {
		f := newFixture(t, sampleResponse)

		results, err := f.uc.Case.Analyze(ctx, model.CaseRequest{ECGPaths: []string{"/no/such/ecg.png"}}, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, results[0].Template).Equal(types.PromptTemplateECGOnly)
		gt.Bool(t, f.generator.Calls()[0].messages[0].HasImage()).False()
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		_, err := f.uc.Case.Analyze(ctx, model.CaseRequest{UserQuery: "hello"}, nil)
		gt.Error(t, err).Is(usecase.ErrEmptyRequest)
	})
}

func TestCaseUseCase_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("generic analysis instruction leaves the retrieval query empty", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		var queries []string
		f.retrieval.retrieveFn = func(ctx context.Context, text, query string) (string, error) {
			queries = append(queries, query)
			return "ctx", nil
		}

		content := usecase.NewAnalyzeContent(nil, []string{"/reports/labs.pdf"})
		results, err := f.uc.Case.Handle(ctx, content, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(1)
		gt.Array(t, queries).Equal([]string{""})
	})

	t.Run("user question is forwarded to retrieval", func(t *testing.T) {
		f := newFixture(t, sampleResponse)
		var queries []string
		f.retrieval.retrieveFn = func(ctx context.Context, text, query string) (string, error) {
			queries = append(queries, query)
			return "ctx", nil
		}

		_, err := f.uc.Case.Handle(ctx, "[Report: /reports/labs.pdf] is potassium low?", nil)
		gt.NoError(t, err).Required()
		gt.Array(t, queries).Equal([]string{"is potassium low?"})
		gt.String(t, textOf(f.generator.Calls()[0].messages[0])).Contains("Clinician Request: is potassium low?")
	})

	t.Run("multiple reports are labelled and joined in order", func(t *testing.T) {
		f := newFixture(t, sampleResponse)

		results, err := f.uc.Case.Handle(ctx, "[Report: /r/a.txt] [Report: /r/b.txt]", nil)
		gt.NoError(t, err).Required()
		gt.Value(t, results[0].ReportContext).Equal("Report a.txt:\nreport text of a.txt\n\nReport b.txt:\nreport text of b.txt")
	})
}

func TestNewAnalyzeContent(t *testing.T) {
	content := usecase.NewAnalyzeContent([]string{"/e1.png", "/e2.png"}, []string{"/r.pdf"})
	gt.Value(t, content).Equal("Please analyze this patient case. [ECG: /e1.png] [ECG: /e2.png] [Report: /r.pdf] Provide a comprehensive assessment including findings from the ECG(s) and history from the report(s).")

	req := model.ParseCaseRequest(content)
	gt.Value(t, req.UserQuery).Equal(usecase.AnalyzeCaseQuery)
}
