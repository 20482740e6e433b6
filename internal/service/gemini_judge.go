package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/hireflow/assessment-api/config"
	"github.com/hireflow/assessment-api/internal/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type JudgeStatus int

const (
	JudgeOK JudgeStatus = iota
	// JudgeUnavailable means the judge was never configured (no API key);
	// distinct from JudgeFailed, which is a configured judge erroring out.
	JudgeUnavailable
	JudgeFailed
)

// JudgeVerdict is the typed outcome of one free-text scoring call.
type JudgeVerdict struct {
	Status   JudgeStatus
	Score    int // 0-100
	Feedback string
}

// JudgeClient scores a candidate's free-text answer. Implementations never
// return an error: any failure is folded into the verdict status so the
// submission pipeline has no hard dependency on judge liveness.
type JudgeClient interface {
	Evaluate(ctx context.Context, questionText, answer string) JudgeVerdict
}

var (
	judgeScoreRe    = regexp.MustCompile(`Score:\s*(\d+)`)
	judgeFeedbackRe = regexp.MustCompile(`Feedback:\s*([\s\S]*)`)
)

type geminiJudge struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiJudge builds the Gemini-backed judge. A missing API key is not an
// error: the client comes up unconfigured and every verdict reports
// JudgeUnavailable.
func NewGeminiJudge(cfg *config.Config) (JudgeClient, error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; written answers will receive zero credit")
		return &geminiJudge{timeout: cfg.JudgeTimeout()}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiJudge{
		model:   client.GenerativeModel("gemini-1.5-flash"),
		timeout: cfg.JudgeTimeout(),
	}, nil
}

func (j *geminiJudge) Evaluate(ctx context.Context, questionText, answer string) JudgeVerdict {
	if j.model == nil {
		return JudgeVerdict{Status: JudgeUnavailable}
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	prompt := buildJudgePrompt(questionText, answer)
	resp, err := j.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error while scoring written answer")
		metrics.JudgeFailures.Inc()
		return JudgeVerdict{Status: JudgeFailed}
	}

	raw := collectText(resp)
	if raw == "" {
		log.Warn().Msg("Gemini returned no text content for written answer")
		metrics.JudgeFailures.Inc()
		return JudgeVerdict{Status: JudgeFailed}
	}

	score, feedback := ParseJudgeResponse(raw)
	return JudgeVerdict{Status: JudgeOK, Score: score, Feedback: feedback}
}

// buildJudgePrompt renders the fixed evaluation template. The judge is told to
// answer in the exact two-line Score/Feedback shape that ParseJudgeResponse
// expects.
func buildJudgePrompt(questionText, answer string) string {
	var b strings.Builder
	b.WriteString("You are an expert examiner grading a candidate's written answer to an assessment question.\n")
	b.WriteString("Evaluate the answer for relevance, completeness, clarity and grammar.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(questionText)
	b.WriteString("\n---\n\nCandidate's Answer:\n---\n")
	b.WriteString(answer)
	b.WriteString("\n---\n\n")
	b.WriteString("Respond in plain text with exactly two lines:\n")
	b.WriteString("Score: <an integer from 0 to 100>\n")
	b.WriteString("Feedback: <one or two sentences of concise feedback>\n")
	return b.String()
}

// ParseJudgeResponse extracts the score and feedback with two independent
// regex passes. A missing score defaults to 0; missing feedback falls back to
// the whole raw response, trimmed. The score is clamped to 0-100.
func ParseJudgeResponse(raw string) (score int, feedback string) {
	if m := judgeScoreRe.FindStringSubmatch(raw); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil {
			score = v
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if m := judgeFeedbackRe.FindStringSubmatch(raw); len(m) == 2 {
		feedback = strings.TrimSpace(m[1])
	}
	if feedback == "" {
		feedback = strings.TrimSpace(raw)
	}
	return score, feedback
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}
