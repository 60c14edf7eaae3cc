package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Assistant modes.
const (
	ModeSchools = "schools"
	ModeCV      = "cv"
	ModeHousing = "housing"
	ModeProfile = "profile"
)

const (
	chatMaxTokens = 800
	cvMaxTokens   = 3000
	corpusMaxRows = 5000
)

const cvSystemPrompt = `You are a CV rewriting assistant. Transform the provided resume text into a concise, professionally formatted resume using clean Markdown headings, bullet points, and strong action verbs. Improve clarity, quantify achievements, and ensure consistent tense. Keep contact info at top.`

// AssistantService builds prompt context from reference data and proxies chat
// completions to the external provider. It holds no per-request state and is
// safe for concurrent callers.
type AssistantService struct {
	db       *gorm.DB
	client   *GroqClient
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewAssistantService(db *gorm.DB, client *GroqClient, rdb *redis.Client, cacheTTL time.Duration) *AssistantService {
	return &AssistantService{db: db, client: client, rdb: rdb, cacheTTL: cacheTTL}
}

// Chat answers the latest user message in the given mode. With rag enabled,
// the relevance scorer selects reference-data lines as context; the reply is
// returned verbatim from the provider.
func (s *AssistantService) Chat(req *dto.ChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("%w: messages are required", ErrInvalid)
	}
	last := req.Messages[len(req.Messages)-1].Content

	contextBlob := ""
	if req.RAG {
		corpus, err := s.corpus(req.Mode)
		if err != nil {
			slog.Error("corpus load failed", "mode", req.Mode, "error", err)
		} else {
			contextBlob = RetrieveContext(last, corpus)
		}
	}

	prefix := ""
	if contextBlob != "" {
		prefix = fmt.Sprintf("Here are some possibly relevant reference rows (may be noisy):\n%s\n\n", contextBlob)
	}

	return s.client.Complete(systemPrompt(req.Mode), prefix+last, chatMaxTokens)
}

// RewriteCV sends extracted resume text through the rewrite prompt and
// returns the improved markdown.
func (s *AssistantService) RewriteCV(cvText, jobDescription string) (string, error) {
	if strings.TrimSpace(cvText) == "" {
		return "", fmt.Errorf("%w: CV text is required", ErrInvalid)
	}
	if len(cvText) > 120000 {
		cvText = cvText[:120000]
	}

	user := fmt.Sprintf("Resume text:\n\n%s\n\nTarget role or job description (optional):\n%s", cvText, jobDescription)
	return s.client.Complete(cvSystemPrompt, user, cvMaxTokens)
}

func systemPrompt(mode string) string {
	switch mode {
	case ModeSchools:
		return "You are a counselor helping students find study programs by country, city, tuition, and deadlines. Answer with short lists and next steps."
	case ModeCV:
		return "You edit resumes. Return clear bullet points and Markdown sections."
	case ModeHousing:
		return "You help find student housing near schools with rent ranges and links."
	default:
		return "You help improve a student profile for better matching."
	}
}

// corpus assembles the flat text lines scored for a mode: school and program
// rows for schools/profile, program rows for housing. Lines are cached in
// Redis for a short TTL when a client is configured.
func (s *AssistantService) corpus(mode string) ([]string, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(context.Background(), corpusCacheKey(mode)).Bytes(); err == nil {
			var lines []string
			if json.Unmarshal(cached, &lines) == nil {
				return lines, nil
			}
		}
	}

	var lines []string
	switch mode {
	case ModeSchools, ModeProfile:
		schools, err := s.schoolLines()
		if err != nil {
			return nil, err
		}
		programs, err := s.programLines()
		if err != nil {
			return nil, err
		}
		lines = append(schools, programs...)
	case ModeHousing:
		programs, err := s.programLines()
		if err != nil {
			return nil, err
		}
		lines = programs
	default:
		return nil, nil
	}

	if s.rdb != nil {
		if b, err := json.Marshal(lines); err == nil {
			if err := s.rdb.Set(context.Background(), corpusCacheKey(mode), b, s.cacheTTL).Err(); err != nil {
				slog.Warn("corpus cache write failed", "mode", mode, "error", err)
			}
		}
	}
	return lines, nil
}

func (s *AssistantService) schoolLines() ([]string, error) {
	var schools []models.School
	if err := s.db.Limit(corpusMaxRows).Find(&schools).Error; err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(schools))
	for _, sc := range schools {
		lines = append(lines, strings.Join([]string{sc.Name, sc.City, sc.CountryCode, sc.Description}, ","))
	}
	return lines, nil
}

func (s *AssistantService) programLines() ([]string, error) {
	var programs []models.Program
	if err := s.db.Preload("School").Limit(corpusMaxRows).Find(&programs).Error; err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(programs))
	for _, p := range programs {
		tuition := ""
		if p.TuitionAnnual != nil {
			tuition = fmt.Sprintf("%d %s", *p.TuitionAnnual, p.Currency)
		}
		lines = append(lines, strings.Join([]string{p.Title, p.School.Name, p.City, p.CountryCode, p.DegreeLevel, tuition}, ","))
	}
	return lines, nil
}

func corpusCacheKey(mode string) string {
	return "assistant:corpus:" + mode
}
