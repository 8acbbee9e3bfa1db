package services

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	maxSkills       = 10
	maxEducationLen = 100
)

// FieldExtractor pulls best-effort metadata out of raw resume text. Extract never
// fails: any field it cannot find keeps its default.
type FieldExtractor interface {
	Extract(text string) models.ResumeFields
}

type fieldExtractor struct {
	logger *zap.Logger
}

func NewFieldExtractor(logger *zap.Logger) FieldExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fieldExtractor{logger: logger}
}

// Section headings that end a captured section even without a trailing colon.
const knownHeadings = `summary|profile|objective|experience|work experience|work history|employment|` +
	`education|academic background|skills|technical skills|technologies|projects|` +
	`certifications|languages|interests|references|contact|publications|awards`

var (
	reSectionEnd = regexp.MustCompile(`\n(?:[A-Z][A-Za-z ]*:|[ \t]*(?i:` + knownHeadings + `)[ \t]*:?[ \t]*(?:\n|$))`)
	reHeadingRow = regexp.MustCompile(`(?im)^[ \t]*(?:` + knownHeadings + `)[ \t]*:?[ \t]*$`)

	skillsSection     = newSection(`skills|technologies`)
	experienceSection = newSection(`experience|work history|employment`)
	educationSection  = newSection(`education|academic`)

	reSkillToken  = regexp.MustCompile(`\b[A-Za-z]{3,}(?: [A-Za-z]{3,})?\b`)
	reTitleLine   = regexp.MustCompile(`(?m)^[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*)`)
	reRegionPlace = regexp.MustCompile(`(?m)^[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*,[ \t]*[A-Z]{2})[ \t]*\n`)
	rePlainPlace  = regexp.MustCompile(`(?m)^[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*)[ \t]*\n`)
	reYear        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// section finds a block of text introduced by a heading. A heading on its own line
// wins over the keyword appearing in running text.
type section struct {
	heading *regexp.Regexp
	keyword *regexp.Regexp
}

func newSection(keywords string) section {
	return section{
		heading: regexp.MustCompile(`(?im)^[ \t]*(?:[a-z]+[ \t]+)?(?:` + keywords + `)[ \t]*:?[ \t]*$\n?`),
		keyword: regexp.MustCompile(`(?i)\b(?:` + keywords + `)\b[ \t]*:?\s*`),
	}
}

func (s section) capture(text string) (string, bool) {
	start, end, ok := s.span(text)
	if !ok {
		return "", false
	}
	return text[start:end], true
}

// span returns the byte range of the section body in text.
func (s section) span(text string) (start, end int, ok bool) {
	loc := s.heading.FindStringIndex(text)
	if loc == nil {
		loc = s.keyword.FindStringIndex(text)
	}
	if loc == nil {
		return 0, 0, false
	}

	start, end = loc[1], len(text)
	if next := reSectionEnd.FindStringIndex(text[start:]); next != nil {
		end = start + next[0]
	}

	return start, end, true
}

// Extract implements FieldExtractor.
func (f *fieldExtractor) Extract(text string) models.ResumeFields {
	fields := models.DefaultResumeFields()

	if skills, ok := runStep(f.logger, "skills", extractSkills, text); ok {
		fields.Skills = skills
	}
	if position, ok := runStep(f.logger, "last_position", extractLastPosition, text); ok {
		fields.LastPosition = position
	}
	if education, ok := runStep(f.logger, "education", extractEducation, text); ok {
		fields.Education = education
	}
	if location, ok := runStep(f.logger, "location", extractLocation, text); ok {
		fields.Location = location
	}
	if experience, ok := runStep(f.logger, "experience", extractExperience, text); ok {
		fields.Experience = experience
	}

	return fields
}

// runStep isolates one heuristic so a panic only costs that field.
func runStep[T any](logger *zap.Logger, name string, step func(string) (T, bool), text string) (value T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("field extraction step failed",
				zap.String("field", name),
				zap.Any("panic", r),
			)
			var zero T
			value, ok = zero, false
		}
	}()

	return step(text)
}

func extractSkills(text string) ([]string, bool) {
	body, ok := skillsSection.capture(text)
	if !ok {
		return nil, false
	}

	seen := make(map[string]struct{})
	skills := make([]string, 0, maxSkills)
	for _, token := range reSkillToken.FindAllString(body, -1) {
		key := strings.ToLower(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, token)
		if len(skills) == maxSkills {
			break
		}
	}

	if len(skills) == 0 {
		return nil, false
	}
	return skills, true
}

func extractLastPosition(text string) (string, bool) {
	body, ok := experienceSection.capture(text)
	if !ok {
		return "", false
	}

	m := reTitleLine.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return strings.Join(strings.Fields(m[1]), " "), true
}

func extractEducation(text string) (string, bool) {
	body, ok := educationSection.capture(text)
	if !ok {
		return "", false
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", false
	}

	if runes := []rune(body); len(runes) > maxEducationLen {
		body = strings.TrimSpace(string(runes[:maxEducationLen]))
	}
	return body, true
}

// extractLocation prefers a "City, XX" line anywhere in the text, then falls back
// to the first capitalized line. Headings and skills lines are never places.
func extractLocation(text string) (string, bool) {
	skillsStart, skillsEnd, hasSkills := skillsSection.span(text)
	inSkills := func(pos int) bool {
		return hasSkills && pos >= skillsStart && pos < skillsEnd
	}

	for _, re := range []*regexp.Regexp{reRegionPlace, rePlainPlace} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			place := text[m[2]:m[3]]
			if inSkills(m[2]) || reHeadingRow.MatchString(place) {
				continue
			}
			return place, true
		}
	}

	return "", false
}

func extractExperience(text string) (string, bool) {
	years := reYear.FindAllString(text, -1)
	if len(years) == 0 {
		return "", false
	}
	return fmt.Sprintf("%d years", len(years)), true
}
