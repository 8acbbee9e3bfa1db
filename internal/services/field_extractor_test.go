package services

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/resume-screener/internal/models"
)

const sampleResume = `John Smith
San Francisco, CA
john@example.com

Summary
Backend engineer with a focus on distributed systems.

Experience
Senior Software Engineer at Acme Corp
2019 - 2023
Software Engineer at Initech
2016 - 2019

Education
B.Sc. Computer Science, Stanford University, 2016

Skills
Python, Go, Docker, Kubernetes, PostgreSQL, Python
`

func TestFieldExtractorSampleResume(t *testing.T) {
	fields := NewFieldExtractor(zap.NewNop()).Extract(sampleResume)

	wantSkills := []string{"Python", "Docker", "Kubernetes", "PostgreSQL"}
	if strings.Join(fields.Skills, ",") != strings.Join(wantSkills, ",") {
		t.Errorf("skills = %v, want %v", fields.Skills, wantSkills)
	}
	if fields.LastPosition != "Senior Software Engineer" {
		t.Errorf("lastPosition = %q", fields.LastPosition)
	}
	if fields.Education != "B.Sc. Computer Science, Stanford University, 2016" {
		t.Errorf("education = %q", fields.Education)
	}
	if fields.Location != "San Francisco, CA" {
		t.Errorf("location = %q", fields.Location)
	}
	if fields.Experience != "5 years" {
		t.Errorf("experience = %q", fields.Experience)
	}
}

func TestFieldExtractorYearsScenario(t *testing.T) {
	fields := NewFieldExtractor(nil).Extract("Experienced Python Developer, 2019, 2020, 2021")

	if fields.Experience != "3 years" {
		t.Errorf("experience = %q, want 3 years", fields.Experience)
	}
	if fields.LastPosition != models.NotSpecified {
		t.Errorf("lastPosition = %q, want default", fields.LastPosition)
	}
	if len(fields.Skills) != 0 {
		t.Errorf("expected no skills, got %v", fields.Skills)
	}
}

func TestFieldExtractorTotal(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n\t",
		"skills",
		"Skills:",
		"Education\n",
		"Experience:\n\n\n",
		"1899 2100 19999",
		strings.Repeat("Skills: Go\n", 500),
		"\x00\xff\xfe garbage",
	}

	extractor := NewFieldExtractor(zap.NewNop())
	for _, input := range inputs {
		fields := extractor.Extract(input)
		if fields.Skills == nil {
			t.Errorf("Extract(%q): skills must never be nil", input)
		}
		for name, value := range map[string]string{
			"experience":   fields.Experience,
			"education":    fields.Education,
			"location":     fields.Location,
			"lastPosition": fields.LastPosition,
		} {
			if value == "" {
				t.Errorf("Extract(%q): %s is empty", input, name)
			}
		}
		if len(fields.Skills) > maxSkills {
			t.Errorf("Extract(%q): %d skills", input, len(fields.Skills))
		}
	}
}

func TestFieldExtractorEmptyIsDefault(t *testing.T) {
	fields := NewFieldExtractor(nil).Extract("")
	want := models.DefaultResumeFields()

	if len(fields.Skills) != 0 ||
		fields.Experience != want.Experience ||
		fields.Education != want.Education ||
		fields.Location != want.Location ||
		fields.LastPosition != want.LastPosition {
		t.Errorf("expected defaults, got %+v", fields)
	}
}

func TestExtractSkillsCappedAndDeduped(t *testing.T) {
	text := "Skills:\nAaa, Bbb, Ccc, Ddd, Eee, Fff, Ggg, Hhh, Iii, Jjj, Kkk, Lll, aaa, BBB\n"

	skills, ok := extractSkills(text)
	if !ok {
		t.Fatal("expected skills")
	}
	if len(skills) != maxSkills {
		t.Errorf("expected %d skills, got %d: %v", maxSkills, len(skills), skills)
	}

	seen := make(map[string]bool)
	for _, s := range skills {
		key := strings.ToLower(s)
		if seen[key] {
			t.Errorf("duplicate skill %q in %v", s, skills)
		}
		seen[key] = true
	}
}

func TestExtractSkillsInlineSection(t *testing.T) {
	text := "Jane Doe\nTechnologies: Rust, Elixir, Terraform\nEducation: MIT\n"

	skills, ok := extractSkills(text)
	if !ok {
		t.Fatal("expected skills")
	}
	if strings.Join(skills, ",") != "Rust,Elixir,Terraform" {
		t.Errorf("skills = %v", skills)
	}

	education, ok := extractEducation(text)
	if !ok || education != "MIT" {
		t.Errorf("education = %q, %v", education, ok)
	}
}

func TestExtractSkillsStopsAtHeading(t *testing.T) {
	text := "Technical Skills\nJava, Spring\nProjects\nBuilt a compiler\n"

	skills, ok := extractSkills(text)
	if !ok {
		t.Fatal("expected skills")
	}
	if strings.Join(skills, ",") != "Java,Spring" {
		t.Errorf("skills = %v", skills)
	}
}

func TestExtractEducationTruncated(t *testing.T) {
	text := "Education\n" + strings.Repeat("x", 250) + "\n"

	education, ok := extractEducation(text)
	if !ok {
		t.Fatal("expected education")
	}
	if len([]rune(education)) > maxEducationLen {
		t.Errorf("education has %d runes", len([]rune(education)))
	}
}

func TestExtractLastPositionWorkHistory(t *testing.T) {
	text := "Work History:\n2020 - present\nLead Data Scientist, Globex\n"

	position, ok := extractLastPosition(text)
	if !ok || position != "Lead Data Scientist" {
		t.Errorf("position = %q, %v", position, ok)
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"region code preferred", "Jane Doe\nAustin, TX\n", "Austin, TX", true},
		{"headings skipped", "Experience\nBerlin\n", "Berlin", true},
		{"needs newline", "Berlin", "", false},
		{"lowercase ignored", "remote only\n", "", false},
		{"skills lines skipped", "Technologies\nPython Django\nExperience\nBerlin\n", "Berlin", true},
		{"skills region skipped", "Skills\nGo, TS\n\nEducation\nAustin, TX\n", "Austin, TX", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractLocation(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractLocation = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractExperienceYearRange(t *testing.T) {
	if got, ok := extractExperience("1899 2100 1900 2099"); !ok || got != "2 years" {
		t.Errorf("experience = %q, %v", got, ok)
	}
	if _, ok := extractExperience("no dates here"); ok {
		t.Error("expected no match")
	}
}

func TestRunStepRecoversAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	value, ok := runStep(logger, "boom", func(string) (string, bool) {
		panic("bad pattern")
	}, "text")

	if ok || value != "" {
		t.Errorf("expected zero value and false, got %q, %v", value, ok)
	}

	entries := logs.FilterField(zap.String("field", "boom")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}
