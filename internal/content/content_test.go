package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasneemkhan/portfolio/internal/icons"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	assert.Len(t, tables.Skills, 6)
	assert.Len(t, tables.Projects, 3)
	assert.Len(t, tables.Experience, 4)
	assert.Equal(t, "Tasneem Khan", tables.Profile.Name)
}

func TestTableOrder(t *testing.T) {
	assert.Equal(t, "JavaScript/TypeScript", Skills()[0].Name)
	assert.Equal(t, 95, Skills()[0].Level)
	assert.Equal(t, "E-Commerce Platform", Projects()[0].Title)
	assert.Equal(t, "AI-Powered Analytics Dashboard", Projects()[2].Title)
	assert.Equal(t, "3Di Systems Solutions Pvt. Ltd.", Experiences()[0].Company)
	assert.Equal(t, "Internship", Experiences()[3].Position)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := Skills()
	s[0].Level = 1
	assert.Equal(t, 95, Skills()[0].Level)

	p := Projects()
	p[0].Tech[0] = "Vue"
	assert.Equal(t, "React", Projects()[0].Tech[0])

	e := Experiences()
	e[0].Company = "elsewhere"
	assert.Equal(t, "3Di Systems Solutions Pvt. Ltd.", Experiences()[0].Company)
}

func TestLevelsInRange(t *testing.T) {
	for _, s := range Skills() {
		assert.GreaterOrEqual(t, s.Level, 0, s.Name)
		assert.LessOrEqual(t, s.Level, 100, s.Name)
	}
}

func TestEveryGlyphResolves(t *testing.T) {
	for _, s := range Skills() {
		assert.True(t, icons.Has(s.Icon), "skill %s references %s", s.Name, s.Icon)
	}
	for _, l := range DefaultProfile().Socials {
		assert.True(t, icons.Has(l.Icon), "social %s references %s", l.Label, l.Icon)
	}
}

func validTables(t *testing.T) Tables {
	t.Helper()
	tables, err := Load()
	require.NoError(t, err)
	return tables
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tables)
		wantMsg string
	}{
		{
			name:    "level above 100",
			mutate:  func(tb *Tables) { tb.Skills[1].Level = 101 },
			wantMsg: "skill at index 1",
		},
		{
			name:    "negative level",
			mutate:  func(tb *Tables) { tb.Skills[0].Level = -1 },
			wantMsg: "skill at index 0",
		},
		{
			name:    "missing glyph",
			mutate:  func(tb *Tables) { tb.Skills[2].Icon = "rocket" },
			wantMsg: "skill at index 2",
		},
		{
			name:    "empty tech",
			mutate:  func(tb *Tables) { tb.Projects[1].Tech = nil },
			wantMsg: "project at index 1",
		},
		{
			name:    "blank tech entry",
			mutate:  func(tb *Tables) { tb.Projects[0].Tech = []string{"Go", ""} },
			wantMsg: "project at index 0",
		},
		{
			name:    "missing company",
			mutate:  func(tb *Tables) { tb.Experience[3].Company = "" },
			wantMsg: "experience at index 3",
		},
		{
			name:    "profile social with unknown glyph",
			mutate:  func(tb *Tables) { tb.Profile.Socials[0].Icon = "twitter" },
			wantMsg: "profile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := validTables(t)
			tt.mutate(&tables)
			err := tables.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBoundaryLevelsAccepted(t *testing.T) {
	tables := validTables(t)
	tables.Skills[0].Level = 0
	tables.Skills[1].Level = 100
	assert.NoError(t, tables.Validate())
}

func TestProfileLinks(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "mailto:alex@example.com", p.MailTo())

	contact := p.ContactSocials()
	require.Len(t, contact, 2)
	assert.Equal(t, icons.Github, contact[0].Icon)
	assert.Equal(t, icons.Linkedin, contact[1].Icon)
}

func TestDefaultProfileIsACopy(t *testing.T) {
	p := DefaultProfile()
	p.About[0] = "rewritten"
	p.Socials[0].Href = "https://example.org"

	fresh := DefaultProfile()
	assert.Contains(t, fresh.About[0], "passionate software engineer")
	assert.Equal(t, "#", fresh.Socials[0].Href)
}
