package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tip struct {
	text    string
	tags    []string
	section string
}

var studyTips = []tip{
	{text: "Skip plain re-reading; quiz yourself with active recall instead.", tags: []string{"memory", "science"}, section: "Methods"},
	{text: "Plan short focus blocks with breaks in between (Pomodoro).", tags: []string{"time", "pomodoro"}, section: "Organisation"},
	{text: "Use Cornell notes to structure lectures and revision.", tags: []string{"notes"}, section: "Note-taking"},
	{text: "Try several strategies and drop the ones that do not help.", tags: []string{"meta-learning"}, section: "Methods"},
}

// tipTags returns every tag used by tips, sorted and deduplicated.
func tipTags(tips []tip) []string {
	var out []string
	for _, t := range tips {
		out = append(out, t.tags...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// filterTips keeps tips carrying tag (any tag when empty) whose text
// contains query, case-insensitively.
func filterTips(tips []tip, query, tag string) []tip {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []tip
	for _, t := range tips {
		if tag != "" && !slices.Contains(t.tags, tag) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.text), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

type tipsModel struct {
	width  int
	height int

	search textinput.Model
	tags   []string
	tagIdx int // -1 means all tags
}

func newTipsModel() tipsModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search tips"
	ti.CharLimit = 64
	return tipsModel{
		search: ti,
		tags:   tipTags(studyTips),
		tagIdx: -1,
	}
}

func (t *tipsModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.search.Width = max(w-12, 10)
}

func (t tipsModel) searching() bool { return t.search.Focused() }

func (t tipsModel) tag() string {
	if t.tagIdx < 0 || t.tagIdx >= len(t.tags) {
		return ""
	}
	return t.tags[t.tagIdx]
}

func (t tipsModel) visible() []tip {
	return filterTips(studyTips, t.search.Value(), t.tag())
}

func (t tipsModel) update(msg tea.Msg) (tipsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if t.searching() {
		if ok && (key.Matches(km, keys.Enter) || key.Matches(km, keys.Back)) {
			t.search.Blur()
			return t, nil
		}
		var cmd tea.Cmd
		t.search, cmd = t.search.Update(msg)
		return t, cmd
	}
	if !ok {
		return t, nil
	}

	switch {
	case key.Matches(km, keys.Search):
		cmd := t.search.Focus()
		return t, cmd
	case key.Matches(km, keys.Tag):
		t.tagIdx++
		if t.tagIdx >= len(t.tags) {
			t.tagIdx = -1
		}
	case key.Matches(km, keys.Back):
		t.search.Reset()
		t.tagIdx = -1
	}
	return t, nil
}

func (t tipsModel) view() string {
	w := t.width - 4

	tagLabel := "all tags"
	if tag := t.tag(); tag != "" {
		tagLabel = tag
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Study tips"), "  ",
		mutedStyle.Render("tag: "), highlightStyle.Render(tagLabel),
	)

	rows := []string{header, "", t.search.View(), ""}

	tips := t.visible()
	if len(tips) == 0 {
		rows = append(rows, mutedStyle.Render("  No tips match."))
	}
	for _, tp := range tips {
		var tags []string
		for _, g := range tp.tags {
			tags = append(tags, tagStyle.Render(g))
		}
		rows = append(rows,
			mutedStyle.Render(tp.section),
			normalItemStyle.Render(tp.text),
			lipgloss.JoinHorizontal(lipgloss.Top, tags...),
			"",
		)
	}

	rows = append(rows, mutedStyle.Render("  /: search  t: next tag  esc: reset"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
