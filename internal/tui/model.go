package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"homequest/internal/engine"
	"homequest/internal/storage"
	"homequest/internal/ui"
)

const noQuestKey = ""

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	profile  *engine.ProfileStatus
	quests   []storage.Quest
	missions []storage.Mission // pending only
	today    engine.Date

	collapsed map[string]bool // by quest id; noQuestKey for loose missions
	selected  int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile  *engine.ProfileStatus
	quests   []storage.Quest
	missions []storage.Mission
	err      error
}

type completedMsg struct {
	title string
	res   *engine.CompleteResult
	err   error
}

type tickedMsg struct {
	title string
	res   *engine.CountResult
	err   error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		collapsed: map[string]bool{},
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.Profile(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.QuestRepo().ListAll(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		missions, err := m.svc.ListMissions(m.ctx, engine.MissionFilter{Status: storage.StatusPending})
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{profile: p, quests: quests, missions: missions}
	}
}

func (m boardModel) completeCmd(mission storage.Mission) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteMission(m.ctx, mission.ID)
		return completedMsg{title: mission.Title, res: res, err: err}
	}
}

func (m boardModel) tickCmd(mission storage.Mission) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AddProgress(m.ctx, mission.ID, 1)
		return tickedMsg{title: mission.Title, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.quests = msg.quests
		m.missions = msg.missions
		m.today = m.svc.Today()
		m.selected = clampIndex(m.selected, len(m.boardLines()))
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = completionLog(msg.title, msg.res)
		return m, m.loadCmd()
	case tickedMsg:
		if msg.err != nil {
			m.lastLog = "Tick failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.Completed != nil {
			m.lastLog = completionLog(msg.title, msg.res.Completed)
		} else {
			m.lastLog = fmt.Sprintf("%s: %d/%d", msg.title, msg.res.Count, msg.res.Target)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.boardLines())-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			line, ok := m.selectedLine()
			if ok && line.mission == nil {
				m.collapsed[line.questID] = !m.collapsed[line.questID]
				m.selected = clampIndex(m.selected, len(m.boardLines()))
			}
			return m, nil
		case "c", " ":
			line, ok := m.selectedLine()
			if !ok || line.mission == nil {
				m.lastLog = "Select a mission to complete."
				return m, nil
			}
			if line.mission.TargetCount != nil {
				m.lastLog = "Counted mission: press t to add progress."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", line.mission.Title)
			return m, m.completeCmd(*line.mission)
		case "t":
			line, ok := m.selectedLine()
			if !ok || line.mission == nil || line.mission.TargetCount == nil {
				m.lastLog = "Select a counted mission to tick."
				return m, nil
			}
			return m, m.tickCmd(*line.mission)
		}
	}
	return m, nil
}

func completionLog(title string, res *engine.CompleteResult) string {
	s := fmt.Sprintf("Completed %s: +%d XP (level %d → %d)", title, res.XPAwarded, res.LevelBefore, res.LevelAfter)
	if res.LevelUp {
		s += " " + ui.BadgeLevelUp
	}
	if res.NextDueDate != "" {
		s += ", next due " + res.NextDueDate
	}
	return s
}

// boardLine is either a quest group header (mission == nil) or a mission.
type boardLine struct {
	questID string
	title   string
	count   int
	mission *storage.Mission
}

// boardLines groups pending missions under their quests, in quest creation
// order, followed by missions without a quest.
func (m boardModel) boardLines() []boardLine {
	groups := map[string][]*storage.Mission{}
	for i := range m.missions {
		key := noQuestKey
		if m.missions[i].QuestID != nil {
			key = *m.missions[i].QuestID
		}
		groups[key] = append(groups[key], &m.missions[i])
	}
	for _, ms := range groups {
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Position < ms[j].Position })
	}

	var out []boardLine
	add := func(id, title string) {
		ms := groups[id]
		if len(ms) == 0 {
			return
		}
		out = append(out, boardLine{questID: id, title: title, count: len(ms)})
		if m.collapsed[id] {
			return
		}
		for _, mission := range ms {
			out = append(out, boardLine{questID: id, title: mission.Title, mission: mission})
		}
	}
	for _, q := range m.quests {
		add(q.ID, q.Title)
	}
	add(noQuestKey, "Loose missions")
	return out
}

func (m boardModel) selectedLine() (boardLine, bool) {
	lines := m.boardLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return boardLine{}, false
	}
	return lines[m.selected], true
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 26
	if m.width > 0 {
		leftW = max(min(leftW, m.width/2), 18)
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.profile == nil {
		return "HomeQuest | loading…"
	}
	p := m.profile.Progress
	return fmt.Sprintf("HomeQuest | Level %d | XP %d %s %d/%d",
		m.profile.Level, m.profile.Profile.TotalXP, progressBar(p.Current, p.Required, 30), p.Current, p.Required)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Rooms"}
	rooms := map[string]int{}
	for i := range m.missions {
		room := m.missions[i].Room
		if room == "" {
			room = "(none)"
		}
		rooms[room]++
	}
	names := make([]string, 0, len(rooms))
	for name := range rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s: %d", name, rooms[name]))
	}
	if len(names) == 0 {
		lines = append(lines, "- all clear")
	}
	lines = append(lines,
		"",
		"Keys",
		"- ↑/↓ or j/k: move",
		"- enter: fold quest",
		"- c/space: complete",
		"- t: tick counted",
		"- r: refresh",
		"- q: quit",
	)
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Today"}
	focus := m.focusMissions(3)
	if len(focus) == 0 {
		out = append(out, "(nothing due)")
	}
	for _, f := range focus {
		mark := ""
		if engine.IsOverdue(&f, m.today) {
			mark = " !"
		}
		out = append(out, fmt.Sprintf("- %s (due %s)%s", f.Title, *f.DueDate, mark))
	}
	out = append(out, "", "Missions")

	lines := m.boardLines()
	if len(lines) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, line := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		if line.mission == nil {
			fold := "▾ "
			if m.collapsed[line.questID] {
				fold = "▸ "
			}
			out = append(out, fmt.Sprintf("%s%s%s (%d)", cursor, fold, line.title, line.count))
			continue
		}
		out = append(out, cursor+"    "+missionLabel(line.mission, m.today))
	}
	return strings.Join(out, "\n")
}

func missionLabel(mission *storage.Mission, today engine.Date) string {
	tag := "[E]"
	switch mission.Difficulty {
	case "medium":
		tag = "[M]"
	case "hard":
		tag = "[H]"
	}
	if mission.Recurrence.Pattern != "" && mission.Recurrence.Pattern != string(engine.PatternNone) {
		tag += "[R]"
	}
	if mission.IsDaily {
		tag += "[D]"
	}
	s := tag + " " + mission.Title
	if mission.TargetCount != nil {
		s += fmt.Sprintf(" %d/%d", mission.CountProgress, *mission.TargetCount)
	}
	if engine.IsOverdue(mission, today) {
		s += " (overdue)"
	}
	return s
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

// focusMissions returns up to n dated missions due today or earlier, oldest first.
func (m boardModel) focusMissions(n int) []storage.Mission {
	var due []storage.Mission
	for _, mission := range m.missions {
		if mission.DueDate == nil || *mission.DueDate > m.today.String() {
			continue
		}
		due = append(due, mission)
	}
	engine.SortMissions(due, engine.SortByDue)
	if len(due) > n {
		due = due[:n]
	}
	return due
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	value = min(max(value, 0), total)
	filled := min(int(float64(value)/float64(total)*float64(width)), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
