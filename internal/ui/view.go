package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View 渲染界面
func (m *Model) View() string {
	switch m.phase {
	case PhaseConnecting:
		return docStyle.Render(fmt.Sprintf("%s 正在连接服务器...", m.spinner.View()))
	case PhaseDisconnected:
		return docStyle.Render(m.viewDisconnected())
	default:
		return docStyle.Render(m.viewGame())
	}
}

func (m *Model) viewDisconnected() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("❌ 连接已断开"))
	if m.error != "" {
		b.WriteString("\n" + errorStyle.Render(m.error))
	}
	b.WriteString("\n" + hintStyle.Render("按 q 退出"))
	return b.String()
}

func (m *Model) viewGame() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("✊ ✋ ✌️  猜拳对决"))
	b.WriteString("\n\n")

	// 两个座位并排显示
	seats := make([]string, 0, 2)
	for i := range m.state.Seats {
		seats = append(seats, m.renderSeat(i))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, seats[0], "  ", seats[1]))
	b.WriteString("\n")

	if m.state.Result != "" {
		b.WriteString(resultStyle.Render("🏆 " + m.state.Result))
		b.WriteString("\n")
	}

	if m.reconnecting {
		b.WriteString(errorStyle.Render(fmt.Sprintf("🔄 正在重连 (%d/%d)...", m.reconnectAttempt, m.reconnectMax)))
		b.WriteString("\n")
	}
	if m.error != "" {
		b.WriteString(errorStyle.Render("⚠️ " + m.error))
		b.WriteString("\n")
	}

	if m.showHistory {
		b.WriteString("\n" + m.renderHistory() + "\n")
	}

	b.WriteString(hintStyle.Render(m.helpLine()))
	b.WriteString("\n" + statusStyle.Render(m.statusLine()))

	return b.String()
}

// renderSeat 渲染单个座位
func (m *Model) renderSeat(i int) string {
	seat := m.state.Seats[i]
	title := fmt.Sprintf("%d 号位", i+1)

	if seat == nil {
		return seatStyle.Render(fmt.Sprintf("%s\n%s\n空位", title, EmptyIcon))
	}

	icon := choiceIcon(seat.Choice)
	if icon == "" {
		if seat.Chosen {
			icon = HiddenIcon
		} else {
			icon = "…"
		}
	}

	style := seatStyle
	name := seat.Name
	if seat.ID == m.playerID {
		style = mySeatStyle
		name += " (我)"
	}

	return style.Render(fmt.Sprintf("%s\n%s\n%s", title, icon, name))
}

// renderHistory 渲染回合记录面板
func (m *Model) renderHistory() string {
	if len(m.history) == 0 {
		return boxStyle.Render("暂无回合记录")
	}

	var b strings.Builder
	b.WriteString("最近回合\n")
	for _, entry := range m.history {
		playedAt := time.Unix(entry.PlayedAt, 0).Format("15:04:05")
		b.WriteString(fmt.Sprintf("#%d  %s vs %s  %s  (%s)\n",
			entry.Round,
			choiceIcon(entry.Choices[0]),
			choiceIcon(entry.Choices[1]),
			entry.Result,
			playedAt,
		))
	}
	b.WriteString("按任意键关闭")
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// helpLine 按当前阶段给出可用按键
func (m *Model) helpLine() string {
	if m.phase == PhaseSeated {
		return "[r]石头 [p]布 [s]剪刀 [l]离座 [h]记录 [q]退出"
	}
	return "[1/2]坐下 [h]记录 [q]退出"
}

// statusLine 连接状态栏
func (m *Model) statusLine() string {
	parts := []string{fmt.Sprintf("昵称: %s", m.playerName)}
	if m.onlineCount > 0 {
		parts = append(parts, fmt.Sprintf("在线: %d", m.onlineCount))
	}
	if m.latency > 0 {
		parts = append(parts, fmt.Sprintf("延迟: %dms", m.latency))
	}
	return strings.Join(parts, "  |  ")
}
