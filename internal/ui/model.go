package ui

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/roshambo/internal/client"
	"github.com/palemoky/roshambo/internal/protocol"
	"github.com/palemoky/roshambo/internal/sound"
)

// 游戏阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseWatching
	PhaseSeated
	PhaseDisconnected
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectingMsg 正在重连消息
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg 重连成功消息
type ReconnectSuccessMsg struct{}

// DisconnectedMsg 连接关闭消息
type DisconnectedMsg struct{}

// LatencyMsg 延迟更新消息
type LatencyMsg struct {
	Latency int64
}

// ClearErrorMsg 清除错误提示消息
type ClearErrorMsg struct{}

// Model 客户端主 model
type Model struct {
	client *client.Client
	keys   KeyMap
	phase  GamePhase
	error  string

	// 玩家信息
	playerID   string
	playerName string

	// 对局状态（服务器快照的本地镜像）
	state protocol.GameStatePayload

	// 回合记录
	history     []protocol.RoundEntry
	showHistory bool

	// 网络状态
	latency          int64
	onlineCount      int
	reconnecting     bool
	reconnectAttempt int
	reconnectMax     int

	// 消息通道，回调通过它把事件送进 Bubble Tea 循环
	msgChan chan tea.Msg

	soundManager *sound.SoundManager
	spinner      spinner.Model
	width        int
	height       int
}

// NewModel 创建客户端 model
func NewModel(serverURL string) *Model {
	c := client.NewClient(serverURL)
	msgChan := make(chan tea.Msg, 64)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		client:       c,
		keys:         DefaultKeyMap(),
		phase:        PhaseConnecting,
		msgChan:      msgChan,
		soundManager: sound.NewSoundManager(),
		spinner:      sp,
	}

	// 网络回调统一走 channel 进入 Update 循环
	c.OnMessage = func(msg *protocol.Message) {
		select {
		case msgChan <- ServerMessage{Msg: msg}:
		default:
		}
	}
	c.OnReconnecting = func(attempt, max int) {
		select {
		case msgChan <- ReconnectingMsg{Attempt: attempt, MaxTries: max}:
		default:
		}
	}
	c.OnReconnect = func() {
		select {
		case msgChan <- ReconnectSuccessMsg{}:
		default:
		}
	}
	c.OnClose = func() {
		select {
		case msgChan <- DisconnectedMsg{}:
		default:
		}
	}
	c.OnLatencyUpdate = func(latency int64) {
		select {
		case msgChan <- LatencyMsg{Latency: latency}:
		default:
		}
	}

	return m
}

// Init 启动连接
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.connect(), m.waitForMessage(), m.spinner.Tick)
}

// connect 建立 WebSocket 连接
func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		m.client.StartHeartbeat()
		return ConnectedMsg{}
	}
}

// waitForMessage 等待下一条网络事件
func (m *Model) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		return <-m.msgChan
	}
}

// clearErrorLater 几秒后清除错误提示
func clearErrorLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// Update 处理消息
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnectedMsg:
		m.phase = PhaseWatching
		_ = m.soundManager.Init()
		_ = m.client.GetOnlineCount()
		return m, m.waitForMessage()

	case ConnectionErrorMsg:
		m.phase = PhaseDisconnected
		m.error = msg.Err.Error()
		return m, m.waitForMessage()

	case ReconnectingMsg:
		m.reconnecting = true
		m.reconnectAttempt = msg.Attempt
		m.reconnectMax = msg.MaxTries
		return m, m.waitForMessage()

	case ReconnectSuccessMsg:
		// 服务器会下发新身份和最新快照
		m.reconnecting = false
		m.phase = PhaseWatching
		return m, m.waitForMessage()

	case DisconnectedMsg:
		m.phase = PhaseDisconnected
		return m, m.waitForMessage()

	case LatencyMsg:
		m.latency = msg.Latency
		return m, m.waitForMessage()

	case ServerMessage:
		return m.handleServerMessage(msg.Msg)

	case ClearErrorMsg:
		m.error = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey 处理键盘输入
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.soundManager.Close()
		m.client.Close()
		return m, tea.Quit
	}

	// 记录面板打开时任意键关闭
	if m.showHistory {
		m.showHistory = false
		return m, nil
	}

	if m.phase != PhaseWatching && m.phase != PhaseSeated {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.SeatOne):
		return m.sendAction(func() error { return m.client.JoinSeat(0) })
	case key.Matches(msg, m.keys.SeatTwo):
		return m.sendAction(func() error { return m.client.JoinSeat(1) })
	case key.Matches(msg, m.keys.Rock):
		return m.sendChoice("rock")
	case key.Matches(msg, m.keys.Paper):
		return m.sendChoice("paper")
	case key.Matches(msg, m.keys.Scissors):
		return m.sendChoice("scissors")
	case key.Matches(msg, m.keys.Leave):
		return m.sendAction(m.client.LeaveSeat)
	case key.Matches(msg, m.keys.History):
		return m.sendAction(func() error { return m.client.GetHistory(10) })
	}

	return m, nil
}

// sendChoice 出手势，带音效
func (m *Model) sendChoice(choice string) (tea.Model, tea.Cmd) {
	if m.phase != PhaseSeated {
		return m, nil
	}
	m.soundManager.Play("click")
	return m.sendAction(func() error { return m.client.MakeChoice(choice) })
}

// sendAction 执行网络操作并显示错误
func (m *Model) sendAction(fn func() error) (tea.Model, tea.Cmd) {
	if err := fn(); err != nil {
		m.error = err.Error()
		return m, clearErrorLater()
	}
	return m, nil
}

// handleServerMessage 处理服务器下发的消息
func (m *Model) handleServerMessage(msg *protocol.Message) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case protocol.MsgConnected:
		var payload protocol.ConnectedPayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.playerID = payload.PlayerID
			m.playerName = payload.PlayerName
		}

	case protocol.MsgGameState:
		var payload protocol.GameStatePayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.applyState(payload)
		}

	case protocol.MsgHistoryResult:
		var payload protocol.HistoryResultPayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.history = payload.Entries
			m.showHistory = true
		}

	case protocol.MsgOnlineCount:
		var payload protocol.OnlineCountPayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.onlineCount = payload.Count
		}

	case protocol.MsgError:
		var payload protocol.ErrorPayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.error = payload.Message
			return m, tea.Batch(m.waitForMessage(), clearErrorLater())
		}
	}

	return m, m.waitForMessage()
}

// applyState 应用服务器快照并更新本地阶段
func (m *Model) applyState(state protocol.GameStatePayload) {
	prevResult := m.state.Result
	m.state = state

	seated := false
	for _, seat := range state.Seats {
		if seat != nil && seat.ID == m.playerID {
			seated = true
			break
		}
	}
	if seated {
		m.phase = PhaseSeated
	} else if m.phase == PhaseSeated {
		m.phase = PhaseWatching
	}

	// 回合刚结算时播放音效
	if state.Result != "" && state.Result != prevResult {
		m.playResultSound(state.Result)
	}
}

// playResultSound 按照视角播放胜负音效
func (m *Model) playResultSound(result string) {
	mySeat := -1
	for i, seat := range m.state.Seats {
		if seat != nil && seat.ID == m.playerID {
			mySeat = i
			break
		}
	}

	switch {
	case result == "It's a tie!":
		m.soundManager.Play("tie")
	case mySeat == 0 && result == "Player 1 wins!",
		mySeat == 1 && result == "Player 2 wins!":
		m.soundManager.Play("win")
	case mySeat >= 0:
		m.soundManager.Play("lose")
	default:
		m.soundManager.Play("tie")
	}
}
