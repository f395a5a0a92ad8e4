package game

import (
	"sync"
	"time"
)

// NumSeats 座位数量，本游戏固定两个座位
const NumSeats = 2

// DefaultResultDisplay 回合结果的默认展示时长
const DefaultResultDisplay = 3 * time.Second

// Seat 被占用的座位
type Seat struct {
	OccupantID string // 占座连接的 ID，连接生命周期内不变
	Name       string // 占座玩家昵称
	Choice     Choice // 本回合手势，未出时为空
}

// SeatView 座位状态的只读副本
type SeatView struct {
	OccupantID string
	Name       string
	Choice     Choice
}

// Snapshot 会话状态的一致性快照，供广播使用
type Snapshot struct {
	Seats  [NumSeats]*SeatView
	Round  int
	Result string // 仅在结果展示窗口期间非空
}

// RoundRecord 一次已结算回合的记录
type RoundRecord struct {
	Round    int
	Choices  [NumSeats]Choice
	Result   string
	PlayedAt time.Time
}

// Session 进程内唯一的权威游戏状态
//
// 所有变更操作都由同一把互斥锁串行化，锁内不做任何 I/O；
// 变更通知与回合结算回调都在解锁后携带快照副本触发。
// 非法或当前不允许的请求一律静默忽略，不改状态也不触发广播。
type Session struct {
	mu            sync.Mutex
	seats         [NumSeats]*Seat
	round         int
	result        string
	resultDisplay time.Duration

	onChange  func(Snapshot)
	onResolve func(RoundRecord)
}

// NewSession 创建会话，resultDisplay 为结果展示时长（到期后清空手势）
func NewSession(resultDisplay time.Duration) *Session {
	if resultDisplay <= 0 {
		resultDisplay = DefaultResultDisplay
	}
	return &Session{resultDisplay: resultDisplay}
}

// SetOnChange 注册状态变更回调，每次有效变更（含定时重置）后触发
func (s *Session) SetOnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetOnResolve 注册回合结算回调
func (s *Session) SetOnResolve(fn func(RoundRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResolve = fn
}

// Join 占用指定座位
// 座位号越界、座位已被占、或该连接已占另一座位时为静默 no-op
func (s *Session) Join(occupantID, name string, seat int) bool {
	if seat < 0 || seat >= NumSeats {
		return false
	}

	s.mu.Lock()
	if s.seats[seat] != nil || s.seatIndexLocked(occupantID) != -1 {
		s.mu.Unlock()
		return false
	}
	s.seats[seat] = &Seat{OccupantID: occupantID, Name: name}
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	return true
}

// Leave 释放该连接占用的座位，未占座时为 no-op
// 不影响另一座位的手势，也不影响回合计数
func (s *Session) Leave(occupantID string) bool {
	s.mu.Lock()
	idx := s.seatIndexLocked(occupantID)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	s.seats[idx] = nil
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	return true
}

// Disconnect 连接断开时释放座位，语义与 Leave 完全一致
func (s *Session) Disconnect(occupantID string) bool {
	return s.Leave(occupantID)
}

// Submit 提交本回合手势
// 未占座或手势非法时为静默 no-op；两个座位都已出手时立即结算：
// 计算结果文案、回合数 +1，并安排展示期结束后的定时重置
func (s *Session) Submit(occupantID string, choice Choice) bool {
	if _, ok := ParseChoice(string(choice)); !ok {
		return false
	}

	s.mu.Lock()
	idx := s.seatIndexLocked(occupantID)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	s.seats[idx].Choice = choice

	var record *RoundRecord
	if s.bothChosenLocked() {
		record = s.resolveLocked()
	}
	snap, notify, resolve := s.snapshotLocked(), s.onChange, s.onResolve
	s.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	if record != nil && resolve != nil {
		resolve(*record)
	}
	return true
}

// Snapshot 返回当前状态的一致性快照
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Round 返回当前回合数
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// --- 内部实现，调用方必须持有 s.mu ---

func (s *Session) seatIndexLocked(occupantID string) int {
	for i, seat := range s.seats {
		if seat != nil && seat.OccupantID == occupantID {
			return i
		}
	}
	return -1
}

func (s *Session) bothChosenLocked() bool {
	for _, seat := range s.seats {
		if seat == nil || seat.Choice == "" {
			return false
		}
	}
	return true
}

// resolveLocked 结算当前回合并安排定时重置
// 重置定时器绑定结算后的回合数，触发时若回合已前进则跳过，
// 保证旧回合的重置不会清掉新回合已提交的手势
func (s *Session) resolveLocked() *RoundRecord {
	choices := [NumSeats]Choice{s.seats[0].Choice, s.seats[1].Choice}
	s.result = ResolveResult(choices[0], choices[1])
	s.round++

	target := s.round
	time.AfterFunc(s.resultDisplay, func() {
		s.applyReset(target)
	})

	return &RoundRecord{
		Round:    target,
		Choices:  choices,
		Result:   s.result,
		PlayedAt: time.Now(),
	}
}

// applyReset 展示期结束后清空双方手势与结果文案
// 不动座位占用，也不动回合数；座位已空时清空自然是 no-op
func (s *Session) applyReset(target int) {
	s.mu.Lock()
	if s.round != target || s.result == "" {
		s.mu.Unlock()
		return
	}
	for _, seat := range s.seats {
		if seat != nil {
			seat.Choice = ""
		}
	}
	s.result = ""
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Round: s.round, Result: s.result}
	for i, seat := range s.seats {
		if seat != nil {
			snap.Seats[i] = &SeatView{
				OccupantID: seat.OccupantID,
				Name:       seat.Name,
				Choice:     seat.Choice,
			}
		}
	}
	return snap
}
