package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap 键位绑定
type KeyMap struct {
	SeatOne  key.Binding
	SeatTwo  key.Binding
	Rock     key.Binding
	Paper    key.Binding
	Scissors key.Binding
	Leave    key.Binding
	History  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap 默认键位
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SeatOne: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "坐下 1 号位"),
		),
		SeatTwo: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "坐下 2 号位"),
		),
		Rock: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "石头"),
		),
		Paper: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "布"),
		),
		Scissors: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "剪刀"),
		),
		Leave: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "离座"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "回合记录"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "退出"),
		),
	}
}
