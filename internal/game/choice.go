package game

// Choice 表示玩家出的手势
type Choice string

const (
	ChoiceRock     Choice = "rock"
	ChoicePaper    Choice = "paper"
	ChoiceScissors Choice = "scissors"
)

// 回合结果文案
const (
	ResultTie      = "It's a tie!"
	ResultSeatAWin = "Player 1 wins!"
	ResultSeatBWin = "Player 2 wins!"
)

// ParseChoice 校验并解析手势，未知值一律拒绝，不做任何兜底转换
func ParseChoice(s string) (Choice, bool) {
	switch Choice(s) {
	case ChoiceRock, ChoicePaper, ChoiceScissors:
		return Choice(s), true
	}
	return "", false
}

// Beats 判断 c 是否克制 other
func (c Choice) Beats(other Choice) bool {
	switch c {
	case ChoiceRock:
		return other == ChoiceScissors
	case ChoicePaper:
		return other == ChoiceRock
	case ChoiceScissors:
		return other == ChoicePaper
	}
	return false
}

// ResolveResult 根据两个座位的手势计算回合结果文案
// a 为 0 号座位（Player 1），b 为 1 号座位（Player 2）
func ResolveResult(a, b Choice) string {
	if a == b {
		return ResultTie
	}
	if a.Beats(b) {
		return ResultSeatAWin
	}
	return ResultSeatBWin
}
