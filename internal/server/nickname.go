package server

import (
	"fmt"
	"math/rand/v2"
)

// 昵称词库，组合生成匿名观战者昵称
var (
	nicknameAdjectives = []string{
		"Swift", "Brave", "Calm", "Clever", "Eager",
		"Fierce", "Gentle", "Happy", "Jolly", "Keen",
		"Lucky", "Mighty", "Nimble", "Proud", "Quiet",
		"Rapid", "Sly", "Steady", "Witty", "Zesty",
	}

	nicknameAnimals = []string{
		"Fox", "Panda", "Tiger", "Otter", "Eagle",
		"Wolf", "Lynx", "Crane", "Koala", "Raven",
		"Shark", "Bison", "Gecko", "Heron", "Moose",
		"Puffin", "Rabbit", "Seal", "Toad", "Yak",
	}
)

// GenerateNickname 生成随机昵称，如 "SwiftFox42"
func GenerateNickname() string {
	adj := nicknameAdjectives[rand.IntN(len(nicknameAdjectives))]
	animal := nicknameAnimals[rand.IntN(len(nicknameAnimals))]
	return fmt.Sprintf("%s%s%d", adj, animal, rand.IntN(100))
}
