package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveReward_ExplicitReward(t *testing.T) {
	h := &Habit{Action: "Бег по утрам", Reward: "шоколадка"}

	got := ResolveReward(h)

	assert.Equal(t, "Вознаграждение: шоколадка", got)
}

func TestResolveReward_LinkedPleasantHabit(t *testing.T) {
	h := &Habit{
		Action:       "Бег по утрам",
		LinkedAction: &Habit{Action: "Выпить какао", IsPleasant: true},
	}

	got := ResolveReward(h)

	assert.Equal(t, "Связанная приятная привычка: Выпить какао", got)
}

func TestResolveReward_NoReward(t *testing.T) {
	h := &Habit{Action: "Бег по утрам"}

	assert.Equal(t, NoRewardMessage, ResolveReward(h))
}
