package treasure_test

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/testutil"
)

func scriptedRoller(faces ...int) (*dice.Roller, *testutil.ScriptedSource) {
	src := testutil.NewScriptedSource(faces...)
	return dice.NewLoggedRoller(src, zap.NewNop()), src
}

func seededRoller(seed int64) *dice.Roller {
	return dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
}

func ptr(n int) *int {
	return &n
}
