package play

import (
	"math/rand"

	"time"
)

// 乱数はサイコロ・ボックスのパワー抽選・カラー割り当てのフォールバックに使用
func createLocalRandGenerator() *rand.Rand {
	source := rand.NewSource(time.Now().UnixNano())
	return rand.New(source)
}
