package game

// エラー分類。ValidationErrorは入力自体の不備、PreconditionErrorは
// フェーズ・手番・権限などの状態条件の不成立を表す。どちらも
// トランザクション全体を中断させ、部分的な書き込みは残らない。

// ValidationError は入力の形や範囲の誤り（不正なマス、設置上限超過など）。
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PreconditionError は状態前提の不成立（フェーズ違い、手番違い、ホスト以外など）。
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

var (
	ErrRoomNotFound = &PreconditionError{Msg: "Room not found"}
	ErrRoomFull     = &PreconditionError{Msg: "Room is full"}
	ErrNotHost      = &PreconditionError{Msg: "Only host can do this"}
)
