package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Room はゲーム1部屋分の全状態を表す共有ドキュメント。
// Redis上に1ルームコードにつき1つのJSON値として保存され、
// すべての操作は楽観的トランザクション内でこの構造体を書き換える。
type Room struct {
	Status       string    `json:"status"`                // "lobby", "placing", "playing", "finished"
	HostID       uint      `json:"hostId"`                // ルーム作成者。フェーズ変更・リセット・削除の権限を持つ
	TurnIndex    int       `json:"turnIndex"`             // Players内の手番インデックス（読み手側で正規化する）
	CreatedAt    int64     `json:"createdAt"`             // UnixMilli
	Players      []Player  `json:"players"`               // 参加順＝手番順。並べ替えは行わない
	LastRoll     int       `json:"lastRoll,omitempty"`    // 直近のサイコロの目（1〜6）、0は未ロール
	LastActor    uint      `json:"lastActor,omitempty"`   // 直近にロールしたプレイヤー
	Anim         *Anim     `json:"anim,omitempty"`        // 移動アニメーション中はnil以外。次のロールをブロックする
	BoxLockedBy  uint      `json:"boxLockedBy,omitempty"` // 0以外の間はボックス取得が全員分停止される
	LastReaction *Reaction `json:"lastReaction,omitempty"`
}

// Player はルーム内の1プレイヤー分の状態。
type Player struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Color        string     `json:"color"` // パレットから割り当て。現参加者内でユニーク（ベストエフォート）
	Pos          int        `json:"pos"`   // 盤上マス [1,100]。1=スタート、100=ゴール
	Ready        bool       `json:"ready"` // placingフェーズでのみ意味を持つ
	Placements   Placements `json:"placements"`
	HeldPower    string     `json:"heldPower,omitempty"` // 所持パワーは同時に1つまで
	Shield       bool       `json:"shield"`              // 次のヘビを1回だけ無効化
	TempBoost    bool       `json:"tempBoost"`           // 次のロールに+2（上限6）
	TempReroll   bool       `json:"tempReroll"`          // 次のロールを2回振って高い方
	TempMiniLeap bool       `json:"tempMiniLeap"`        // 次のロール前に+6マス
}

// Placements はプレイヤー1人が設置したハシゴ・ヘビ・ミステリーボックス。
// ハシゴ2・ヘビ2・ボックス1が上限。
type Placements struct {
	Ladders []Link      `json:"ladders"`
	Snakes  []Link      `json:"snakes"`
	Box     *MysteryBox `json:"box,omitempty"`
}

// Link はハシゴとヘビ共通の形（始点マスと終点マス）。
// ハシゴは To > From、ヘビは To < From であること。
type Link struct {
	ID   string `json:"id"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// MysteryBox は設置者が選んだマスに置かれ、止まったプレイヤーにパワーを与える。
// Powerが空の場合は取得時にランダムで決まる。
type MysteryBox struct {
	Cell  int    `json:"cell"`
	Power string `json:"power,omitempty"`
}

// Anim は進行中の移動アニメーションの記述子。
// 期限切れ判定はクライアントの読み取り時に遅延評価される（game.AnimExpired）。
type Anim struct {
	ActorID uint  `json:"actorId"`
	Path    []int `json:"path"`  // 盤上マスの列。1マスずつの移動を表す
	Start   int64 `json:"start"` // UnixMilli
}

// Reaction は絵文字リアクションやパワー使用通知などのUI向け一時イベント。
type Reaction struct {
	PlayerName string `json:"playerName"`
	Emoji      string `json:"emoji"`
	Timestamp  int64  `json:"timestamp"` // UnixMilli
	Text       string `json:"text,omitempty"`
}

// UnmarshalJSON はスキーマ変遷で生じた旧形式（[from,to]の配列、ボックスがマス番号のみ）を
// 読み込み時に正規化する。形状分岐はここで一度だけ行い、以降のロジックは正準形だけを扱う。
func (p *Placements) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ladders  []json.RawMessage `json:"ladders"`
		Snakes   []json.RawMessage `json:"snakes"`
		Box      json.RawMessage   `json:"box"`
		BoxPower string            `json:"boxPower"` // 旧形式でボックスと並置されていたフィールド
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ladders, err := normalizeLinks(raw.Ladders)
	if err != nil {
		return err
	}
	snakes, err := normalizeLinks(raw.Snakes)
	if err != nil {
		return err
	}
	p.Ladders = ladders
	p.Snakes = snakes

	p.Box = nil
	if len(raw.Box) > 0 && string(raw.Box) != "null" {
		if raw.Box[0] == '{' {
			var box MysteryBox
			if err := json.Unmarshal(raw.Box, &box); err != nil {
				return err
			}
			p.Box = &box
		} else {
			// 旧形式: マス番号のみ。パワーは並置フィールドかデフォルトのBOOST
			var cell int
			if err := json.Unmarshal(raw.Box, &cell); err != nil {
				return err
			}
			power := raw.BoxPower
			if power == "" {
				power = "BOOST"
			}
			p.Box = &MysteryBox{Cell: cell, Power: power}
		}
	}
	return nil
}

func normalizeLinks(items []json.RawMessage) ([]Link, error) {
	links := make([]Link, 0, len(items))
	for _, item := range items {
		if len(item) > 0 && item[0] == '[' {
			// 旧形式: [from, to] のペア。IDはここで採番する
			var pair [2]int
			if err := json.Unmarshal(item, &pair); err != nil {
				return nil, err
			}
			links = append(links, Link{ID: uuid.NewString(), From: pair[0], To: pair[1]})
			continue
		}
		var link Link
		if err := json.Unmarshal(item, &link); err != nil {
			return nil, err
		}
		if link.ID == "" {
			link.ID = uuid.NewString()
		}
		links = append(links, link)
	}
	return links, nil
}
