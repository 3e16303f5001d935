package game

import (
	"log"

	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
)

// Cue 反馈音效请求
type Cue int

const (
	CueSuccess Cue = iota // 命中（清除卡片或漂浮元素）
	CueFail               // 未命中
)

// String 返回音效名称
func (c Cue) String() string {
	switch c {
	case CueSuccess:
		return "success"
	case CueFail:
		return "fail"
	default:
		return "unknown"
	}
}

// CuePlayer 播放反馈音效
// 播放失败只记录日志，不影响分数和状态
type CuePlayer interface {
	PlayCue(cue Cue) error
}

// SignalKind 对外输出的信号类型
type SignalKind int

const (
	SignalCardHit       SignalKind = iota // 卡片被命中（ID = 卡片ID）
	SignalEntityCleared                   // 漂浮元素被清除（ID = 元素ID）
	SignalMiss                            // 精灵未命中任何卡片
)

// String 返回信号名称
func (k SignalKind) String() string {
	switch k {
	case SignalCardHit:
		return "card-hit"
	case SignalEntityCleared:
		return "entity-cleared"
	case SignalMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Signal 一次用户交互的外部可见结果
type Signal struct {
	Kind  SignalKind
	ID    ecs.EntityID // SignalMiss 时为 0
	Score int          // 信号发出时的分数
}

// HitSource 命中来源
type HitSource struct {
	Kind SignalKind // SignalCardHit 或 SignalEntityCleared
	ID   ecs.EntityID
}

// CardSource 卡片命中来源
func CardSource(id ecs.EntityID) HitSource {
	return HitSource{Kind: SignalCardHit, ID: id}
}

// FloatingSource 漂浮元素命中来源
func FloatingSource(id ecs.EntityID) HitSource {
	return HitSource{Kind: SignalEntityCleared, ID: id}
}

// GameState 游戏状态
//
// 持有分数和目标卡片集合，是分数的唯一写入者。
// 分数只增不减：每次确认的命中 +1，未命中不变。
// 卡片可见性只能由 HideCard 从 true 改为 false。
type GameState struct {
	score int
	cards *ecs.EntityManager[*components.TargetCardComponent]

	cues      CuePlayer
	listeners map[int]func(Signal)
	order     []int
	nextToken int
}

// NewGameState 创建游戏状态
//
// 参数：
//   - cards: 卡片配置（ID 为 1..N）
//   - cues: 音效播放器，可为 nil（静音）
func NewGameState(cards []config.CardConfig, cues CuePlayer) *GameState {
	gs := &GameState{
		cards:     ecs.NewEntityManager[*components.TargetCardComponent](),
		cues:      cues,
		listeners: make(map[int]func(Signal)),
	}
	for _, c := range cards {
		id := ecs.EntityID(c.ID)
		if !gs.cards.AddEntity(id, components.NewTargetCard(id, c.Title(), c.ImageRef, c.Description)) {
			log.Printf("[GameState] Warning: duplicate or invalid card id %d ignored", c.ID)
		}
	}
	return gs
}

// Score 返回当前分数
func (gs *GameState) Score() int {
	return gs.score
}

// Card 返回指定卡片
func (gs *GameState) Card(id ecs.EntityID) (*components.TargetCardComponent, bool) {
	return gs.cards.GetComponent(id)
}

// Cards 按ID升序返回所有卡片
func (gs *GameState) Cards() []*components.TargetCardComponent {
	result := make([]*components.TargetCardComponent, 0, gs.cards.Len())
	gs.cards.Each(func(_ ecs.EntityID, card *components.TargetCardComponent) {
		result = append(result, card)
	})
	return result
}

// VisibleCards 按ID升序返回可见卡片
func (gs *GameState) VisibleCards() []*components.TargetCardComponent {
	result := make([]*components.TargetCardComponent, 0, gs.cards.Len())
	gs.cards.Each(func(_ ecs.EntityID, card *components.TargetCardComponent) {
		if card.IsVisible() {
			result = append(result, card)
		}
	})
	return result
}

// CardsVersion 返回卡片集合版本号（每次隐藏卡片递增）
func (gs *GameState) CardsVersion() uint64 {
	return gs.cards.Version()
}

// HideCard 隐藏卡片
// 未知ID或已隐藏的卡片返回 false
func (gs *GameState) HideCard(id ecs.EntityID) bool {
	card, ok := gs.cards.GetComponent(id)
	if !ok || !card.IsVisible() {
		return false
	}
	gs.cards.Modify(id, func(c *components.TargetCardComponent) {
		c.Hide()
	})
	return true
}

// OnHit 处理一次确认的命中
// 分数 +1，请求成功音效，并通知订阅者
func (gs *GameState) OnHit(source HitSource) {
	gs.score++
	log.Printf("[GameState] hit %s #%d, score -> %d", source.Kind, source.ID, gs.score)

	gs.playCue(CueSuccess)
	gs.emit(Signal{Kind: source.Kind, ID: source.ID, Score: gs.score})
}

// OnMiss 处理一次未命中
// 分数不变，请求失败音效，并通知订阅者
func (gs *GameState) OnMiss() {
	log.Printf("[GameState] miss, score stays %d", gs.score)

	gs.playCue(CueFail)
	gs.emit(Signal{Kind: SignalMiss, Score: gs.score})
}

// Subscribe 订阅信号
// 返回取消订阅函数（可重复调用）
func (gs *GameState) Subscribe(listener func(Signal)) (unsubscribe func()) {
	token := gs.nextToken
	gs.nextToken++
	gs.listeners[token] = listener
	gs.order = append(gs.order, token)

	return func() {
		if _, ok := gs.listeners[token]; !ok {
			return
		}
		delete(gs.listeners, token)
		for i, t := range gs.order {
			if t == token {
				gs.order = append(gs.order[:i], gs.order[i+1:]...)
				break
			}
		}
	}
}

// SetCuePlayer 替换音效播放器（可为 nil）
func (gs *GameState) SetCuePlayer(cues CuePlayer) {
	gs.cues = cues
}

func (gs *GameState) playCue(cue Cue) {
	if gs.cues == nil {
		return
	}
	if err := gs.cues.PlayCue(cue); err != nil {
		log.Printf("[GameState] Warning: failed to play %s cue: %v", cue, err)
	}
}

func (gs *GameState) emit(signal Signal) {
	tokens := make([]int, len(gs.order))
	copy(tokens, gs.order)
	for _, token := range tokens {
		if listener, ok := gs.listeners[token]; ok {
			listener(signal)
		}
	}
}
