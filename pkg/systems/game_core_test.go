package systems

import (
	"testing"

	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/utils"
)

func newTestCore(t *testing.T) (*GameCore, *[]game.Signal) {
	t.Helper()
	// 常数序列：所有元素生成在同一位置 (701.4, 522.2)，尺寸 22
	core := NewGameCore(config.DefaultGameConfig(), game.Viewport{Width: 1024, Height: 768}, nil, utils.NewSequenceSource(0.7))
	t.Cleanup(core.Close)

	signals := &[]game.Signal{}
	core.State.Subscribe(func(s game.Signal) { *signals = append(*signals, s) })
	return core, signals
}

func TestNewGameCoreDefaultsViewport(t *testing.T) {
	core := NewGameCore(config.DefaultGameConfig(), game.Viewport{}, nil, utils.NewSequenceSource(0.7))
	defer core.Close()

	vp := core.Tracker.Viewport()
	if vp.Width != 1024 || vp.Height != 768 {
		t.Errorf("viewport: got %vx%v, want 1024x768", vp.Width, vp.Height)
	}
	if core.Floating.Len() != 11 {
		t.Errorf("elements: got %d, want 11", core.Floating.Len())
	}
}

func TestPointerDownClearsElementAndLaunches(t *testing.T) {
	core, signals := newTestCore(t)
	center := utils.Point{X: 701.4 + 11, Y: 522.2 + 11}

	cleared, launched := core.PointerDown(center)
	if cleared != 11 {
		t.Errorf("cleared: got %d, want topmost element 11", cleared)
	}
	if !launched {
		t.Error("element click should bubble to a flight launch")
	}
	if core.Floating.Len() != 10 || core.State.Score() != 1 {
		t.Errorf("len=%d score=%d, want 10 and 1", core.Floating.Len(), core.State.Score())
	}

	// 飞行中再次点击：清除下一个元素，但不开始新的飞行
	cleared, launched = core.PointerDown(center)
	if cleared != 10 || launched {
		t.Errorf("second click: cleared=%d launched=%v, want 10 and false", cleared, launched)
	}

	// 点击位置位于卡片3的矩形内，精灵落地时命中卡片3
	for i := 0; i < 200 && !core.Flights.IsIdle(); i++ {
		core.Update(1.0 / 60.0)
	}
	if !core.Flights.IsIdle() {
		t.Fatal("flight should finish")
	}

	kinds := []game.SignalKind{}
	for _, s := range *signals {
		kinds = append(kinds, s.Kind)
	}
	want := []game.SignalKind{game.SignalEntityCleared, game.SignalEntityCleared, game.SignalCardHit}
	if len(kinds) != len(want) {
		t.Fatalf("signals: got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("signals[%d]: got %v, want %v", i, kinds[i], want[i])
		}
	}
	if core.State.Score() != 3 {
		t.Errorf("score: got %d, want 3", core.State.Score())
	}
	if card, _ := core.State.Card(3); card.IsVisible() {
		t.Error("card 3 should be hidden")
	}
}

func TestPointerHoverTracking(t *testing.T) {
	core, _ := newTestCore(t)
	center := utils.Point{X: 712.4, Y: 533.2}

	core.PointerMove(center)
	if core.Hovered() != 11 {
		t.Fatalf("hovered: got %d, want 11", core.Hovered())
	}
	e, _ := core.Floating.Element(11)
	if e.Opacity != 1 {
		t.Errorf("hovered opacity: got %v, want 1", e.Opacity)
	}

	core.PointerMove(utils.Point{X: 10, Y: 10})
	if core.Hovered() != 0 {
		t.Errorf("hovered after leaving: got %d, want 0", core.Hovered())
	}
	if e.Hovered {
		t.Error("element should no longer be hovered")
	}

	core.PointerMove(center)
	core.PointerLeave()
	if core.Hovered() != 0 || e.Hovered {
		t.Error("pointer leave should clear hover")
	}
}

func TestPointerDownOnCard(t *testing.T) {
	core, signals := newTestCore(t)

	_, launched := core.PointerDown(card1Point)
	if !launched {
		t.Fatal("click should launch a flight")
	}
	for i := 0; i < 200 && !core.Flights.IsIdle(); i++ {
		core.Update(1.0 / 60.0)
	}

	if len(*signals) != 1 || (*signals)[0] != (game.Signal{Kind: game.SignalCardHit, ID: ecs.EntityID(1), Score: 1}) {
		t.Errorf("signals: got %+v", *signals)
	}
}
