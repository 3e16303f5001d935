package systems

import (
	"math"
	"testing"

	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/utils"
)

// hitLog 记录收到的命中
type hitLog struct {
	hits []game.HitSource
}

func (h *hitLog) OnHit(source game.HitSource) {
	h.hits = append(h.hits, source)
}

func newTestFloatingSystem(w, h float64, reduced bool, rng utils.RandomSource) (*FloatingElementSystem, *game.ViewportTracker, *hitLog) {
	tracker := game.NewViewportTracker(w, h, reduced)
	hits := &hitLog{}
	s := NewFloatingElementSystem(tracker, hits, config.DefaultGameConfig().Floating, rng)
	return s, tracker, hits
}

// placeElement 清空系统并放入一个指定状态的元素
func placeElement(s *FloatingElementSystem, e *components.FloatingElementComponent) ecs.EntityID {
	return s.Place(*e)[0]
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestInitializeDrawOrder 测试生成时的随机数抽取顺序和取值
func TestInitializeDrawOrder(t *testing.T) {
	rng := utils.NewSequenceSource(0.7)
	s, _, _ := newTestFloatingSystem(1024, 768, false, rng)
	s.Initialize()

	// floor(0.7*5)+8
	if s.Len() != 11 {
		t.Fatalf("count: got %d, want 11", s.Len())
	}
	if rng.Draws() != 1+11*10 {
		t.Errorf("draws: got %d, want %d", rng.Draws(), 1+11*10)
	}

	e := s.Elements()[0]
	if e.Kind != components.FloatingCoin {
		t.Errorf("kind: got %v, want coin", e.Kind)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"size", e.Size, 22},
		{"opacity", e.Opacity, 0.74},
		{"speed", e.BaseSpeed, 1.2},
		{"x", e.X, 0.7 * (1024 - 22)},
		{"y", e.Y, 0.7 * (768 - 22)},
		{"rotation", e.Rotation, 252},
		{"direction", e.Direction, 0.7 * 2 * math.Pi},
		{"rotationSpeed", e.RotationSpeed, 0.2 * 0.02},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
	if e.Color != "purple" {
		t.Errorf("color: got %q, want purple", e.Color)
	}
}

// TestInitializeReducedMotion 测试减少动态效果时的生成
func TestInitializeReducedMotion(t *testing.T) {
	rng := utils.NewSequenceSource(0.2)
	s, _, _ := newTestFloatingSystem(1024, 768, true, rng)
	s.Initialize()

	// floor(0.2*5)+8
	if s.Len() != 9 {
		t.Fatalf("count: got %d, want 9", s.Len())
	}
	// 速度和旋转速度不抽取随机数
	if rng.Draws() != 1+9*8 {
		t.Errorf("draws: got %d, want %d", rng.Draws(), 1+9*8)
	}
	for _, e := range s.Elements() {
		if e.Kind != components.FloatingOrb {
			t.Errorf("element %d: 0.2 should produce an orb", e.ID)
		}
		if e.BaseSpeed != 1.5 {
			t.Errorf("element %d speed: got %v, want 1.5", e.ID, e.BaseSpeed)
		}
		if e.RotationSpeed != 0 {
			t.Errorf("element %d rotation speed: got %v, want 0", e.ID, e.RotationSpeed)
		}
	}

	before := s.Elements()
	s.Update(1)
	s.Tick()
	after := s.Elements()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("element %d moved under reduced motion", before[i].ID)
		}
	}
}

// TestInitializeCountRanges 测试元素数量范围
func TestInitializeCountRanges(t *testing.T) {
	tests := []struct {
		name     string
		width    float64
		r        float64
		expected int
	}{
		{"mobile min", 375, 0.0, 5},
		{"mobile max", 375, 0.999, 7},
		{"desktop min", 1024, 0.0, 8},
		{"desktop max", 1024, 0.999, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestFloatingSystem(tt.width, 700, false, utils.NewSequenceSource(tt.r))
			s.Initialize()
			if s.Len() != tt.expected {
				t.Errorf("count: got %d, want %d", s.Len(), tt.expected)
			}
		})
	}
}

// TestTickMovesAndReflects 移动一步、到达右边界后反射
func TestTickMovesAndReflects(t *testing.T) {
	s, _, _ := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.5))
	id := placeElement(s, &components.FloatingElementComponent{
		Kind: components.FloatingOrb, Size: 20, Opacity: 0.7, X: 100, Y: 100, Direction: 0,
	})

	s.Tick()
	e, _ := s.Element(id)
	if !almostEqual(e.X, 100.5) || !almostEqual(e.Y, 100) {
		t.Fatalf("after one tick: got (%v,%v), want (100.5,100)", e.X, e.Y)
	}

	// 100.5 -> 780 需要 1359 步，再走一步越界
	for i := 0; i < 1359; i++ {
		s.Tick()
	}
	if !almostEqual(e.X, 780) || e.Direction != 0 {
		t.Fatalf("at edge: got x=%v dir=%v, want x=780 dir=0", e.X, e.Direction)
	}

	s.Tick()
	if e.X != 780 {
		t.Errorf("x should be clamped to 780, got %v", e.X)
	}
	if !almostEqual(e.Direction, math.Pi) {
		t.Errorf("direction should reflect to π, got %v", e.Direction)
	}

	s.Tick()
	if !almostEqual(e.X, 779.5) {
		t.Errorf("after reflection x should decrease, got %v", e.X)
	}
}

// TestTickReflectsVertically 测试上边界反射
func TestTickReflectsVertically(t *testing.T) {
	s, _, _ := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.5))
	id := placeElement(s, &components.FloatingElementComponent{
		Size: 20, X: 300, Y: 0.2, Direction: -math.Pi / 2,
	})

	s.Tick()
	e, _ := s.Element(id)
	if e.Y != 0 {
		t.Errorf("y should clamp to 0, got %v", e.Y)
	}
	if !almostEqual(e.Direction, math.Pi/2) {
		t.Errorf("direction should become π/2, got %v", e.Direction)
	}
}

// TestTickRandomTurn 测试随机偏转
func TestTickRandomTurn(t *testing.T) {
	// 第一个值 < 0.01 触发偏转，第二个值决定偏转量
	s, _, _ := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.005, 1.0))
	id := placeElement(s, &components.FloatingElementComponent{
		Size: 20, X: 300, Y: 300, Direction: 1, RotationSpeed: 0.01, Rotation: 10,
	})

	s.Tick()
	e, _ := s.Element(id)
	if !almostEqual(e.Direction, 1+0.5*0.5) {
		t.Errorf("direction: got %v, want %v", e.Direction, 1.25)
	}
	if !almostEqual(e.Rotation, 10.01) {
		t.Errorf("rotation: got %v, want 10.01", e.Rotation)
	}
}

// TestBoundaryContainment 任意步数后元素都在视口内
func TestBoundaryContainment(t *testing.T) {
	s, tracker, _ := newTestFloatingSystem(1024, 768, false, utils.NewRandomSource(42))
	s.Initialize()

	check := func(step int) {
		vp := tracker.Viewport()
		for _, e := range s.Elements() {
			if e.X < 0 || e.X > vp.Width-e.Size || e.Y < 0 || e.Y > vp.Height-e.Size {
				t.Fatalf("step %d: element %d at (%v,%v) size %v outside %vx%v",
					step, e.ID, e.X, e.Y, e.Size, vp.Width, vp.Height)
			}
		}
	}

	for i := 0; i < 3000; i++ {
		s.Tick()
		check(i)
	}

	// 缩小视口（仍为桌面端，不重新生成）后一步即回到边界内
	tracker.Resize(800, 300)
	s.Tick()
	check(-1)
}

// TestUpdateFixedStep 测试固定步长累积
func TestUpdateFixedStep(t *testing.T) {
	s, _, _ := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.5))
	id := placeElement(s, &components.FloatingElementComponent{Size: 20, X: 100, Y: 100})
	e, _ := s.Element(id)

	s.Update(FloatingTickInterval / 2)
	if e.X != 100 {
		t.Errorf("half interval should not tick, x=%v", e.X)
	}
	s.Update(FloatingTickInterval / 2)
	if !almostEqual(e.X, 100.5) {
		t.Errorf("full interval should tick once, x=%v", e.X)
	}

	// 长时间卡顿最多补 maxTicksPerUpdate 步
	s.Update(10)
	if !almostEqual(e.X, 100.5+0.5*maxTicksPerUpdate) {
		t.Errorf("catch-up should be capped, x=%v", e.X)
	}
}

// TestViewportChangeRegeneration 只有移动端标记或减少动态效果变化时才重新生成
func TestViewportChangeRegeneration(t *testing.T) {
	s, tracker, _ := newTestFloatingSystem(1024, 768, false, utils.NewSequenceSource(0.7))
	s.Initialize()
	firstIDs := s.elements.Entities()

	tracker.Resize(1280, 800)
	if ids := s.elements.Entities(); len(ids) != len(firstIDs) || ids[0] != firstIDs[0] {
		t.Fatal("plain resize should not regenerate")
	}

	tracker.Resize(500, 800)
	// floor(0.7*3)+5
	if s.Len() != 7 {
		t.Fatalf("mobile regeneration count: got %d, want 7", s.Len())
	}
	if s.elements.Entities()[0] <= firstIDs[len(firstIDs)-1] {
		t.Error("regenerated elements should get fresh ids")
	}

	tracker.SetReducedMotion(true)
	for _, e := range s.Elements() {
		if e.BaseSpeed != 1.5 {
			t.Fatalf("reduced motion regeneration: speed %v, want 1.5", e.BaseSpeed)
		}
	}

	s.Close()
	before := s.Len()
	tracker.SetReducedMotion(false)
	if s.Len() != before || s.Elements()[0].BaseSpeed != 1.5 {
		t.Error("closed system should no longer react to viewport changes")
	}
}

// TestHover 测试悬停效果
func TestHover(t *testing.T) {
	s, _, _ := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.5))
	id := placeElement(s, &components.FloatingElementComponent{Size: 20, Opacity: 0.7, BaseSpeed: 1})

	s.HoverEnter(id)
	s.HoverEnter(id)
	e, _ := s.Element(id)
	if e.Opacity != 1 || !almostEqual(e.BaseSpeed, 1.5) {
		t.Errorf("hover enter: opacity=%v speed=%v, want 1 and 1.5", e.Opacity, e.BaseSpeed)
	}

	s.HoverLeave(id)
	s.HoverLeave(id)
	if !almostEqual(e.Opacity, 0.8) || !almostEqual(e.BaseSpeed, 1) {
		t.Errorf("hover leave: opacity=%v speed=%v, want 0.8 and 1", e.Opacity, e.BaseSpeed)
	}

	// 未知ID静默忽略
	s.HoverEnter(9999)
	s.HoverLeave(9999)
}

// TestClickIsIdempotent 重复点击已清除的元素不产生额外命中
func TestClickIsIdempotent(t *testing.T) {
	s, _, hits := newTestFloatingSystem(1024, 768, false, utils.NewSequenceSource(0.7))
	s.Initialize()
	id := s.Elements()[3].ID
	n := s.Len()

	if !s.Click(id) {
		t.Fatal("first click should remove the element")
	}
	stateAfterFirst := s.Elements()
	if s.Click(id) {
		t.Error("second click should be a no-op")
	}
	if s.Click(0) || s.Click(9999) {
		t.Error("unknown ids should be no-ops")
	}

	if s.Len() != n-1 {
		t.Errorf("len: got %d, want %d", s.Len(), n-1)
	}
	if len(stateAfterFirst) != len(s.Elements()) {
		t.Error("state changed after duplicate click")
	}
	if len(hits.hits) != 1 || hits.hits[0] != game.FloatingSource(id) {
		t.Errorf("hits: got %+v, want one entity-cleared for %d", hits.hits, id)
	}
}

// TestElementAt 测试命中最上层元素
func TestElementAt(t *testing.T) {
	s, _, _ := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.5))
	s.elements.Clear()
	a := s.elements.CreateEntity(&components.FloatingElementComponent{Size: 20, X: 100, Y: 100})
	b := s.elements.CreateEntity(&components.FloatingElementComponent{Size: 20, X: 105, Y: 100})

	if id, ok := s.ElementAt(utils.Point{X: 112, Y: 110}); !ok || id != b {
		t.Errorf("overlap: got %d,%v want %d", id, ok, b)
	}
	if id, ok := s.ElementAt(utils.Point{X: 102, Y: 110}); !ok || id != a {
		t.Errorf("left element: got %d,%v want %d", id, ok, a)
	}
	// 正方形的角落也属于点击区域
	if id, ok := s.ElementAt(utils.Point{X: 100.5, Y: 100.5}); !ok || id != a {
		t.Errorf("corner: got %d,%v want %d", id, ok, a)
	}
	if _, ok := s.ElementAt(utils.Point{X: 99.5, Y: 110}); ok {
		t.Error("point left of every element should not hit")
	}
	if _, ok := s.ElementAt(utils.Point{X: 400, Y: 400}); ok {
		t.Error("empty space should not hit")
	}
}

// TestClickInsideElementCorner 测试点击元素矩形角落时清除并计分
func TestClickInsideElementCorner(t *testing.T) {
	s, _, hits := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.5))
	id := placeElement(s, &components.FloatingElementComponent{Size: 20, X: 100, Y: 100})

	tests := []struct {
		name string
		p    utils.Point
	}{
		{"top-left", utils.Point{X: 101, Y: 101}},
		{"top-right", utils.Point{X: 119, Y: 101}},
		{"bottom-left", utils.Point{X: 101, Y: 119}},
		{"bottom-right", utils.Point{X: 120, Y: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.ElementAt(tt.p)
			if !ok || got != id {
				t.Errorf("ElementAt(%v): got %d,%v want %d", tt.p, got, ok, id)
			}
		})
	}

	found, _ := s.ElementAt(utils.Point{X: 101, Y: 101})
	if !s.Click(found) {
		t.Fatal("click on the corner should clear the element")
	}
	if s.Len() != 0 || len(hits.hits) != 1 || hits.hits[0] != game.FloatingSource(id) {
		t.Errorf("len=%d hits=%+v, want 0 and one hit for %d", s.Len(), hits.hits, id)
	}
}

// TestPlaceReplacesElements 测试放置元素替换现有集合
func TestPlaceReplacesElements(t *testing.T) {
	s, _, _ := newTestFloatingSystem(800, 600, false, utils.NewSequenceSource(0.5))
	s.Initialize()
	before := s.Version()

	ids := s.Place(
		components.FloatingElementComponent{ID: 99, Size: 20, X: 10, Y: 10},
		components.FloatingElementComponent{Size: 30, X: 50, Y: 50},
	)
	if len(ids) != 2 || s.Len() != 2 {
		t.Fatalf("placed %d ids, len %d, want 2 and 2", len(ids), s.Len())
	}
	if ids[0] == 99 || ids[1] <= ids[0] {
		t.Errorf("ids should be freshly allocated in order, got %v", ids)
	}
	if s.Version() <= before {
		t.Error("placing should bump the version")
	}
	e, ok := s.Element(ids[1])
	if !ok || e.Size != 30 || e.ID != ids[1] {
		t.Errorf("second element: got %+v ok=%v", e, ok)
	}
}
