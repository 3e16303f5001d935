package ecs

import "testing"

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager[*testPositionComponent]()
	id1 := em.CreateEntity(&testPositionComponent{})
	id2 := em.CreateEntity(&testPositionComponent{})

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestGetComponent(t *testing.T) {
	em := NewEntityManager[*testPositionComponent]()
	id := em.CreateEntity(&testPositionComponent{X: 100, Y: 200})

	retrieved, found := em.GetComponent(id)
	if !found {
		t.Fatal("Component should be found")
	}
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	if _, found := em.GetComponent(999); found {
		t.Error("Unknown entity should not be found")
	}
}

func TestDestroyEntityIsIdempotent(t *testing.T) {
	em := NewEntityManager[*testPositionComponent]()
	id := em.CreateEntity(&testPositionComponent{})
	other := em.CreateEntity(&testPositionComponent{})

	if !em.DestroyEntity(id) {
		t.Fatal("First destroy should report removal")
	}
	versionAfterFirst := em.Version()

	if em.DestroyEntity(id) {
		t.Error("Second destroy should be a no-op")
	}
	if em.Version() != versionAfterFirst {
		t.Errorf("Version changed on no-op destroy: got %d, want %d", em.Version(), versionAfterFirst)
	}
	if em.HasEntity(id) {
		t.Error("Destroyed entity should be gone")
	}
	if !em.HasEntity(other) {
		t.Error("Other entity should still exist")
	}
	if em.Len() != 1 {
		t.Errorf("Len: got %d, want 1", em.Len())
	}
}

func TestAddEntityKeepsOrder(t *testing.T) {
	em := NewEntityManager[*testPositionComponent]()

	for _, id := range []EntityID{3, 1, 4, 2} {
		if !em.AddEntity(id, &testPositionComponent{X: float64(id)}) {
			t.Fatalf("AddEntity(%d) failed", id)
		}
	}

	if em.AddEntity(2, &testPositionComponent{}) {
		t.Error("Duplicate ID should be rejected")
	}
	if em.AddEntity(0, &testPositionComponent{}) {
		t.Error("ID 0 should be rejected")
	}

	got := em.Entities()
	want := []EntityID{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Entities: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entities[%d]: got %d, want %d", i, got[i], want[i])
		}
	}

	// 自动分配的ID不能与显式ID冲突
	if next := em.CreateEntity(&testPositionComponent{}); next != 5 {
		t.Errorf("CreateEntity after AddEntity: got %d, want 5", next)
	}
}

func TestModifyBumpsVersion(t *testing.T) {
	em := NewEntityManager[*testPositionComponent]()
	id := em.CreateEntity(&testPositionComponent{})
	before := em.Version()

	ok := em.Modify(id, func(p *testPositionComponent) { p.X = 42 })
	if !ok {
		t.Fatal("Modify should succeed for existing entity")
	}
	if em.Version() <= before {
		t.Error("Modify should bump version")
	}
	p, _ := em.GetComponent(id)
	if p.X != 42 {
		t.Errorf("X: got %v, want 42", p.X)
	}

	called := false
	if em.Modify(999, func(*testPositionComponent) { called = true }) {
		t.Error("Modify on unknown entity should return false")
	}
	if called {
		t.Error("fn should not be called for unknown entity")
	}
}

func TestClearDoesNotReuseIDs(t *testing.T) {
	em := NewEntityManager[*testPositionComponent]()
	em.CreateEntity(&testPositionComponent{})
	em.CreateEntity(&testPositionComponent{})
	em.Clear()

	if em.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", em.Len())
	}
	if id := em.CreateEntity(&testPositionComponent{}); id != 3 {
		t.Errorf("ID after Clear: got %d, want 3", id)
	}
}

func TestEachVisitsInIDOrder(t *testing.T) {
	em := NewEntityManager[*testPositionComponent]()
	em.AddEntity(2, &testPositionComponent{})
	em.AddEntity(1, &testPositionComponent{})
	em.AddEntity(3, &testPositionComponent{})
	em.DestroyEntity(2)

	var visited []EntityID
	em.Each(func(id EntityID, _ *testPositionComponent) {
		visited = append(visited, id)
	})
	if len(visited) != 2 || visited[0] != 1 || visited[1] != 3 {
		t.Errorf("Each order: got %v, want [1 3]", visited)
	}
}
