package ecs

import "sort"

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理同一种组件类型的实体集合
//
// 与按组件类型索引的通用 ECS 不同，这里每个集合只保存一种组件，
// 所有修改都通过显式操作完成（创建、按ID删除、按ID修改），
// 每次修改都会递增 Version，渲染层可据此判断是否需要重建缓存。
type EntityManager[T any] struct {
	nextID uint64
	// 实体-组件映射: EntityID -> Component实例
	components map[EntityID]T
	// 按ID升序排列的实体列表（保证遍历顺序稳定）
	order   []EntityID
	version uint64
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager[T any]() *EntityManager[T] {
	return &EntityManager[T]{
		nextID:     1, // ID从1开始,0保留为无效ID
		components: make(map[EntityID]T),
		order:      make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager[T]) CreateEntity(component T) EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = component
	em.order = append(em.order, id)
	em.version++
	return id
}

// AddEntity 使用指定ID添加实体（用于ID固定的集合，如目标卡片）
// 如果ID已存在返回 false，不会覆盖
func (em *EntityManager[T]) AddEntity(id EntityID, component T) bool {
	if id == 0 {
		return false
	}
	if _, exists := em.components[id]; exists {
		return false
	}
	em.components[id] = component

	// 插入到有序位置
	idx := sort.Search(len(em.order), func(i int) bool { return em.order[i] >= id })
	em.order = append(em.order, 0)
	copy(em.order[idx+1:], em.order[idx:])
	em.order[idx] = id

	if uint64(id) >= em.nextID {
		em.nextID = uint64(id) + 1
	}
	em.version++
	return true
}

// DestroyEntity 立即删除实体
// 返回 true 表示实体存在并已删除；重复删除同一ID是空操作
func (em *EntityManager[T]) DestroyEntity(id EntityID) bool {
	if _, exists := em.components[id]; !exists {
		return false
	}
	delete(em.components, id)

	idx := sort.Search(len(em.order), func(i int) bool { return em.order[i] >= id })
	if idx < len(em.order) && em.order[idx] == id {
		em.order = append(em.order[:idx], em.order[idx+1:]...)
	}
	em.version++
	return true
}

// GetComponent 获取实体的组件
func (em *EntityManager[T]) GetComponent(id EntityID) (T, bool) {
	comp, found := em.components[id]
	return comp, found
}

// HasEntity 检查实体是否存在
func (em *EntityManager[T]) HasEntity(id EntityID) bool {
	_, found := em.components[id]
	return found
}

// Modify 对指定实体执行修改并递增版本号
// 实体不存在时返回 false，fn 不会被调用
func (em *EntityManager[T]) Modify(id EntityID, fn func(T)) bool {
	comp, found := em.components[id]
	if !found {
		return false
	}
	fn(comp)
	em.version++
	return true
}

// Touch 标记集合已被修改（批量原地更新后调用，例如每帧物理积分）
func (em *EntityManager[T]) Touch() {
	em.version++
}

// Entities 返回按ID升序排列的实体ID列表（副本）
func (em *EntityManager[T]) Entities() []EntityID {
	result := make([]EntityID, len(em.order))
	copy(result, em.order)
	return result
}

// Each 按ID升序遍历所有实体
func (em *EntityManager[T]) Each(fn func(id EntityID, component T)) {
	for _, id := range em.order {
		fn(id, em.components[id])
	}
}

// Len 返回实体数量
func (em *EntityManager[T]) Len() int {
	return len(em.order)
}

// Version 返回集合的版本号
func (em *EntityManager[T]) Version() uint64 {
	return em.version
}

// Clear 删除所有实体
// ID 计数器不会重置，已删除实体的ID不会被复用
func (em *EntityManager[T]) Clear() {
	if len(em.order) == 0 {
		return
	}
	em.components = make(map[EntityID]T)
	em.order = em.order[:0]
	em.version++
}
