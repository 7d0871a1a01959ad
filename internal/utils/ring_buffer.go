package utils

import "sync"

// RingBuffer — потокобезопасный буфер фиксированной ёмкости для элементов типа T.
// При добавлении элемента в заполненный буфер самый старый элемент вытесняется.
// Элементы хранятся в порядке поступления: от самого старого к самому новому.
//
// Пример использования:
//
//	rb := NewRingBuffer[int](3)
//	rb.Push(1)
//	rb.Push(2)
//	rb.Push(3)
//	rb.Push(4) // элемент 1 будет вытеснен
//	fmt.Println(rb.ToSlice()) // [2 3 4]
type RingBuffer[T any] struct {
	limit int // ёмкость буфера
	items []T // элементы от самого старого к самому новому

	mu sync.RWMutex
}

// Push добавляет элемент в конец буфера.
// Если буфер заполнен, самый старый элемент вытесняется.
// Метод потокобезопасен.
func (rb *RingBuffer[T]) Push(item T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.items = append(rb.items, item)
	if len(rb.items) > rb.limit {
		rb.items = rb.items[1:]
	}
}

// Len возвращает текущее количество элементов в буфере.
// Значение всегда находится в диапазоне [0, Cap()].
func (rb *RingBuffer[T]) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return len(rb.items)
}

// Cap возвращает максимальную ёмкость буфера.
func (rb *RingBuffer[T]) Cap() int {
	return rb.limit
}

// ToSlice возвращает копию всех элементов буфера в порядке от самого старого
// к самому новому. Если буфер пуст, возвращается пустой слайс.
func (rb *RingBuffer[T]) ToSlice() []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]T, len(rb.items))
	copy(result, rb.items)
	return result
}

// NewRingBuffer создаёт новый буфер указанной ёмкости.
// Параметр limit должен быть положительным числом, иначе вызов приведёт к панике.
func NewRingBuffer[T any](limit int) *RingBuffer[T] {
	if limit <= 0 {
		panic("ring buffer limit must be positive")
	}
	return &RingBuffer[T]{
		limit: limit,
		items: make([]T, 0, limit),
	}
}
