package list

import "iter"

// Single is a singly-linked list that also contains a reference to
// the last node for quick inserts at either end. Nodes can only be
// removed from the head.
//
// Single only rewires links. Callers allocate nodes themselves and get
// them back from PopHead, so a node's lifetime is entirely up to them.
type Single[T any] struct {
	head, tail *SingleNode[T]
	len        int
}

// Len returns the number of nodes in the list.
func (ls *Single[T]) Len() int {
	return ls.len
}

// Head returns the first node of the list, or nil if it is empty.
func (ls *Single[T]) Head() *SingleNode[T] {
	return ls.head
}

// Tail returns the last node of the list, or nil if it is empty.
func (ls *Single[T]) Tail() *SingleNode[T] {
	return ls.tail
}

// PushHead links n in as the new head of the list. n must not
// already belong to a list.
func (ls *Single[T]) PushHead(n *SingleNode[T]) {
	n.next = ls.head
	ls.head = n
	if ls.tail == nil {
		ls.tail = n
	}
	ls.len++
}

// PushTail links n in as the new tail of the list. n must not
// already belong to a list.
func (ls *Single[T]) PushTail(n *SingleNode[T]) {
	n.next = nil
	if ls.tail == nil {
		ls.head = n
	} else {
		ls.tail.next = n
	}
	ls.tail = n
	ls.len++
}

// PopHead unlinks the head node and returns it, or returns nil if the
// list is empty.
func (ls *Single[T]) PopHead() *SingleNode[T] {
	n := ls.head
	if n == nil {
		return nil
	}

	ls.head = n.next
	if ls.head == nil {
		ls.tail = nil
	}
	n.next = nil
	ls.len--

	return n
}

// Reverse reverses the order of the list in place by rewriting the
// links between the existing nodes.
func (ls *Single[T]) Reverse() {
	if ls.head == nil || ls.head.next == nil {
		return
	}

	var prev *SingleNode[T]
	cur := ls.head
	for cur != nil {
		next := cur.next
		cur.next = prev
		prev, cur = cur, next
	}

	ls.head, ls.tail = ls.tail, ls.head
}

// Nodes returns an iterator over the nodes of the list from head to
// tail. The list must not be modified during iteration.
func (ls *Single[T]) Nodes() iter.Seq[*SingleNode[T]] {
	return func(yield func(*SingleNode[T]) bool) {
		for cur := ls.head; cur != nil; cur = cur.next {
			if !yield(cur) {
				return
			}
		}
	}
}

// All returns an iterator over the elements of the list.
func (ls *Single[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range ls.Nodes() {
			if !yield(n.Val) {
				return
			}
		}
	}
}

// SingleNode is a node of a [Single].
type SingleNode[T any] struct {
	Val  T
	next *SingleNode[T]
}

// Next returns the node after n, or nil if n is the last node.
func (n *SingleNode[T]) Next() *SingleNode[T] {
	if n == nil {
		return nil
	}
	return n.next
}
