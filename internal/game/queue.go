package game

import "slices"

// RebuildQueue queues every player who can still act, in join order, and
// pops the first of them as the current player. It returns -1 when nobody can
// act.
func (g *Game) RebuildQueue() int {
	for _, id := range g.order {
		if g.players[id].CanAct() && !slices.Contains(g.queue, id) {
			g.queue = append(g.queue, id)
		}
	}
	return g.NextFromQueue()
}

// NextFromQueue pops the head of the turn queue and makes it current. It
// returns -1 once the queue is drained.
func (g *Game) NextFromQueue() int {
	if len(g.queue) == 0 {
		g.current = -1
		return -1
	}
	id := g.queue[0]
	g.queue = g.queue[1:]
	g.current = id
	return id
}

// Enqueue appends ids to the turn queue, skipping any already waiting.
func (g *Game) Enqueue(ids ...int) {
	for _, id := range ids {
		if !slices.Contains(g.queue, id) {
			g.queue = append(g.queue, id)
		}
	}
}

// Queue returns the ids still waiting to act.
func (g *Game) Queue() []int {
	return slices.Clone(g.queue)
}

// PlayersBefore returns the players seated ahead of id who can still act.
func (g *Game) PlayersBefore(id int) []int {
	i := slices.Index(g.order, id)
	if i < 0 {
		return nil
	}
	var ids []int
	for _, pid := range g.order[:i] {
		if g.players[pid].CanAct() {
			ids = append(ids, pid)
		}
	}
	return ids
}

func (g *Game) dequeue(id int) {
	g.queue = slices.DeleteFunc(g.queue, func(pid int) bool { return pid == id })
}
