package world

import (
	"github.com/annel0/nitworld/internal/item"
	"github.com/annel0/nitworld/internal/vec"
)

// AddItem кладёт предмет в центр кубика и регистрирует его
func (w *World) AddItem(it *item.Item, pos vec.Vec3) error {
	if err := it.Place(w.Grid, pos); err != nil {
		return err
	}
	w.items = append(w.items, it)
	w.indexItem(it, pos)
	return nil
}

// RemoveItem снимает предмет с учёта (например, нит его поднял)
func (w *World) RemoveItem(it *item.Item) {
	for i, other := range w.items {
		if other == it {
			w.items = append(w.items[:i], w.items[i+1:]...)
			break
		}
	}
	w.unindexItem(it, it.Cube())
}

// ItemsAt возвращает предметы в кубике
func (w *World) ItemsAt(pos vec.Vec3) []*item.Item {
	list := w.itemsByCube[pos]
	out := make([]*item.Item, len(list))
	copy(out, list)
	return out
}

// Items возвращает все предметы мира
func (w *World) Items() []*item.Item {
	out := make([]*item.Item, len(w.items))
	copy(out, w.items)
	return out
}

// FindItem ищет ближайший к from предмет указанного вида
func (w *World) FindItem(kind item.Kind, from vec.Vec3) (*item.Item, bool) {
	var best *item.Item
	bestDistance := 0.0
	for _, it := range w.items {
		if it.Kind() != kind {
			continue
		}
		d := from.DistanceTo(it.Cube())
		if best == nil || d < bestDistance {
			best, bestDistance = it, d
		}
	}
	return best, best != nil
}

func (w *World) indexItem(it *item.Item, pos vec.Vec3) {
	w.itemsByCube[pos] = append(w.itemsByCube[pos], it)
}

func (w *World) unindexItem(it *item.Item, pos vec.Vec3) {
	list := w.itemsByCube[pos]
	for i, other := range list {
		if other == it {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(w.itemsByCube, pos)
	} else {
		w.itemsByCube[pos] = list
	}
}

// advanceItems обновляет падающие предметы и переиндексирует сменившие кубик
func (w *World) advanceItems(dt float64) {
	for _, it := range w.Items() {
		before := it.Cube()
		it.AdvanceTime(w.Grid, dt)
		if after := it.Cube(); after != before {
			w.unindexItem(it, before)
			w.indexItem(it, after)
		}
	}
}
