package nit

import (
	"fmt"

	"github.com/annel0/nitworld/internal/item"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
)

// Work начинает работу над кубиком: своим или одним из 26 соседей.
// Работа длится WorkEffort/strength секунд, результат определяется
// по завершении.
func (n *Nit) Work(target vec.Vec3) error {
	if err := n.commandAllowed(); err != nil {
		return err
	}
	if !n.world.InBounds(target) || !n.Cube().IsAdjacentOrSame(target) {
		return fmt.Errorf("%w: %v from %v", ErrInvalidWorkTarget, target, n.Cube())
	}

	if n.state == StateMoving {
		n.abandonJourney()
	}

	n.workTarget = target
	n.timeToCompletion = WorkEffort / float64(n.strength)
	n.face(target.Center())
	n.setState(StateWorking)
	return nil
}

func (n *Nit) controlWorking(dt float64) error {
	n.timeToCompletion -= dt
	if n.timeToCompletion > 0 {
		return nil
	}
	n.timeToCompletion = 0

	err := n.finishWork()
	n.addExperience(XPPerWork)
	n.setState(StateEmpty)
	return err
}

// finishWork применяет первый подходящий результат работы:
// бросить ношу, улучшиться в мастерской, поднять валун или бревно,
// срубить дерево или обрушить скалу.
func (n *Nit) finishWork() error {
	target := n.workTarget

	if n.carried != nil {
		return n.drop(target)
	}

	items := n.world.ItemsAt(target)
	logItem := findItem(items, item.KindLog)
	boulder := findItem(items, item.KindBoulder)
	id := n.world.BlockAt(target)

	switch {
	case id == block.WorkshopBlockID && logItem != nil && boulder != nil:
		n.world.RemoveItem(logItem)
		n.world.RemoveItem(boulder)
		n.improveEquipment()
	case boulder != nil:
		n.pickUp(boulder)
	case logItem != nil:
		n.pickUp(logItem)
	case id == block.TreeBlockID, id == block.RockBlockID:
		if err := n.world.Collapse(target); err != nil {
			return fmt.Errorf("collapse %v: %w", target, err)
		}
		log.Debug("нит %s обрушил %v", n.name, target)
	}
	return nil
}

// drop кладёт ношу в целевой кубик, а если туда нельзя — себе под ноги
func (n *Nit) drop(target vec.Vec3) error {
	it := n.carried
	if err := n.world.AddItem(it, target); err != nil {
		if err := n.world.AddItem(it, n.Cube()); err != nil {
			return fmt.Errorf("drop %s: %w", it, err)
		}
	}
	n.carried = nil
	log.Debug("нит %s бросил %s", n.name, it)
	return nil
}

func (n *Nit) pickUp(it *item.Item) {
	n.world.RemoveItem(it)
	n.carried = it
	log.Debug("нит %s поднял %s", n.name, it)
}

// improveEquipment: вес и выносливость растут на единицу в пределах границ
func (n *Nit) improveEquipment() {
	if n.weight < MaxAttribute {
		n.weight++
	}
	if n.toughness < MaxAttribute {
		n.toughness++
	}
	n.repairWeight()
	n.clampVitals()
	log.Debug("нит %s улучшил снаряжение в мастерской", n.name)
}

func findItem(items []*item.Item, kind item.Kind) *item.Item {
	for _, it := range items {
		if it.Kind() == kind {
			return it
		}
	}
	return nil
}
