package nit

import "fmt"

// Faction: группа нитов, которые не атакуют друг друга
type Faction struct {
	name    string
	members []*Nit
}

// NewFaction создаёт пустую фракцию
func NewFaction(name string) *Faction {
	return &Faction{name: name}
}

func (f *Faction) Name() string { return f.name }
func (f *Faction) Size() int    { return len(f.members) }

// Members возвращает копию списка членов
func (f *Faction) Members() []*Nit {
	out := make([]*Nit, len(f.members))
	copy(out, f.members)
	return out
}

// Add принимает нита во фракцию, перед этим выводя его из прежней
func (f *Faction) Add(n *Nit) error {
	if n.terminated {
		return ErrTerminated
	}
	if n.faction == f {
		return nil
	}
	if len(f.members) >= MaxFactionMembers {
		return fmt.Errorf("%w: %s has %d members", ErrFactionFull, f.name, len(f.members))
	}
	if n.faction != nil {
		n.faction.Remove(n)
	}
	f.members = append(f.members, n)
	n.faction = f
	return nil
}

// Remove исключает нита из фракции
func (f *Faction) Remove(n *Nit) {
	for i, m := range f.members {
		if m == n {
			f.members = append(f.members[:i], f.members[i+1:]...)
			break
		}
	}
	if n.faction == f {
		n.faction = nil
	}
}

func (f *Faction) String() string {
	return fmt.Sprintf("%s(%d)", f.name, len(f.members))
}
