package items

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownSlot     = errors.New("unknown equipment slot")
	ErrUnknownItem     = errors.New("unknown item")
	ErrInventoryFull   = errors.New("inventory full")
	ErrNotEquippable   = errors.New("item cannot be equipped")
	ErrInvalidCapacity = errors.New("inventory capacity must be positive")
)

type EquipSlot int

const (
	SlotMainHand EquipSlot = iota
	SlotOffHand
	SlotArmor
	SlotHelmet
	SlotBoots
	SlotAmulet
	SlotRing1
	SlotRing2
	SlotNone // consumables and loot-only items
)

var slotNames = map[string]EquipSlot{
	"main_hand": SlotMainHand,
	"off_hand":  SlotOffHand,
	"armor":     SlotArmor,
	"helmet":    SlotHelmet,
	"boots":     SlotBoots,
	"amulet":    SlotAmulet,
	"ring1":     SlotRing1,
	"ring2":     SlotRing2,
	"none":      SlotNone,
	"":          SlotNone,
}

// EquipSlots lists the slots a player can fill, in the order passives are evaluated
func EquipSlots() []EquipSlot {
	return []EquipSlot{SlotMainHand, SlotOffHand, SlotArmor, SlotHelmet, SlotBoots, SlotAmulet, SlotRing1, SlotRing2}
}

// ParseSlot converts a YAML slot name to an EquipSlot
func ParseSlot(name string) (EquipSlot, error) {
	if slot, ok := slotNames[name]; ok {
		return slot, nil
	}
	return SlotNone, fmt.Errorf("%q: %w", name, ErrUnknownSlot)
}

func (s EquipSlot) String() string {
	for name, slot := range slotNames {
		if slot == s && name != "" {
			return name
		}
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

type ItemType int

const (
	ItemWeapon ItemType = iota
	ItemArmor
	ItemAccessory
	ItemConsumable
	ItemTrophy
)

var typeNames = map[string]ItemType{
	"weapon":     ItemWeapon,
	"armor":      ItemArmor,
	"accessory":  ItemAccessory,
	"consumable": ItemConsumable,
	"trophy":     ItemTrophy,
}

func parseType(name string) (ItemType, error) {
	if t, ok := typeNames[name]; ok {
		return t, nil
	}
	return ItemTrophy, fmt.Errorf("unknown item type %q", name)
}

// Item is a concrete piece of gear. Values are copied out of the catalog, so a
// player can hold two of the same key without sharing state.
type Item struct {
	Key         string
	Name        string
	Type        ItemType
	Slot        EquipSlot
	Description string

	AttackBonus    int
	DefenseBonus   int
	DodgeBonus     float64
	DamageBonusPct int
	Passives       []string
	// Desperation grants the low-HP damage bonus to its wearer
	Desperation bool
	// CritChance overrides the wearer's base crit chance when positive
	CritChance float64
}

// Equippable reports whether the item occupies an equipment slot
func (it Item) Equippable() bool {
	return it.Slot != SlotNone
}

// Equipment maps slots to the item worn there
type Equipment map[EquipSlot]Item

// Equip puts item into its own slot and returns whatever was there
func (e Equipment) Equip(item Item) (Item, bool, error) {
	if !item.Equippable() {
		return Item{}, false, fmt.Errorf("equip %s: %w", item.Name, ErrNotEquippable)
	}
	prev, had := e[item.Slot]
	e[item.Slot] = item
	return prev, had, nil
}

// Ordered returns equipped items in slot order
func (e Equipment) Ordered() []Item {
	out := make([]Item, 0, len(e))
	for _, slot := range EquipSlots() {
		if it, ok := e[slot]; ok {
			out = append(out, it)
		}
	}
	return out
}

func (e Equipment) AttackBonus() int {
	total := 0
	for _, it := range e {
		total += it.AttackBonus
	}
	return total
}

func (e Equipment) DefenseBonus() int {
	total := 0
	for _, it := range e {
		total += it.DefenseBonus
	}
	return total
}

func (e Equipment) DodgeBonus() float64 {
	total := 0.0
	for _, slot := range EquipSlots() {
		total += e[slot].DodgeBonus
	}
	return total
}

// DamageBonusPct sums the percentage damage bonus of every equipped item
func (e Equipment) DamageBonusPct() int {
	total := 0
	for _, it := range e {
		total += it.DamageBonusPct
	}
	return total
}

// HasDesperation reports whether any equipped item grants the low-HP bonus
func (e Equipment) HasDesperation() bool {
	for _, it := range e {
		if it.Desperation {
			return true
		}
	}
	return false
}

// CritOverride returns the highest crit override among equipped items
func (e Equipment) CritOverride() (float64, bool) {
	best := 0.0
	for _, it := range e {
		if it.CritChance > best {
			best = it.CritChance
		}
	}
	return best, best > 0
}

// Inventory is the player's bag of unequipped items
type Inventory struct {
	Items    []Item
	Capacity int
}

func NewInventory(capacity int) (*Inventory, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("new inventory (%d): %w", capacity, ErrInvalidCapacity)
	}
	return &Inventory{Capacity: capacity}, nil
}

// Add stores item unless the bag is already full
func (inv *Inventory) Add(item Item) error {
	if inv.Full() {
		return fmt.Errorf("add %s: %w", item.Name, ErrInventoryFull)
	}
	inv.Items = append(inv.Items, item)
	return nil
}

func (inv *Inventory) Full() bool {
	return len(inv.Items) >= inv.Capacity
}

func (inv *Inventory) Len() int {
	return len(inv.Items)
}

// Names returns the item names sorted, for summaries
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.Items))
	for _, it := range inv.Items {
		names = append(names, it.Name)
	}
	sort.Strings(names)
	return names
}
